package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openfmis/ipsas_ledger/internal/apperrors"
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	portsrepo "github.com/openfmis/ipsas_ledger/internal/core/ports/repositories"
	"github.com/openfmis/ipsas_ledger/internal/models"
	"github.com/openfmis/ipsas_ledger/internal/utils/mapping"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

const accountColumns = `account_id, account_code, account_name, account_type, parent_account_id, fund_id, entity_id, description, normal_balance, level, is_detail_account, is_active, created_at, created_by, last_updated_at, last_updated_by`

var accountSortColumns = map[string]string{
	"createdAt":   "created_at",
	"accountCode": "account_code",
	"accountName": "account_name",
	"accountType": "account_type",
	"level":       "level",
}

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row rowScanner) (models.Account, error) {
	var m models.Account
	var parentID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.AccountCode,
		&m.AccountName,
		&m.AccountType,
		&parentID,
		&m.FundID,
		&m.EntityID,
		&m.Description,
		&m.NormalBalance,
		&m.Level,
		&m.IsDetailAccount,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	return m, nil
}

func collectAccounts(rows pgx.Rows) ([]models.Account, error) {
	defer rows.Close()
	ms := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return ms, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO chart_of_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.AccountCode,
		m.AccountName,
		m.AccountType,
		nullableString(m.ParentAccountID),
		m.FundID,
		m.EntityID,
		m.Description,
		m.NormalBalance,
		m.Level,
		m.IsDetailAccount,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account code %s for fund %s", apperrors.ErrDuplicate, m.AccountCode, m.FundID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE account_id = $1;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. IDs with no
// matching row are simply absent from the result map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE account_id = ANY($1);`

	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}

	accountsMap := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	return accountsMap, nil
}

// FindAccountsByIDsForUpdate selects accounts with row locks inside the
// caller's transaction so posting-time activity checks cannot race a
// concurrent deactivation.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM chart_of_accounts
		WHERE account_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts for update: %w", err)
	}
	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}

	accountsMap := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	return accountsMap, nil
}

// AccountCodeExists reports whether the (code, fund, entity) tuple is taken.
func (r *PgxAccountRepository) AccountCodeExists(ctx context.Context, accountCode, fundID, entityID, excludeAccountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM chart_of_accounts
			WHERE account_code = $1 AND fund_id = $2 AND entity_id = $3
			  AND ($4 = '' OR account_id != $4)
		);
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, accountCode, fundID, entityID, excludeAccountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account code %s: %w", accountCode, err)
	}
	return exists, nil
}

// HasActiveChildren reports whether any active account references the given
// account as parent.
func (r *PgxAccountRepository) HasActiveChildren(ctx context.Context, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM chart_of_accounts
			WHERE parent_account_id = $1 AND is_active = TRUE
		);
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check children of account %s: %w", accountID, err)
	}
	return exists, nil
}

// ListAccounts retrieves a page of accounts plus the total row count.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, entityID, fundID string, params pagination.Params) ([]domain.Account, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM chart_of_accounts WHERE entity_id = $1 AND ($2 = '' OR fund_id = $2);`
	if err := r.pool.QueryRow(ctx, countQuery, entityID, fundID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+accountColumns+`
		FROM chart_of_accounts
		WHERE entity_id = $1 AND ($2 = '' OR fund_id = $2)
		ORDER BY %s %s
		LIMIT $3 OFFSET $4;`,
		sortColumn(accountSortColumns, params.SortBy), params.SortOrder)

	rows, err := r.pool.Query(ctx, query, entityID, fundID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query accounts: %w", err)
	}
	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, 0, err
	}

	return mapping.ToDomainAccountSlice(ms), total, nil
}

// ListActiveAccounts retrieves all active accounts in scope ordered by code.
func (r *PgxAccountRepository) ListActiveAccounts(ctx context.Context, entityID, fundID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM chart_of_accounts
		WHERE entity_id = $1 AND ($2 = '' OR fund_id = $2) AND is_active = TRUE
		ORDER BY account_code;
	`
	rows, err := r.pool.Query(ctx, query, entityID, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active accounts: %w", err)
	}
	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// ListAccountsByType retrieves active accounts of one type ordered by code.
func (r *PgxAccountRepository) ListAccountsByType(ctx context.Context, entityID, fundID string, accountType domain.AccountType) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM chart_of_accounts
		WHERE entity_id = $1 AND ($2 = '' OR fund_id = $2) AND account_type = $3 AND is_active = TRUE
		ORDER BY account_code;
	`
	rows, err := r.pool.Query(ctx, query, entityID, fundID, string(accountType))
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by type %s: %w", accountType, err)
	}
	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// ListDetailAccounts retrieves active detail (postable) accounts ordered by code.
func (r *PgxAccountRepository) ListDetailAccounts(ctx context.Context, entityID, fundID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM chart_of_accounts
		WHERE entity_id = $1 AND ($2 = '' OR fund_id = $2) AND is_detail_account = TRUE AND is_active = TRUE
		ORDER BY account_code;
	`
	rows, err := r.pool.Query(ctx, query, entityID, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query detail accounts: %w", err)
	}
	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// SearchAccounts does a case-insensitive substring match on code or name over
// active accounts.
func (r *PgxAccountRepository) SearchAccounts(ctx context.Context, entityID, fundID, term string, limit int) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM chart_of_accounts
		WHERE entity_id = $1 AND ($2 = '' OR fund_id = $2) AND is_active = TRUE
		  AND (account_code ILIKE '%' || $3 || '%' OR account_name ILIKE '%' || $3 || '%')
		ORDER BY account_code
		LIMIT $4;
	`
	rows, err := r.pool.Query(ctx, query, entityID, fundID, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccount updates an existing account's mutable details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE chart_of_accounts
		SET account_code = $2, account_name = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.AccountCode,
		m.AccountName,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account code %s for fund %s", apperrors.ErrDuplicate, m.AccountCode, m.FundID)
		}
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE chart_of_accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
