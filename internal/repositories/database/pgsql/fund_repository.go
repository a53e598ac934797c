package pgsql

import (
	"context"
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

const fundColumns = `fund_id, fund_code, fund_name, fund_type, entity_id, description, is_active, budget_authority, carry_forward_allowed, created_at, created_by, last_updated_at, last_updated_by`

var fundSortColumns = map[string]string{
	"createdAt": "created_at",
	"fundCode":  "fund_code",
	"fundName":  "fund_name",
	"fundType":  "fund_type",
}

type PgxFundRepository struct {
	pool *pgxpool.Pool
}

// newPgxFundRepository creates a new repository for fund data.
func newPgxFundRepository(pool *pgxpool.Pool) portsrepo.FundRepositoryFacade {
	return &PgxFundRepository{pool: pool}
}

var _ portsrepo.FundRepositoryFacade = (*PgxFundRepository)(nil)

func scanFund(row rowScanner) (models.Fund, error) {
	var m models.Fund
	err := row.Scan(
		&m.FundID,
		&m.FundCode,
		&m.FundName,
		&m.FundType,
		&m.EntityID,
		&m.Description,
		&m.IsActive,
		&m.BudgetAuthority,
		&m.CarryForwardAllowed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Fund{}, err
	}
	return m, nil
}

// SaveFund inserts a new fund.
func (r *PgxFundRepository) SaveFund(ctx context.Context, fund domain.Fund) error {
	m := mapping.ToModelFund(fund)

	query := `
		INSERT INTO funds (` + fundColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		m.FundID,
		m.FundCode,
		m.FundName,
		m.FundType,
		m.EntityID,
		m.Description,
		m.IsActive,
		m.BudgetAuthority,
		m.CarryForwardAllowed,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fund code %s for entity %s", apperrors.ErrDuplicate, m.FundCode, m.EntityID)
		}
		return fmt.Errorf("failed to save fund %s: %w", m.FundID, err)
	}
	return nil
}

// FindFundByID retrieves a fund by its ID.
func (r *PgxFundRepository) FindFundByID(ctx context.Context, fundID string) (*domain.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM funds WHERE fund_id = $1;`

	m, err := scanFund(r.pool.QueryRow(ctx, query, fundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fund by ID %s: %w", fundID, err)
	}
	d := mapping.ToDomainFund(m)
	return &d, nil
}

// ListFundsByEntity retrieves a page of one entity's funds plus the total row count.
func (r *PgxFundRepository) ListFundsByEntity(ctx context.Context, entityID string, params pagination.Params) ([]domain.Fund, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM funds WHERE entity_id = $1;`, entityID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count funds for entity %s: %w", entityID, err)
	}

	query := fmt.Sprintf(`SELECT `+fundColumns+` FROM funds WHERE entity_id = $1 ORDER BY %s %s LIMIT $2 OFFSET $3;`,
		sortColumn(fundSortColumns, params.SortBy), params.SortOrder)

	rows, err := r.pool.Query(ctx, query, entityID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query funds for entity %s: %w", entityID, err)
	}
	defer rows.Close()

	ms := []models.Fund{}
	for rows.Next() {
		m, err := scanFund(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan fund row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating fund rows: %w", err)
	}

	return mapping.ToDomainFundSlice(ms), total, nil
}

// UpdateFund updates an existing fund's mutable details.
func (r *PgxFundRepository) UpdateFund(ctx context.Context, fund domain.Fund) error {
	m := mapping.ToModelFund(fund)

	query := `
		UPDATE funds
		SET fund_name = $2, description = $3, budget_authority = $4, last_updated_at = $5, last_updated_by = $6
		WHERE fund_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.FundID,
		m.FundName,
		m.Description,
		m.BudgetAuthority,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update fund %s: %w", m.FundID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateFund marks a fund as inactive.
func (r *PgxFundRepository) DeactivateFund(ctx context.Context, fundID string, userID string, now time.Time) error {
	query := `
		UPDATE funds
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE fund_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, fundID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate fund %s: %w", fundID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
