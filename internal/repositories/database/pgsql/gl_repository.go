package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

const transactionColumns = `transaction_id, transaction_number, transaction_date, posting_date, description, reference_number, source_module, source_document_id, fund_id, entity_id, fiscal_year, period, status, total_debit, total_credit, approved_by, posted_by, posted_at, reversed_by, reversed_at, reversal_reason, created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `entry_id, transaction_id, account_id, debit_amount, credit_amount, description, line_number, cost_center, project_code, department_code, created_at, created_by, last_updated_at, last_updated_by`

var transactionSortColumns = map[string]string{
	"createdAt":         "created_at",
	"transactionDate":   "transaction_date",
	"postingDate":       "posting_date",
	"transactionNumber": "transaction_number",
	"status":            "status",
}

// PgxGLRepository persists GL transactions and entries. It embeds
// BaseRepository so the service layer can scope multi-step lifecycle
// sequences to one storage transaction.
type PgxGLRepository struct {
	BaseRepository
}

// newPgxGLRepository creates a new repository for general ledger data.
func newPgxGLRepository(pool *pgxpool.Pool) portsrepo.GLRepositoryWithTx {
	return &PgxGLRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GLRepositoryWithTx = (*PgxGLRepository)(nil)

func scanTransaction(row rowScanner) (models.GLTransaction, error) {
	var m models.GLTransaction
	var referenceNumber, sourceDocumentID, approvedBy, postedBy, reversedBy, reversalReason sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionNumber,
		&m.TransactionDate,
		&m.PostingDate,
		&m.Description,
		&referenceNumber,
		&m.SourceModule,
		&sourceDocumentID,
		&m.FundID,
		&m.EntityID,
		&m.FiscalYear,
		&m.Period,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&approvedBy,
		&postedBy,
		&m.PostedAt,
		&reversedBy,
		&m.ReversedAt,
		&reversalReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.GLTransaction{}, err
	}
	m.ReferenceNumber = referenceNumber.String
	m.SourceDocumentID = sourceDocumentID.String
	m.ApprovedBy = approvedBy.String
	m.PostedBy = postedBy.String
	m.ReversedBy = reversedBy.String
	m.ReversalReason = reversalReason.String
	return m, nil
}

func scanEntry(row rowScanner) (models.GLEntry, error) {
	var m models.GLEntry
	var costCenter, projectCode, departmentCode sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.TransactionID,
		&m.AccountID,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.Description,
		&m.LineNumber,
		&costCenter,
		&projectCode,
		&departmentCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.GLEntry{}, err
	}
	m.CostCenter = costCenter.String
	m.ProjectCode = projectCode.String
	m.DepartmentCode = departmentCode.String
	return m, nil
}

// SaveTransactionInTx persists a transaction header and all its lines inside
// the caller's transaction. The line inserts run as one batch; any failure
// rolls the whole unit back with the caller.
func (r *PgxGLRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.GLTransaction, entries []domain.GLEntry) error {
	m := mapping.ToModelTransaction(txn)

	headerQuery := `
		INSERT INTO gl_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	_, err := tx.Exec(ctx, headerQuery,
		m.TransactionID,
		m.TransactionNumber,
		m.TransactionDate,
		m.PostingDate,
		m.Description,
		nullableString(m.ReferenceNumber),
		m.SourceModule,
		nullableString(m.SourceDocumentID),
		m.FundID,
		m.EntityID,
		m.FiscalYear,
		m.Period,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		nullableString(m.ApprovedBy),
		nullableString(m.PostedBy),
		m.PostedAt,
		nullableString(m.ReversedBy),
		m.ReversedAt,
		nullableString(m.ReversalReason),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction number %s", apperrors.ErrDuplicate, m.TransactionNumber)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}

	entryQuery := `
		INSERT INTO gl_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		em := mapping.ToModelEntry(entry)
		batch.Queue(entryQuery,
			em.EntryID,
			em.TransactionID,
			em.AccountID,
			em.DebitAmount,
			em.CreditAmount,
			em.Description,
			em.LineNumber,
			nullableString(em.CostCenter),
			nullableString(em.ProjectCode),
			nullableString(em.DepartmentCode),
			em.CreatedAt,
			em.CreatedBy,
			em.LastUpdatedAt,
			em.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to save entry for transaction %s: %w", m.TransactionID, err)
		}
	}
	return nil
}

// FindTransactionByID retrieves a transaction header by its ID.
func (r *PgxGLRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.GLTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM gl_transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// FindTransactionByIDForUpdate re-reads a header with a row lock inside the
// caller's transaction.
func (r *PgxGLRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.GLTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM gl_transactions WHERE transaction_id = $1 FOR UPDATE;`

	m, err := scanTransaction(tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s for update: %w", transactionID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

func collectEntries(rows pgx.Rows) ([]domain.GLEntry, error) {
	defer rows.Close()
	ms := []models.GLEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return mapping.ToDomainEntrySlice(ms), nil
}

// FindEntriesByTransactionID retrieves a transaction's lines ordered by line number.
func (r *PgxGLRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.GLEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM gl_entries WHERE transaction_id = $1 ORDER BY line_number;`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for transaction %s: %w", transactionID, err)
	}
	return collectEntries(rows)
}

// FindEntriesByTransactionIDInTx reads a transaction's lines inside the caller's transaction.
func (r *PgxGLRepository) FindEntriesByTransactionIDInTx(ctx context.Context, tx pgx.Tx, transactionID string) ([]domain.GLEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM gl_entries WHERE transaction_id = $1 ORDER BY line_number;`

	rows, err := tx.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for transaction %s: %w", transactionID, err)
	}
	return collectEntries(rows)
}

// ListTransactions retrieves a page of transaction headers matching the
// filter plus the total row count.
func (r *PgxGLRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter, params pagination.Params) ([]domain.GLTransaction, int64, error) {
	conditions := []string{}
	args := []any{}

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.EntityID != "" {
		addCondition("entity_id = $%d", filter.EntityID)
	}
	if filter.FundID != "" {
		addCondition("fund_id = $%d", filter.FundID)
	}
	if filter.Status != "" {
		addCondition("status = $%d", string(filter.Status))
	}
	if filter.SourceModule != "" {
		addCondition("source_module = $%d", filter.SourceModule)
	}
	if filter.FiscalYear != 0 {
		addCondition("fiscal_year = $%d", filter.FiscalYear)
	}
	if filter.Period != 0 {
		addCondition("period = $%d", filter.Period)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM gl_transactions %s;`, where)
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+transactionColumns+`
		FROM gl_transactions %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d;`,
		where,
		sortColumn(transactionSortColumns, params.SortBy), params.SortOrder,
		len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	ms := []models.GLTransaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionSlice(ms), total, nil
}

// UpdateTransactionLifecycleInTx writes the status and lifecycle columns
// inside the caller's transaction.
func (r *PgxGLRepository) UpdateTransactionLifecycleInTx(ctx context.Context, tx pgx.Tx, txn domain.GLTransaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		UPDATE gl_transactions
		SET status = $2,
		    approved_by = $3,
		    posted_by = $4,
		    posted_at = $5,
		    reversed_by = $6,
		    reversed_at = $7,
		    reversal_reason = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Status,
		nullableString(m.ApprovedBy),
		nullableString(m.PostedBy),
		m.PostedAt,
		nullableString(m.ReversedBy),
		m.ReversedAt,
		nullableString(m.ReversalReason),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update lifecycle of transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
