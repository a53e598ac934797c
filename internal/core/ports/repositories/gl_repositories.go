package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// TransactionFilter narrows GL transaction listings.
type TransactionFilter struct {
	EntityID     string
	FundID       string
	Status       domain.TransactionStatus
	SourceModule string
	FiscalYear   int
	Period       int
}

// GLReader defines read operations for GL transaction data
type GLReader interface {
	// FindTransactionByID retrieves a transaction header by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.GLTransaction, error)

	// FindEntriesByTransactionID retrieves the lines of a transaction ordered by line number.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.GLEntry, error)

	// ListTransactions retrieves a page of transaction headers matching the
	// filter plus the total row count.
	ListTransactions(ctx context.Context, filter TransactionFilter, params pagination.Params) ([]domain.GLTransaction, int64, error)
}

// GLWriter defines write operations for GL transaction data. Lifecycle
// mutations take an explicit pgx.Tx so multi-step sequences (notably
// reversal) commit or roll back as one unit.
type GLWriter interface {
	// SaveTransactionInTx persists a transaction header and all its lines
	// inside the caller's transaction. Header and lines land together or not
	// at all.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.GLTransaction, entries []domain.GLEntry) error

	// FindTransactionByIDForUpdate re-reads a header with a row lock inside
	// the caller's transaction, so concurrent lifecycle calls serialize on
	// the status check.
	FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.GLTransaction, error)

	// FindEntriesByTransactionIDInTx reads a transaction's lines inside the caller's transaction.
	FindEntriesByTransactionIDInTx(ctx context.Context, tx pgx.Tx, transactionID string) ([]domain.GLEntry, error)

	// UpdateTransactionLifecycleInTx writes the status plus the lifecycle
	// actor/timestamp/reason columns inside the caller's transaction.
	UpdateTransactionLifecycleInTx(ctx context.Context, tx pgx.Tx, txn domain.GLTransaction) error
}

// GLRepositoryFacade combines all GL repository interfaces
type GLRepositoryFacade interface {
	GLReader
	GLWriter
}

// GLRepositoryWithTx extends GLRepositoryFacade with transaction capabilities
type GLRepositoryWithTx interface {
	GLRepositoryFacade
	TransactionManager
}
