package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// AccountCodeExists reports whether (accountCode, fundID, entityID) is
	// already taken, excluding excludeAccountID when non-empty.
	AccountCodeExists(ctx context.Context, accountCode, fundID, entityID, excludeAccountID string) (bool, error)

	// HasActiveChildren reports whether any active account references the given account as parent.
	HasActiveChildren(ctx context.Context, accountID string) (bool, error)

	// ListAccounts retrieves a page of accounts for a fund/entity plus the total row count.
	ListAccounts(ctx context.Context, entityID, fundID string, params pagination.Params) ([]domain.Account, int64, error)

	// ListActiveAccounts retrieves all active accounts for a fund/entity ordered by account code.
	ListActiveAccounts(ctx context.Context, entityID, fundID string) ([]domain.Account, error)

	// ListAccountsByType retrieves active accounts of one type ordered by account code.
	ListAccountsByType(ctx context.Context, entityID, fundID string, accountType domain.AccountType) ([]domain.Account, error)

	// ListDetailAccounts retrieves active detail (postable) accounts ordered by account code.
	ListDetailAccounts(ctx context.Context, entityID, fundID string) ([]domain.Account, error)

	// SearchAccounts does a case-insensitive substring match on code or name
	// over active accounts, capped at limit rows ordered by account code.
	SearchAccounts(ctx context.Context, entityID, fundID, term string, limit int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines account operations that participate in a
// caller-owned storage transaction.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update
	// within a transaction, so posting-time activity checks see a consistent
	// snapshot.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
