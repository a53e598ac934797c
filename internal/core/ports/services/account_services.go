package services

import (
	"context"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/dto"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts scoped to an
	// entity and optionally a fund.
	ListAccounts(ctx context.Context, entityID, fundID string, params pagination.Params) ([]domain.Account, pagination.PageInfo, error)

	// ListActiveAccounts retrieves every active account in scope, ordered
	// by account code.
	ListActiveAccounts(ctx context.Context, entityID, fundID string) ([]domain.Account, error)

	// ListAccountsByType retrieves active accounts of one account type.
	ListAccountsByType(ctx context.Context, entityID, fundID string, accountType domain.AccountType) ([]domain.Account, error)

	// ListDetailAccounts retrieves the active postable (leaf) accounts.
	ListDetailAccounts(ctx context.Context, entityID, fundID string) ([]domain.Account, error)

	// GetAccountHierarchy builds the account forest for an entity/fund,
	// children ordered by account code at every level.
	GetAccountHierarchy(ctx context.Context, entityID, fundID string) ([]domain.AccountNode, error)

	// SearchAccounts finds active accounts whose code or name matches the
	// term, capped at 50 results.
	SearchAccounts(ctx context.Context, entityID, fundID, term string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount persists a new account after hierarchy validation.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates mutable account details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive if it has no active children.
	DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
