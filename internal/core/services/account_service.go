package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/openfmis/ipsas_ledger/internal/apperrors"
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	portsrepo "github.com/openfmis/ipsas_ledger/internal/core/ports/repositories"
	portssvc "github.com/openfmis/ipsas_ledger/internal/core/ports/services"
	"github.com/openfmis/ipsas_ledger/internal/dto"
	"github.com/openfmis/ipsas_ledger/internal/middleware"
	"github.com/openfmis/ipsas_ledger/internal/utils/accounting"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// searchResultCap bounds account search result sets.
const searchResultCap = 50

// accountService provides chart-of-accounts operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	fundSvc     portssvc.FundSvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, fundSvc portssvc.FundSvcFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, fundSvc: fundSvc}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates hierarchy placement and persists a new account.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fund, err := s.fundSvc.GetFundByID(ctx, req.FundID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: fund %s not found", apperrors.ErrValidation, req.FundID)
		}
		return nil, fmt.Errorf("failed to fetch fund: %w", err)
	}
	if fund.EntityID != req.EntityID {
		return nil, fmt.Errorf("%w: fund %s does not belong to entity %s", apperrors.ErrValidation, req.FundID, req.EntityID)
	}
	if !fund.IsActive {
		return nil, fmt.Errorf("%w: fund %s is inactive", apperrors.ErrValidation, req.FundID)
	}

	exists, err := s.accountRepo.AccountCodeExists(ctx, req.AccountCode, req.FundID, req.EntityID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check account code uniqueness: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: account code %s already exists for this fund and entity", apperrors.ErrDuplicate, req.AccountCode)
	}

	level := 1
	parentAccountID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("parent account %s: %w", *req.ParentAccountID, apperrors.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		if parent.FundID != req.FundID || parent.EntityID != req.EntityID {
			return nil, fmt.Errorf("%w: parent account %s belongs to a different fund or entity", apperrors.ErrValidation, parent.AccountID)
		}
		if !parent.IsActive {
			return nil, fmt.Errorf("%w: parent account %s is inactive", apperrors.ErrValidation, parent.AccountID)
		}
		if parent.Level >= domain.MaxAccountLevel {
			return nil, fmt.Errorf("%w: account hierarchy depth may not exceed %d levels", apperrors.ErrValidation, domain.MaxAccountLevel)
		}
		level = parent.Level + 1
		parentAccountID = parent.AccountID
	}

	normalBalance := accounting.DefaultNormalBalance(req.AccountType)
	if req.NormalBalance != nil {
		normalBalance = *req.NormalBalance
	}

	isDetail := true
	if req.IsDetailAccount != nil {
		isDetail = *req.IsDetailAccount
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		AccountCode:     req.AccountCode,
		AccountName:     req.AccountName,
		AccountType:     req.AccountType,
		ParentAccountID: parentAccountID,
		FundID:          req.FundID,
		EntityID:        req.EntityID,
		Description:     req.Description,
		NormalBalance:   normalBalance,
		Level:           level,
		IsDetailAccount: isDetail,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists for this fund and entity", apperrors.ErrDuplicate, req.AccountCode)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_code", req.AccountCode))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_code", account.AccountCode),
		slog.Int("level", account.Level))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch accounts by IDs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves a page of accounts with page metadata.
func (s *accountService) ListAccounts(ctx context.Context, entityID, fundID string, params pagination.Params) ([]domain.Account, pagination.PageInfo, error) {
	accounts, total, err := s.accountRepo.ListAccounts(ctx, entityID, fundID, params)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, pagination.PageInfo{}, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, pagination.NewPageInfo(params, total), nil
}

// ListActiveAccounts retrieves every active account in scope.
func (s *accountService) ListActiveAccounts(ctx context.Context, entityID, fundID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListActiveAccounts(ctx, entityID, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}
	return accounts, nil
}

// ListAccountsByType retrieves active accounts of one account type.
func (s *accountService) ListAccountsByType(ctx context.Context, entityID, fundID string, accountType domain.AccountType) ([]domain.Account, error) {
	switch accountType {
	case domain.Asset, domain.Liability, domain.NetPosition, domain.Revenue, domain.Expense:
	default:
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	accounts, err := s.accountRepo.ListAccountsByType(ctx, entityID, fundID, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by type: %w", err)
	}
	return accounts, nil
}

// ListDetailAccounts retrieves the active postable (leaf) accounts.
func (s *accountService) ListDetailAccounts(ctx context.Context, entityID, fundID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListDetailAccounts(ctx, entityID, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list detail accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountHierarchy builds the nested account forest from the flat active
// account list. Children are attached by parent ID and ordered by account
// code at every depth.
func (s *accountService) GetAccountHierarchy(ctx context.Context, entityID, fundID string) ([]domain.AccountNode, error) {
	accounts, err := s.accountRepo.ListActiveAccounts(ctx, entityID, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for hierarchy: %w", err)
	}

	childrenByParent := make(map[string][]domain.Account)
	for _, acc := range accounts {
		childrenByParent[acc.ParentAccountID] = append(childrenByParent[acc.ParentAccountID], acc)
	}

	var build func(parentID string) []domain.AccountNode
	build = func(parentID string) []domain.AccountNode {
		children := childrenByParent[parentID]
		sort.Slice(children, func(i, j int) bool {
			return children[i].AccountCode < children[j].AccountCode
		})
		nodes := make([]domain.AccountNode, len(children))
		for i, child := range children {
			nodes[i] = domain.AccountNode{
				Account:  child,
				Level:    child.Level,
				Children: build(child.AccountID),
			}
		}
		return nodes
	}

	return build(""), nil
}

// SearchAccounts finds active accounts matching the term, capped at 50 rows.
func (s *accountService) SearchAccounts(ctx context.Context, entityID, fundID, term string) ([]domain.Account, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", apperrors.ErrValidation)
	}
	accounts, err := s.accountRepo.SearchAccounts(ctx, entityID, fundID, term, searchResultCap)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies the provided field updates to an account.
// Re-parenting is rejected: level is fixed at creation time and moving a
// subtree would silently invalidate the levels of every descendant.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s for update: %w", accountID, err)
	}

	if req.ParentAccountID != nil && *req.ParentAccountID != account.ParentAccountID {
		return nil, fmt.Errorf("%w: changing the parent account is not supported", apperrors.ErrValidation)
	}

	if req.AccountCode != nil && *req.AccountCode != account.AccountCode {
		exists, err := s.accountRepo.AccountCodeExists(ctx, *req.AccountCode, account.FundID, account.EntityID, account.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to check account code uniqueness: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("%w: account code %s already exists for this fund and entity", apperrors.ErrDuplicate, *req.AccountCode)
		}
		account.AccountCode = *req.AccountCode
	}
	if req.AccountName != nil {
		account.AccountName = *req.AccountName
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account inactive unless active children still
// reference it.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s for deactivation: %w", accountID, err)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrValidation, accountID)
	}

	hasChildren, err := s.accountRepo.HasActiveChildren(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check children of account %s: %w", accountID, err)
	}
	if hasChildren {
		return fmt.Errorf("%w: account %s has active children", apperrors.ErrConflict, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, requestingUserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
