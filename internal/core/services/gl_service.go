package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/openfmis/ipsas_ledger/internal/apperrors"
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	portsrepo "github.com/openfmis/ipsas_ledger/internal/core/ports/repositories"
	portssvc "github.com/openfmis/ipsas_ledger/internal/core/ports/services"
	"github.com/openfmis/ipsas_ledger/internal/dto"
	"github.com/openfmis/ipsas_ledger/internal/middleware"
	"github.com/openfmis/ipsas_ledger/internal/utils"
	"github.com/openfmis/ipsas_ledger/internal/utils/accounting"
	"github.com/openfmis/ipsas_ledger/internal/utils/fiscal"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// defaultSourceModule tags manually captured journal entries.
const defaultSourceModule = "MANUAL"

// reversalSourceModule tags system-generated reversing entries.
const reversalSourceModule = "SYSTEM"

// glService drives the transaction lifecycle state machine. Every multi-row
// mutation runs inside one storage transaction; the reversal sequence
// (create, approve, post, mark original) commits or rolls back as one unit.
type glService struct {
	glRepo      portsrepo.GLRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	entitySvc   portssvc.EntitySvcFacade
	fundSvc     portssvc.FundSvcFacade
}

// NewGLService creates a new GLService.
func NewGLService(glRepo portsrepo.GLRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade, entitySvc portssvc.EntitySvcFacade, fundSvc portssvc.FundSvcFacade) portssvc.GLSvcFacade {
	return &glService{
		glRepo:      glRepo,
		accountRepo: accountRepo,
		entitySvc:   entitySvc,
		fundSvc:     fundSvc,
	}
}

var _ portssvc.GLSvcFacade = (*glService)(nil)

// withTx runs fn inside one storage transaction, rolling back on any error.
func (s *glService) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.glRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := s.glRepo.Rollback(ctx, tx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to roll back transaction", slog.String("error", rbErr.Error()))
		}
		return err
	}
	if err := s.glRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// generateTransactionNumber builds a GL<yy><pp><suffix> number: two-digit
// fiscal year, two-digit period, six hex characters of randomness.
func generateTransactionNumber(fiscalYear, period int) (string, error) {
	suffix, err := utils.GenerateSecureRandomString(3)
	if err != nil {
		return "", fmt.Errorf("failed to generate transaction number: %w", err)
	}
	return fmt.Sprintf("GL%02d%02d%s", fiscalYear%100, period, strings.ToUpper(suffix)), nil
}

func amountOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// CreateJournalEntry validates a journal entry and persists it in DRAFT
// status, header and lines atomically.
func (s *glService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.GLTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created *domain.GLTransaction
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		txn, err := s.createDraftInTx(ctx, tx, req, creatorUserID)
		if err != nil {
			return err
		}
		created = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Journal entry created",
		slog.String("transaction_id", created.TransactionID),
		slog.String("transaction_number", created.TransactionNumber),
		slog.String("total_debit", created.TotalDebit.StringFixed(2)))
	return created, nil
}

// createDraftInTx validates and persists a DRAFT transaction inside the
// caller's storage transaction. Reversal reuses it so the reversing entry is
// written in the same atomic unit as the original's status change.
func (s *glService) createDraftInTx(ctx context.Context, tx pgx.Tx, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.GLTransaction, error) {
	entity, err := s.entitySvc.GetEntityByID(ctx, req.EntityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: entity %s not found", apperrors.ErrValidation, req.EntityID)
		}
		return nil, err
	}
	if !entity.IsActive {
		return nil, fmt.Errorf("%w: entity %s is inactive", apperrors.ErrValidation, req.EntityID)
	}

	fund, err := s.fundSvc.GetFundByID(ctx, req.FundID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: fund %s not found", apperrors.ErrValidation, req.FundID)
		}
		return nil, err
	}
	if fund.EntityID != req.EntityID {
		return nil, fmt.Errorf("%w: fund %s does not belong to entity %s", apperrors.ErrValidation, req.FundID, req.EntityID)
	}
	if !fund.IsActive {
		return nil, fmt.Errorf("%w: fund %s is inactive", apperrors.ErrValidation, req.FundID)
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	entries := make([]domain.GLEntry, len(req.Entries))
	accountIDs := make([]string, 0, len(req.Entries))
	for i, line := range req.Entries {
		entries[i] = domain.GLEntry{
			EntryID:        uuid.NewString(),
			TransactionID:  transactionID,
			AccountID:      line.AccountID,
			DebitAmount:    amountOrZero(line.DebitAmount),
			CreditAmount:   amountOrZero(line.CreditAmount),
			Description:    line.Description,
			LineNumber:     i + 1,
			CostCenter:     line.CostCenter,
			ProjectCode:    line.ProjectCode,
			DepartmentCode: line.DepartmentCode,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, line.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for journal entry: %w", err)
	}
	for id, acc := range accounts {
		if acc.FundID != req.FundID || acc.EntityID != req.EntityID {
			return nil, fmt.Errorf("%w: account %s belongs to a different fund or entity", apperrors.ErrValidation, id)
		}
	}

	if err := ValidateJournalEntries(entries, accounts); err != nil {
		return nil, err
	}
	totalDebit, totalCredit, err := CheckBalance(entries)
	if err != nil {
		return nil, err
	}

	period, err := fiscal.GetFiscalPeriod(req.TransactionDate, entity.FiscalYearEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	transactionNumber := req.TransactionNumber
	if transactionNumber == "" {
		transactionNumber, err = generateTransactionNumber(period.FiscalYear, period.Period)
		if err != nil {
			return nil, err
		}
	}

	sourceModule := req.SourceModule
	if sourceModule == "" {
		sourceModule = defaultSourceModule
	}

	txn := domain.GLTransaction{
		TransactionID:     transactionID,
		TransactionNumber: transactionNumber,
		TransactionDate:   req.TransactionDate,
		PostingDate:       req.PostingDate,
		Description:       req.Description,
		ReferenceNumber:   req.ReferenceNumber,
		SourceModule:      sourceModule,
		SourceDocumentID:  req.SourceDocumentID,
		FundID:            req.FundID,
		EntityID:          req.EntityID,
		FiscalYear:        period.FiscalYear,
		Period:            period.Period,
		Status:            domain.StatusDraft,
		TotalDebit:        totalDebit,
		TotalCredit:       totalCredit,
		Entries:           entries,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.glRepo.SaveTransactionInTx(ctx, tx, txn, entries); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: transaction number %s already exists", apperrors.ErrDuplicate, transactionNumber)
		}
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	return &txn, nil
}

// GetTransactionByID retrieves a transaction with its lines loaded.
func (s *glService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.GLTransaction, error) {
	txn, err := s.glRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find transaction by ID", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	entries, err := s.glRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch entries for transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to fetch entries for transaction %s: %w", transactionID, err)
	}
	txn.Entries = entries
	return txn, nil
}

// ListTransactions retrieves a filtered page of transaction headers.
func (s *glService) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter, params pagination.Params) ([]domain.GLTransaction, pagination.PageInfo, error) {
	txns, total, err := s.glRepo.ListTransactions(ctx, filter, params)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, pagination.PageInfo{}, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, pagination.NewPageInfo(params, total), nil
}

// ApproveTransaction moves a DRAFT transaction to APPROVED. The status is
// re-read under a row lock so concurrent approvals serialize; the loser sees
// APPROVED and fails with an invalid-state error.
func (s *glService) ApproveTransaction(ctx context.Context, transactionID string, approverUserID string) (*domain.GLTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var approved *domain.GLTransaction
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		txn, err := s.approveInTx(ctx, tx, transactionID, approverUserID)
		if err != nil {
			return err
		}
		approved = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction approved", slog.String("transaction_id", transactionID), slog.String("approved_by", approverUserID))
	return approved, nil
}

func (s *glService) approveInTx(ctx context.Context, tx pgx.Tx, transactionID string, approverUserID string) (*domain.GLTransaction, error) {
	txn, err := s.glRepo.FindTransactionByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: only DRAFT transactions can be approved, transaction %s is %s", apperrors.ErrInvalidState, txn.TransactionNumber, txn.Status)
	}
	if !txn.IsBalanced() {
		return nil, fmt.Errorf("%w: debits total %s but credits total %s", apperrors.ErrUnbalanced, txn.TotalDebit.StringFixed(2), txn.TotalCredit.StringFixed(2))
	}

	now := time.Now().UTC()
	txn.Status = domain.StatusApproved
	txn.ApprovedBy = approverUserID
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = approverUserID

	if err := s.glRepo.UpdateTransactionLifecycleInTx(ctx, tx, *txn); err != nil {
		return nil, fmt.Errorf("failed to approve transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// PostTransaction moves an APPROVED transaction to POSTED. Referenced
// accounts are re-read under row locks at post time: an account deactivated
// between approval and posting fails the call with a conflict.
func (s *glService) PostTransaction(ctx context.Context, transactionID string, posterUserID string) (*domain.GLTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var posted *domain.GLTransaction
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		txn, err := s.postInTx(ctx, tx, transactionID, posterUserID)
		if err != nil {
			return err
		}
		posted = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction posted", slog.String("transaction_id", transactionID), slog.String("posted_by", posterUserID))
	return posted, nil
}

func (s *glService) postInTx(ctx context.Context, tx pgx.Tx, transactionID string, posterUserID string) (*domain.GLTransaction, error) {
	txn, err := s.glRepo.FindTransactionByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.Status != domain.StatusApproved {
		return nil, fmt.Errorf("%w: only APPROVED transactions can be posted, transaction %s is %s", apperrors.ErrInvalidState, txn.TransactionNumber, txn.Status)
	}
	if !txn.IsBalanced() {
		return nil, fmt.Errorf("%w: debits total %s but credits total %s", apperrors.ErrUnbalanced, txn.TotalDebit.StringFixed(2), txn.TotalCredit.StringFixed(2))
	}

	entries, err := s.glRepo.FindEntriesByTransactionIDInTx(ctx, tx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries for transaction %s: %w", transactionID, err)
	}

	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		accountIDs = append(accountIDs, e.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts for posting: %w", err)
	}
	for _, e := range entries {
		acc, found := accounts[e.AccountID]
		if !found {
			return nil, fmt.Errorf("account %s on line %d: %w", e.AccountID, e.LineNumber, apperrors.ErrNotFound)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s (%s) was deactivated and can no longer receive postings", apperrors.ErrConflict, acc.AccountCode, acc.AccountID)
		}
	}

	now := time.Now().UTC()
	txn.Status = domain.StatusPosted
	txn.PostedBy = posterUserID
	txn.PostedAt = &now
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = posterUserID
	txn.Entries = entries

	if err := s.glRepo.UpdateTransactionLifecycleInTx(ctx, tx, *txn); err != nil {
		return nil, fmt.Errorf("failed to post transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ReverseTransaction reverses a POSTED transaction by creating a mirror
// transaction (debits and credits swapped per line), driving it through
// approval and posting, then marking the original REVERSED. The whole
// sequence runs in one storage transaction; a failure at any step leaves
// neither the reversing entry nor the status change behind.
func (s *glService) ReverseTransaction(ctx context.Context, transactionID string, reason string, reverserUserID string) (*domain.GLTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a reversal reason is required", apperrors.ErrValidation)
	}

	var reversal *domain.GLTransaction
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		original, err := s.glRepo.FindTransactionByIDForUpdate(ctx, tx, transactionID)
		if err != nil {
			return fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
		}
		if !original.CanBeReversed() {
			return fmt.Errorf("%w: only POSTED transactions can be reversed, transaction %s is %s", apperrors.ErrInvalidState, original.TransactionNumber, original.Status)
		}

		originalEntries, err := s.glRepo.FindEntriesByTransactionIDInTx(ctx, tx, transactionID)
		if err != nil {
			return fmt.Errorf("failed to fetch entries for transaction %s: %w", transactionID, err)
		}

		mirrored := accounting.MirrorEntries(originalEntries)
		lines := make([]dto.JournalEntryLineRequest, len(mirrored))
		for i, m := range mirrored {
			debit, credit := m.DebitAmount, m.CreditAmount
			lines[i] = dto.JournalEntryLineRequest{
				AccountID:      m.AccountID,
				DebitAmount:    &debit,
				CreditAmount:   &credit,
				Description:    m.Description,
				CostCenter:     m.CostCenter,
				ProjectCode:    m.ProjectCode,
				DepartmentCode: m.DepartmentCode,
			}
		}

		now := time.Now().UTC()
		createReq := dto.CreateJournalEntryRequest{
			TransactionDate:  now,
			PostingDate:      now,
			Description:      fmt.Sprintf("Reversal of %s: %s", original.TransactionNumber, reason),
			ReferenceNumber:  original.TransactionNumber,
			SourceModule:     reversalSourceModule,
			SourceDocumentID: original.TransactionID,
			FundID:           original.FundID,
			EntityID:         original.EntityID,
			Entries:          lines,
		}

		draft, err := s.createDraftInTx(ctx, tx, createReq, reverserUserID)
		if err != nil {
			return fmt.Errorf("failed to create reversing entry: %w", err)
		}
		if _, err := s.approveInTx(ctx, tx, draft.TransactionID, reverserUserID); err != nil {
			return fmt.Errorf("failed to approve reversing entry: %w", err)
		}
		posted, err := s.postInTx(ctx, tx, draft.TransactionID, reverserUserID)
		if err != nil {
			return fmt.Errorf("failed to post reversing entry: %w", err)
		}

		original.Status = domain.StatusReversed
		original.ReversedBy = reverserUserID
		original.ReversedAt = &now
		original.ReversalReason = reason
		original.LastUpdatedAt = now
		original.LastUpdatedBy = reverserUserID
		if err := s.glRepo.UpdateTransactionLifecycleInTx(ctx, tx, *original); err != nil {
			return fmt.Errorf("failed to mark transaction %s reversed: %w", transactionID, err)
		}

		reversal = posted
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction reversed",
		slog.String("original_transaction_id", transactionID),
		slog.String("reversal_transaction_id", reversal.TransactionID),
		slog.String("reversed_by", reverserUserID))
	return reversal, nil
}
