package services

import (
	"context"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/core/ports/repositories"
	"github.com/openfmis/ipsas_ledger/internal/dto"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// GLReaderSvc defines read operations for general ledger transactions
type GLReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its entry lines.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.GLTransaction, error)

	// ListTransactions retrieves a filtered, paginated list of transaction
	// headers (entry lines are not loaded).
	ListTransactions(ctx context.Context, filter repositories.TransactionFilter, params pagination.Params) ([]domain.GLTransaction, pagination.PageInfo, error)
}

// GLWriterSvc defines the transaction lifecycle operations
type GLWriterSvc interface {
	// CreateJournalEntry validates and persists a balanced journal entry in
	// DRAFT status.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.GLTransaction, error)

	// ApproveTransaction moves a DRAFT transaction to APPROVED.
	ApproveTransaction(ctx context.Context, transactionID string, approverUserID string) (*domain.GLTransaction, error)

	// PostTransaction moves an APPROVED transaction to POSTED, making it
	// immutable ledger fact.
	PostTransaction(ctx context.Context, transactionID string, posterUserID string) (*domain.GLTransaction, error)

	// ReverseTransaction creates a posted compensating transaction that
	// mirrors a POSTED original and marks the original REVERSED.
	ReverseTransaction(ctx context.Context, transactionID string, reason string, reverserUserID string) (*domain.GLTransaction, error)
}

// GLSvcFacade combines all general-ledger service interfaces
type GLSvcFacade interface {
	GLReaderSvc
	GLWriterSvc
}
