package dto

import (
	"time"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryLineRequest is one debit/credit line of a journal entry.
// Exactly one of DebitAmount/CreditAmount must be positive; the validator in
// the service enforces the exclusivity.
type JournalEntryLineRequest struct {
	AccountID      string           `json:"accountID" binding:"required,uuid"`
	DebitAmount    *decimal.Decimal `json:"debitAmount"`
	CreditAmount   *decimal.Decimal `json:"creditAmount"`
	Description    string           `json:"description" binding:"max=500"`
	CostCenter     string           `json:"costCenter" binding:"max=20"`
	ProjectCode    string           `json:"projectCode" binding:"max=20"`
	DepartmentCode string           `json:"departmentCode" binding:"max=20"`
}

// CreateJournalEntryRequest defines the data needed to record a journal entry.
// TransactionNumber is generated when absent.
type CreateJournalEntryRequest struct {
	TransactionNumber string                    `json:"transactionNumber" binding:"omitempty,max=50"`
	TransactionDate   time.Time                 `json:"transactionDate" binding:"required"`
	PostingDate       time.Time                 `json:"postingDate" binding:"required"`
	Description       string                    `json:"description" binding:"required,min=5,max=1000"`
	ReferenceNumber   string                    `json:"referenceNumber" binding:"max=100"`
	SourceModule      string                    `json:"sourceModule" binding:"omitempty,oneof=REVENUE BUDGET EXPENDITURE ASSET LIABILITY MANUAL SYSTEM"`
	SourceDocumentID  string                    `json:"sourceDocumentID" binding:"omitempty,uuid"`
	FundID            string                    `json:"fundID" binding:"required,uuid"`
	EntityID          string                    `json:"entityID" binding:"required,uuid"`
	Entries           []JournalEntryLineRequest `json:"entries" binding:"required,min=2,dive"`
}

// ReverseTransactionRequest carries the reason for reversing a posted transaction.
type ReverseTransactionRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=1000"`
}

// ListTransactionsParams carries listing filters plus pagination inputs.
type ListTransactionsParams struct {
	EntityID     string `form:"entityID" binding:"omitempty,uuid"`
	FundID       string `form:"fundID" binding:"omitempty,uuid"`
	Status       string `form:"status" binding:"omitempty,oneof=DRAFT PENDING APPROVED POSTED REVERSED"`
	SourceModule string `form:"sourceModule"`
	FiscalYear   int    `form:"fiscalYear"`
	Period       int    `form:"period" binding:"omitempty,min=1,max=12"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
	SortBy       string `form:"sortBy"`
	SortOrder    string `form:"sortOrder"`
}

// GLEntryResponse is one journal line in API responses.
type GLEntryResponse struct {
	EntryID        string          `json:"entryID"`
	TransactionID  string          `json:"transactionID"`
	AccountID      string          `json:"accountID"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	Description    string          `json:"description"`
	LineNumber     int             `json:"lineNumber"`
	CostCenter     string          `json:"costCenter,omitempty"`
	ProjectCode    string          `json:"projectCode,omitempty"`
	DepartmentCode string          `json:"departmentCode,omitempty"`
}

// GLTransactionResponse is a transaction header plus optionally its lines.
type GLTransactionResponse struct {
	TransactionID     string                   `json:"transactionID"`
	TransactionNumber string                   `json:"transactionNumber"`
	TransactionDate   time.Time                `json:"transactionDate"`
	PostingDate       time.Time                `json:"postingDate"`
	Description       string                   `json:"description"`
	ReferenceNumber   string                   `json:"referenceNumber,omitempty"`
	SourceModule      string                   `json:"sourceModule"`
	SourceDocumentID  string                   `json:"sourceDocumentID,omitempty"`
	FundID            string                   `json:"fundID"`
	EntityID          string                   `json:"entityID"`
	FiscalYear        int                      `json:"fiscalYear"`
	Period            int                      `json:"period"`
	Status            domain.TransactionStatus `json:"status"`
	TotalDebit        decimal.Decimal          `json:"totalDebit"`
	TotalCredit       decimal.Decimal          `json:"totalCredit"`
	CreatedBy         string                   `json:"createdBy"`
	ApprovedBy        string                   `json:"approvedBy,omitempty"`
	PostedBy          string                   `json:"postedBy,omitempty"`
	PostedAt          *time.Time               `json:"postedAt,omitempty"`
	ReversedBy        string                   `json:"reversedBy,omitempty"`
	ReversedAt        *time.Time               `json:"reversedAt,omitempty"`
	ReversalReason    string                   `json:"reversalReason,omitempty"`
	CreatedAt         time.Time                `json:"createdAt"`
	Entries           []GLEntryResponse        `json:"entries,omitempty"`
}

// ToGLEntryResponse converts a domain.GLEntry to its DTO form
func ToGLEntryResponse(e domain.GLEntry) GLEntryResponse {
	return GLEntryResponse{
		EntryID:        e.EntryID,
		TransactionID:  e.TransactionID,
		AccountID:      e.AccountID,
		DebitAmount:    e.DebitAmount,
		CreditAmount:   e.CreditAmount,
		Description:    e.Description,
		LineNumber:     e.LineNumber,
		CostCenter:     e.CostCenter,
		ProjectCode:    e.ProjectCode,
		DepartmentCode: e.DepartmentCode,
	}
}

// ToGLTransactionResponse converts a domain.GLTransaction to its DTO form
func ToGLTransactionResponse(t *domain.GLTransaction) GLTransactionResponse {
	resp := GLTransactionResponse{
		TransactionID:     t.TransactionID,
		TransactionNumber: t.TransactionNumber,
		TransactionDate:   t.TransactionDate,
		PostingDate:       t.PostingDate,
		Description:       t.Description,
		ReferenceNumber:   t.ReferenceNumber,
		SourceModule:      t.SourceModule,
		SourceDocumentID:  t.SourceDocumentID,
		FundID:            t.FundID,
		EntityID:          t.EntityID,
		FiscalYear:        t.FiscalYear,
		Period:            t.Period,
		Status:            t.Status,
		TotalDebit:        t.TotalDebit,
		TotalCredit:       t.TotalCredit,
		CreatedBy:         t.CreatedBy,
		ApprovedBy:        t.ApprovedBy,
		PostedBy:          t.PostedBy,
		PostedAt:          t.PostedAt,
		ReversedBy:        t.ReversedBy,
		ReversedAt:        t.ReversedAt,
		ReversalReason:    t.ReversalReason,
		CreatedAt:         t.CreatedAt,
	}
	if len(t.Entries) > 0 {
		resp.Entries = make([]GLEntryResponse, len(t.Entries))
		for i, e := range t.Entries {
			resp.Entries[i] = ToGLEntryResponse(e)
		}
	}
	return resp
}

// ToGLTransactionResponses converts domain transaction headers to DTOs
func ToGLTransactionResponses(txns []domain.GLTransaction) []GLTransactionResponse {
	out := make([]GLTransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToGLTransactionResponse(&txns[i])
	}
	return out
}
