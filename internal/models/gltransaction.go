package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the persisted lifecycle state of a GL transaction.
type TransactionStatus string

// GLTransaction represents a row in the gl_transactions table.
type GLTransaction struct {
	TransactionID     string            `db:"transaction_id"`
	TransactionNumber string            `db:"transaction_number"`
	TransactionDate   time.Time         `db:"transaction_date"`
	PostingDate       time.Time         `db:"posting_date"`
	Description       string            `db:"description"`
	ReferenceNumber   string            `db:"reference_number"` // Nullable
	SourceModule      string            `db:"source_module"`
	SourceDocumentID  string            `db:"source_document_id"` // Nullable
	FundID            string            `db:"fund_id"`
	EntityID          string            `db:"entity_id"`
	FiscalYear        int               `db:"fiscal_year"`
	Period            int               `db:"period"`
	Status            TransactionStatus `db:"status"`
	TotalDebit        decimal.Decimal   `db:"total_debit"`
	TotalCredit       decimal.Decimal   `db:"total_credit"`
	ApprovedBy        string            `db:"approved_by"` // Nullable
	PostedBy          string            `db:"posted_by"`   // Nullable
	PostedAt          *time.Time        `db:"posted_at"`
	ReversedBy        string            `db:"reversed_by"` // Nullable
	ReversedAt        *time.Time        `db:"reversed_at"`
	ReversalReason    string            `db:"reversal_reason"` // Nullable
	AuditFields
}

// GLEntry represents a row in the gl_entries table.
type GLEntry struct {
	EntryID        string          `db:"entry_id"`
	TransactionID  string          `db:"transaction_id"`
	AccountID      string          `db:"account_id"`
	DebitAmount    decimal.Decimal `db:"debit_amount"`
	CreditAmount   decimal.Decimal `db:"credit_amount"`
	Description    string          `db:"description"`
	LineNumber     int             `db:"line_number"`
	CostCenter     string          `db:"cost_center"`     // Nullable
	ProjectCode    string          `db:"project_code"`    // Nullable
	DepartmentCode string          `db:"department_code"` // Nullable
	AuditFields
}
