package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a GL transaction. The state
// machine is forward-only: DRAFT -> APPROVED -> POSTED -> REVERSED. PENDING
// exists for an external submission workflow and is never produced here.
type TransactionStatus string

const (
	StatusDraft    TransactionStatus = "DRAFT"
	StatusPending  TransactionStatus = "PENDING"
	StatusApproved TransactionStatus = "APPROVED"
	StatusPosted   TransactionStatus = "POSTED"
	StatusReversed TransactionStatus = "REVERSED"
)

// BalanceTolerance is the maximum permitted absolute difference between total
// debits and total credits. Amounts carry two decimal places, so the
// tolerance is one cent.
var BalanceTolerance = decimal.New(1, -2)

// GLTransaction is the journal header. Entries are exclusively owned by the
// transaction, written together atomically and never mutated afterwards;
// corrections happen via reversal, never in-place edits of posted lines.
type GLTransaction struct {
	TransactionID     string            `json:"transactionID"`
	TransactionNumber string            `json:"transactionNumber"` // Unique, generated when absent
	TransactionDate   time.Time         `json:"transactionDate"`
	PostingDate       time.Time         `json:"postingDate"`
	Description       string            `json:"description"`
	ReferenceNumber   string            `json:"referenceNumber"`
	SourceModule      string            `json:"sourceModule"` // MANUAL, REVENUE, BUDGET, SYSTEM, ...
	SourceDocumentID  string            `json:"sourceDocumentID"`
	FundID            string            `json:"fundID"`
	EntityID          string            `json:"entityID"`
	FiscalYear        int               `json:"fiscalYear"`
	Period            int               `json:"period"` // 1-12
	Status            TransactionStatus `json:"status"`
	TotalDebit        decimal.Decimal   `json:"totalDebit"`
	TotalCredit       decimal.Decimal   `json:"totalCredit"`
	ApprovedBy        string            `json:"approvedBy"`
	PostedBy          string            `json:"postedBy"`
	PostedAt          *time.Time        `json:"postedAt"`
	ReversedBy        string            `json:"reversedBy"`
	ReversedAt        *time.Time        `json:"reversedAt"`
	ReversalReason    string            `json:"reversalReason"`
	Entries           []GLEntry         `json:"entries,omitempty"`
	AuditFields
}

// GLEntry is a single journal line affecting one detail account. Exactly one
// of DebitAmount/CreditAmount is positive; the other is zero.
type GLEntry struct {
	EntryID        string          `json:"entryID"`
	TransactionID  string          `json:"transactionID"`
	AccountID      string          `json:"accountID"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	Description    string          `json:"description"`
	LineNumber     int             `json:"lineNumber"` // 1-based, order-significant
	CostCenter     string          `json:"costCenter"`
	ProjectCode    string          `json:"projectCode"`
	DepartmentCode string          `json:"departmentCode"`
	AuditFields
}

// IsBalanced reports whether total debits equal total credits within the
// one-cent tolerance.
func (t GLTransaction) IsBalanced() bool {
	return t.TotalDebit.Sub(t.TotalCredit).Abs().LessThanOrEqual(BalanceTolerance)
}

// CanBeApproved reports whether the transaction may transition to APPROVED.
func (t GLTransaction) CanBeApproved() bool {
	return t.Status == StatusDraft && t.IsBalanced()
}

// CanBePosted reports whether the transaction may transition to POSTED.
func (t GLTransaction) CanBePosted() bool {
	return t.Status == StatusApproved && t.IsBalanced()
}

// CanBeReversed reports whether the transaction may be reversed. Only posted
// transactions are reversible.
func (t GLTransaction) CanBeReversed() bool {
	return t.Status == StatusPosted
}

// IsDebit reports whether this line carries the debit side.
func (e GLEntry) IsDebit() bool {
	return e.DebitAmount.IsPositive()
}

// IsCredit reports whether this line carries the credit side.
func (e GLEntry) IsCredit() bool {
	return e.CreditAmount.IsPositive()
}

// Amount returns the non-zero side of the line.
func (e GLEntry) Amount() decimal.Decimal {
	if e.IsDebit() {
		return e.DebitAmount
	}
	return e.CreditAmount
}
