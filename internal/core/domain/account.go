package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset       AccountType = "ASSET"
	Liability   AccountType = "LIABILITY"
	NetPosition AccountType = "NET_POSITION"
	Revenue     AccountType = "REVENUE"
	Expense     AccountType = "EXPENSE"
)

// NormalBalance indicates whether an account naturally increases with debits or credits.
type NormalBalance string

const (
	DebitBalance  NormalBalance = "DEBIT"
	CreditBalance NormalBalance = "CREDIT"
)

// MaxAccountLevel caps the chart-of-accounts depth; the ancestor walk during
// cycle prevention is bounded by the same value.
const MaxAccountLevel = 10

// Account is a chart-of-accounts node scoped to one fund and entity.
// (AccountCode, FundID, EntityID) is unique. Accounts form a tree via
// ParentAccountID within the same fund and entity; Level is fixed at
// creation as parent.Level+1 (roots are level 1). Only detail (leaf)
// accounts may receive journal postings.
type Account struct {
	AccountID       string        `json:"accountID"`
	AccountCode     string        `json:"accountCode"`
	AccountName     string        `json:"accountName"`
	AccountType     AccountType   `json:"accountType"`
	ParentAccountID string        `json:"parentAccountID"` // Empty when root
	FundID          string        `json:"fundID"`
	EntityID        string        `json:"entityID"`
	Description     string        `json:"description"`
	NormalBalance   NormalBalance `json:"normalBalance"`
	Level           int           `json:"level"` // 1-10
	IsDetailAccount bool          `json:"isDetailAccount"`
	IsActive        bool          `json:"isActive"`
	AuditFields
}

// AccountNode is one node of the account hierarchy forest returned by the
// hierarchy query, with children nested recursively and ordered by account
// code at every depth.
type AccountNode struct {
	Account  Account       `json:"account"`
	Level    int           `json:"level"`
	Children []AccountNode `json:"children"`
}
