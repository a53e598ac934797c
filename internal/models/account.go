package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// NormalBalance indicates the side an account naturally increases on.
type NormalBalance string

// Account represents a row in the chart_of_accounts table.
// Note: ParentAccountID uses string for the nullable self-referencing key.
type Account struct {
	AccountID       string        `db:"account_id"`
	AccountCode     string        `db:"account_code"`
	AccountName     string        `db:"account_name"`
	AccountType     AccountType   `db:"account_type"`
	ParentAccountID string        `db:"parent_account_id"` // Nullable
	FundID          string        `db:"fund_id"`
	EntityID        string        `db:"entity_id"`
	Description     string        `db:"description"`
	NormalBalance   NormalBalance `db:"normal_balance"`
	Level           int           `db:"level"`
	IsDetailAccount bool          `db:"is_detail_account"`
	IsActive        bool          `db:"is_active"`
	AuditFields
}
