package models

import "github.com/shopspring/decimal"

// FundType classifies a fund.
type FundType string

// Fund represents a row in the funds table.
type Fund struct {
	FundID              string           `db:"fund_id"`
	FundCode            string           `db:"fund_code"`
	FundName            string           `db:"fund_name"`
	FundType            FundType         `db:"fund_type"`
	EntityID            string           `db:"entity_id"`
	Description         string           `db:"description"`
	IsActive            bool             `db:"is_active"`
	BudgetAuthority     *decimal.Decimal `db:"budget_authority"` // Nullable
	CarryForwardAllowed bool             `db:"carry_forward_allowed"`
	AuditFields
}
