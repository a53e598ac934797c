package domain

import "github.com/shopspring/decimal"

// FundType classifies a fund per governmental accounting categories.
type FundType string

const (
	General         FundType = "GENERAL"
	SpecialRevenue  FundType = "SPECIAL_REVENUE"
	CapitalProjects FundType = "CAPITAL_PROJECTS"
	DebtService     FundType = "DEBT_SERVICE"
	Enterprise      FundType = "ENTERPRISE"
	InternalService FundType = "INTERNAL_SERVICE"
)

// Fund is a self-balancing fiscal subdivision within an entity.
// FundCode is unique per owning entity.
type Fund struct {
	FundID              string           `json:"fundID"`
	FundCode            string           `json:"fundCode"`
	FundName            string           `json:"fundName"`
	FundType            FundType         `json:"fundType"`
	EntityID            string           `json:"entityID"` // Owning entity, required
	Description         string           `json:"description"`
	IsActive            bool             `json:"isActive"`
	BudgetAuthority     *decimal.Decimal `json:"budgetAuthority"` // Optional, non-negative
	CarryForwardAllowed bool             `json:"carryForwardAllowed"`
	AuditFields
}
