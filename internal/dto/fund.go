package dto

import (
	"time"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFundRequest defines the data needed to create a fund.
type CreateFundRequest struct {
	FundCode            string           `json:"fundCode" binding:"required,alphanum,min=2,max=20"`
	FundName            string           `json:"fundName" binding:"required,min=3,max=255"`
	FundType            domain.FundType  `json:"fundType" binding:"required,oneof=GENERAL SPECIAL_REVENUE CAPITAL_PROJECTS DEBT_SERVICE ENTERPRISE INTERNAL_SERVICE"`
	EntityID            string           `json:"entityID" binding:"required,uuid"`
	Description         string           `json:"description" binding:"max=1000"`
	BudgetAuthority     *decimal.Decimal `json:"budgetAuthority"` // Optional, non-negative (checked in service)
	CarryForwardAllowed bool             `json:"carryForwardAllowed"`
}

// UpdateFundRequest defines the fields allowed to change on a fund.
type UpdateFundRequest struct {
	FundName        *string          `json:"fundName" binding:"omitempty,min=3,max=255"`
	Description     *string          `json:"description" binding:"omitempty,max=1000"`
	BudgetAuthority *decimal.Decimal `json:"budgetAuthority"`
}

// FundResponse defines the data returned for a fund.
type FundResponse struct {
	FundID              string           `json:"fundID"`
	FundCode            string           `json:"fundCode"`
	FundName            string           `json:"fundName"`
	FundType            domain.FundType  `json:"fundType"`
	EntityID            string           `json:"entityID"`
	Description         string           `json:"description"`
	IsActive            bool             `json:"isActive"`
	BudgetAuthority     *decimal.Decimal `json:"budgetAuthority"`
	CarryForwardAllowed bool             `json:"carryForwardAllowed"`
	CreatedAt           time.Time        `json:"createdAt"`
	CreatedBy           string           `json:"createdBy"`
	LastUpdatedAt       time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy       string           `json:"lastUpdatedBy"`
}

// ToFundResponse converts a domain.Fund to FundResponse DTO
func ToFundResponse(f *domain.Fund) FundResponse {
	return FundResponse{
		FundID:              f.FundID,
		FundCode:            f.FundCode,
		FundName:            f.FundName,
		FundType:            f.FundType,
		EntityID:            f.EntityID,
		Description:         f.Description,
		IsActive:            f.IsActive,
		BudgetAuthority:     f.BudgetAuthority,
		CarryForwardAllowed: f.CarryForwardAllowed,
		CreatedAt:           f.CreatedAt,
		CreatedBy:           f.CreatedBy,
		LastUpdatedAt:       f.LastUpdatedAt,
		LastUpdatedBy:       f.LastUpdatedBy,
	}
}

// ToFundResponses converts a slice of domain funds to response DTOs
func ToFundResponses(funds []domain.Fund) []FundResponse {
	out := make([]FundResponse, len(funds))
	for i := range funds {
		out[i] = ToFundResponse(&funds[i])
	}
	return out
}
