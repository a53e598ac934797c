package dto

import (
	"time"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a chart-of-accounts node.
type CreateAccountRequest struct {
	AccountCode     string                `json:"accountCode" binding:"required,alphanum,min=3,max=20"`
	AccountName     string                `json:"accountName" binding:"required,min=3,max=255"`
	AccountType     domain.AccountType    `json:"accountType" binding:"required,oneof=ASSET LIABILITY NET_POSITION REVENUE EXPENSE"`
	ParentAccountID *string               `json:"parentAccountID"` // Optional, use pointer for nullability
	FundID          string                `json:"fundID" binding:"required,uuid"`
	EntityID        string                `json:"entityID" binding:"required,uuid"`
	Description     string                `json:"description" binding:"max=1000"`
	NormalBalance   *domain.NormalBalance `json:"normalBalance" binding:"omitempty,oneof=DEBIT CREDIT"` // Derived from type when omitted
	IsDetailAccount *bool                 `json:"isDetailAccount"` // Defaults to true
}

// UpdateAccountRequest defines the fields allowed to change on an account.
// Re-parenting is not supported; level is fixed at creation time.
type UpdateAccountRequest struct {
	AccountCode     *string `json:"accountCode" binding:"omitempty,alphanum,min=3,max=20"`
	AccountName     *string `json:"accountName" binding:"omitempty,min=3,max=255"`
	Description     *string `json:"description" binding:"omitempty,max=1000"`
	ParentAccountID *string `json:"parentAccountID"` // Rejected with a validation error if it differs from current
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string               `json:"accountID"`
	AccountCode     string               `json:"accountCode"`
	AccountName     string               `json:"accountName"`
	AccountType     domain.AccountType   `json:"accountType"`
	ParentAccountID string               `json:"parentAccountID"` // Empty string if null in DB
	FundID          string               `json:"fundID"`
	EntityID        string               `json:"entityID"`
	Description     string               `json:"description"`
	NormalBalance   domain.NormalBalance `json:"normalBalance"`
	Level           int                  `json:"level"`
	IsDetailAccount bool                 `json:"isDetailAccount"`
	IsActive        bool                 `json:"isActive"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// AccountHierarchyResponse is one node of the nested account forest.
type AccountHierarchyResponse struct {
	Account  AccountResponse            `json:"account"`
	Level    int                        `json:"level"`
	Children []AccountHierarchyResponse `json:"children"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		AccountCode:     acc.AccountCode,
		AccountName:     acc.AccountName,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		FundID:          acc.FundID,
		EntityID:        acc.EntityID,
		Description:     acc.Description,
		NormalBalance:   acc.NormalBalance,
		Level:           acc.Level,
		IsDetailAccount: acc.IsDetailAccount,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToAccountResponses converts a slice of domain accounts to response DTOs
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}

// ToAccountHierarchyResponses converts the domain account forest to its DTO form
func ToAccountHierarchyResponses(nodes []domain.AccountNode) []AccountHierarchyResponse {
	out := make([]AccountHierarchyResponse, len(nodes))
	for i, n := range nodes {
		out[i] = AccountHierarchyResponse{
			Account:  ToAccountResponse(&n.Account),
			Level:    n.Level,
			Children: ToAccountHierarchyResponses(n.Children),
		}
	}
	return out
}
