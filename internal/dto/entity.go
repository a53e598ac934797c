package dto

import (
	"time"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
)

// CreateEntityRequest defines the data needed to create an organizational entity.
type CreateEntityRequest struct {
	EntityCode     string            `json:"entityCode" binding:"required,alphanum,min=2,max=20"`
	EntityName     string            `json:"entityName" binding:"required,min=3,max=255"`
	EntityType     domain.EntityType `json:"entityType" binding:"required,oneof=GOVERNMENT AGENCY DEPARTMENT SUBSIDIARY"`
	ParentEntityID *string           `json:"parentEntityID"` // Optional, use pointer for nullability
	FiscalYearEnd  string            `json:"fiscalYearEnd" binding:"required"` // MM-DD, validated in service
	CurrencyCode   string            `json:"currencyCode" binding:"required,len=3,uppercase"`
	Description    string            `json:"description" binding:"max=1000"`
}

// UpdateEntityRequest defines the fields allowed to change on an entity.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateEntityRequest struct {
	EntityName  *string `json:"entityName" binding:"omitempty,min=3,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// EntityResponse defines the data returned for an entity.
type EntityResponse struct {
	EntityID       string            `json:"entityID"`
	EntityCode     string            `json:"entityCode"`
	EntityName     string            `json:"entityName"`
	EntityType     domain.EntityType `json:"entityType"`
	ParentEntityID string            `json:"parentEntityID"` // Empty string if null in DB
	FiscalYearEnd  string            `json:"fiscalYearEnd"`
	CurrencyCode   string            `json:"currencyCode"`
	Description    string            `json:"description"`
	IsActive       bool              `json:"isActive"`
	CreatedAt      time.Time         `json:"createdAt"`
	CreatedBy      string            `json:"createdBy"`
	LastUpdatedAt  time.Time         `json:"lastUpdatedAt"`
	LastUpdatedBy  string            `json:"lastUpdatedBy"`
}

// ToEntityResponse converts a domain.Entity to EntityResponse DTO
func ToEntityResponse(e *domain.Entity) EntityResponse {
	return EntityResponse{
		EntityID:       e.EntityID,
		EntityCode:     e.EntityCode,
		EntityName:     e.EntityName,
		EntityType:     e.EntityType,
		ParentEntityID: e.ParentEntityID,
		FiscalYearEnd:  e.FiscalYearEnd,
		CurrencyCode:   e.CurrencyCode,
		Description:    e.Description,
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
		LastUpdatedAt:  e.LastUpdatedAt,
		LastUpdatedBy:  e.LastUpdatedBy,
	}
}

// ToEntityResponses converts a slice of domain entities to response DTOs
func ToEntityResponses(entities []domain.Entity) []EntityResponse {
	out := make([]EntityResponse, len(entities))
	for i := range entities {
		out[i] = ToEntityResponse(&entities[i])
	}
	return out
}
