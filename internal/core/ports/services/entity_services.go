package services

import (
	"context"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/dto"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// EntityReaderSvc defines read operations for reporting entities
type EntityReaderSvc interface {
	// GetEntityByID retrieves a specific entity by its ID.
	GetEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)

	// ListEntities retrieves a paginated list of entities.
	ListEntities(ctx context.Context, params pagination.Params) ([]domain.Entity, pagination.PageInfo, error)
}

// EntityWriterSvc defines write operations for reporting entities
type EntityWriterSvc interface {
	// CreateEntity persists a new reporting entity.
	CreateEntity(ctx context.Context, req dto.CreateEntityRequest, creatorUserID string) (*domain.Entity, error)

	// UpdateEntity updates mutable entity details.
	UpdateEntity(ctx context.Context, entityID string, req dto.UpdateEntityRequest, requestingUserID string) (*domain.Entity, error)

	// DeactivateEntity marks an entity as inactive.
	DeactivateEntity(ctx context.Context, entityID string, requestingUserID string) error
}

// EntitySvcFacade combines all entity-related service interfaces
type EntitySvcFacade interface {
	EntityReaderSvc
	EntityWriterSvc
}
