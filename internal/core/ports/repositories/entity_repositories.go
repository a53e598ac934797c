package repositories

import (
	"context"
	"time"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// EntityReader defines read operations for entity data
type EntityReader interface {
	// FindEntityByID retrieves a specific entity by its unique identifier.
	FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)

	// ListEntities retrieves a page of entities plus the total row count.
	ListEntities(ctx context.Context, params pagination.Params) ([]domain.Entity, int64, error)
}

// EntityWriter defines write operations for entity data
type EntityWriter interface {
	// SaveEntity persists a new entity.
	SaveEntity(ctx context.Context, entity domain.Entity) error

	// UpdateEntity updates an existing entity's details.
	UpdateEntity(ctx context.Context, entity domain.Entity) error

	// DeactivateEntity marks an entity as inactive (soft delete).
	DeactivateEntity(ctx context.Context, entityID string, userID string, now time.Time) error
}

// EntityRepositoryFacade combines all entity-related repository interfaces
type EntityRepositoryFacade interface {
	EntityReader
	EntityWriter
}
