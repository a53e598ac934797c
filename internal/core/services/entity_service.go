package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openfmis/ipsas_ledger/internal/apperrors"
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	portsrepo "github.com/openfmis/ipsas_ledger/internal/core/ports/repositories"
	portssvc "github.com/openfmis/ipsas_ledger/internal/core/ports/services"
	"github.com/openfmis/ipsas_ledger/internal/dto"
	"github.com/openfmis/ipsas_ledger/internal/middleware"
	"github.com/openfmis/ipsas_ledger/internal/utils/fiscal"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// entityService provides operations on reporting entities.
type entityService struct {
	entityRepo portsrepo.EntityRepositoryFacade
}

// NewEntityService creates a new EntityService.
func NewEntityService(entityRepo portsrepo.EntityRepositoryFacade) portssvc.EntitySvcFacade {
	return &entityService{entityRepo: entityRepo}
}

var _ portssvc.EntitySvcFacade = (*entityService)(nil)

// CreateEntity validates and persists a new reporting entity.
func (s *entityService) CreateEntity(ctx context.Context, req dto.CreateEntityRequest, creatorUserID string) (*domain.Entity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, _, err := fiscal.ParseYearEnd(req.FiscalYearEnd); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	parentEntityID := ""
	if req.ParentEntityID != nil && *req.ParentEntityID != "" {
		parent, err := s.entityRepo.FindEntityByID(ctx, *req.ParentEntityID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent entity %s not found", apperrors.ErrValidation, *req.ParentEntityID)
			}
			return nil, fmt.Errorf("failed to fetch parent entity: %w", err)
		}
		if !parent.IsActive {
			return nil, fmt.Errorf("%w: parent entity %s is inactive", apperrors.ErrValidation, *req.ParentEntityID)
		}
		parentEntityID = parent.EntityID
	}

	now := time.Now().UTC()
	entity := domain.Entity{
		EntityID:       uuid.NewString(),
		EntityCode:     req.EntityCode,
		EntityName:     req.EntityName,
		EntityType:     req.EntityType,
		ParentEntityID: parentEntityID,
		FiscalYearEnd:  req.FiscalYearEnd,
		CurrencyCode:   req.CurrencyCode,
		Description:    req.Description,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.entityRepo.SaveEntity(ctx, entity); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: entity code %s already exists", apperrors.ErrDuplicate, req.EntityCode)
		}
		logger.Error("Failed to save entity", slog.String("error", err.Error()), slog.String("entity_code", req.EntityCode))
		return nil, fmt.Errorf("failed to save entity: %w", err)
	}

	logger.Info("Entity created", slog.String("entity_id", entity.EntityID), slog.String("entity_code", entity.EntityCode))
	return &entity, nil
}

// GetEntityByID retrieves a single entity.
func (s *entityService) GetEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	entity, err := s.entityRepo.FindEntityByID(ctx, entityID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find entity by ID", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		}
		return nil, fmt.Errorf("failed to find entity %s: %w", entityID, err)
	}
	return entity, nil
}

// ListEntities retrieves a page of entities with page metadata.
func (s *entityService) ListEntities(ctx context.Context, params pagination.Params) ([]domain.Entity, pagination.PageInfo, error) {
	entities, total, err := s.entityRepo.ListEntities(ctx, params)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list entities", slog.String("error", err.Error()))
		return nil, pagination.PageInfo{}, fmt.Errorf("failed to list entities: %w", err)
	}
	return entities, pagination.NewPageInfo(params, total), nil
}

// UpdateEntity applies the provided field updates to an entity.
func (s *entityService) UpdateEntity(ctx context.Context, entityID string, req dto.UpdateEntityRequest, requestingUserID string) (*domain.Entity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entity, err := s.entityRepo.FindEntityByID(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entity %s for update: %w", entityID, err)
	}

	if req.EntityName != nil {
		entity.EntityName = *req.EntityName
	}
	if req.Description != nil {
		entity.Description = *req.Description
	}
	entity.LastUpdatedAt = time.Now().UTC()
	entity.LastUpdatedBy = requestingUserID

	if err := s.entityRepo.UpdateEntity(ctx, *entity); err != nil {
		logger.Error("Failed to update entity", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to update entity %s: %w", entityID, err)
	}

	logger.Info("Entity updated", slog.String("entity_id", entityID))
	return entity, nil
}

// DeactivateEntity marks an entity inactive. Already-inactive entities are
// rejected so the operation is not silently idempotent.
func (s *entityService) DeactivateEntity(ctx context.Context, entityID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entity, err := s.entityRepo.FindEntityByID(ctx, entityID)
	if err != nil {
		return fmt.Errorf("failed to find entity %s for deactivation: %w", entityID, err)
	}
	if !entity.IsActive {
		return fmt.Errorf("%w: entity %s is already inactive", apperrors.ErrValidation, entityID)
	}

	if err := s.entityRepo.DeactivateEntity(ctx, entityID, requestingUserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate entity", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return fmt.Errorf("failed to deactivate entity %s: %w", entityID, err)
	}

	logger.Info("Entity deactivated", slog.String("entity_id", entityID))
	return nil
}
