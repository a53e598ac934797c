package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openfmis/ipsas_ledger/internal/apperrors"
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	portsrepo "github.com/openfmis/ipsas_ledger/internal/core/ports/repositories"
	portssvc "github.com/openfmis/ipsas_ledger/internal/core/ports/services"
	"github.com/openfmis/ipsas_ledger/internal/dto"
	"github.com/openfmis/ipsas_ledger/internal/middleware"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// fundService provides operations on funds.
type fundService struct {
	fundRepo  portsrepo.FundRepositoryFacade
	entitySvc portssvc.EntitySvcFacade
}

// NewFundService creates a new FundService.
func NewFundService(fundRepo portsrepo.FundRepositoryFacade, entitySvc portssvc.EntitySvcFacade) portssvc.FundSvcFacade {
	return &fundService{fundRepo: fundRepo, entitySvc: entitySvc}
}

var _ portssvc.FundSvcFacade = (*fundService)(nil)

func validateBudgetAuthority(amount *decimal.Decimal) error {
	if amount != nil && amount.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: budget authority must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// CreateFund validates and persists a new fund under its owning entity.
func (s *fundService) CreateFund(ctx context.Context, req dto.CreateFundRequest, creatorUserID string) (*domain.Fund, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entity, err := s.entitySvc.GetEntityByID(ctx, req.EntityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: entity %s not found", apperrors.ErrValidation, req.EntityID)
		}
		return nil, fmt.Errorf("failed to fetch owning entity: %w", err)
	}
	if !entity.IsActive {
		return nil, fmt.Errorf("%w: entity %s is inactive", apperrors.ErrValidation, req.EntityID)
	}

	if err := validateBudgetAuthority(req.BudgetAuthority); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fund := domain.Fund{
		FundID:              uuid.NewString(),
		FundCode:            req.FundCode,
		FundName:            req.FundName,
		FundType:            req.FundType,
		EntityID:            req.EntityID,
		Description:         req.Description,
		IsActive:            true,
		BudgetAuthority:     req.BudgetAuthority,
		CarryForwardAllowed: req.CarryForwardAllowed,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.fundRepo.SaveFund(ctx, fund); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: fund code %s already exists for entity %s", apperrors.ErrDuplicate, req.FundCode, req.EntityID)
		}
		logger.Error("Failed to save fund", slog.String("error", err.Error()), slog.String("fund_code", req.FundCode))
		return nil, fmt.Errorf("failed to save fund: %w", err)
	}

	logger.Info("Fund created", slog.String("fund_id", fund.FundID), slog.String("fund_code", fund.FundCode), slog.String("entity_id", fund.EntityID))
	return &fund, nil
}

// GetFundByID retrieves a single fund.
func (s *fundService) GetFundByID(ctx context.Context, fundID string) (*domain.Fund, error) {
	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find fund by ID", slog.String("error", err.Error()), slog.String("fund_id", fundID))
		}
		return nil, fmt.Errorf("failed to find fund %s: %w", fundID, err)
	}
	return fund, nil
}

// ListFundsByEntity retrieves a page of funds for one entity with page metadata.
func (s *fundService) ListFundsByEntity(ctx context.Context, entityID string, params pagination.Params) ([]domain.Fund, pagination.PageInfo, error) {
	if _, err := s.entitySvc.GetEntityByID(ctx, entityID); err != nil {
		return nil, pagination.PageInfo{}, err
	}

	funds, total, err := s.fundRepo.ListFundsByEntity(ctx, entityID, params)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list funds", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, pagination.PageInfo{}, fmt.Errorf("failed to list funds for entity %s: %w", entityID, err)
	}
	return funds, pagination.NewPageInfo(params, total), nil
}

// UpdateFund applies the provided field updates to a fund.
func (s *fundService) UpdateFund(ctx context.Context, fundID string, req dto.UpdateFundRequest, requestingUserID string) (*domain.Fund, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fund %s for update: %w", fundID, err)
	}

	if err := validateBudgetAuthority(req.BudgetAuthority); err != nil {
		return nil, err
	}

	if req.FundName != nil {
		fund.FundName = *req.FundName
	}
	if req.Description != nil {
		fund.Description = *req.Description
	}
	if req.BudgetAuthority != nil {
		fund.BudgetAuthority = req.BudgetAuthority
	}
	fund.LastUpdatedAt = time.Now().UTC()
	fund.LastUpdatedBy = requestingUserID

	if err := s.fundRepo.UpdateFund(ctx, *fund); err != nil {
		logger.Error("Failed to update fund", slog.String("error", err.Error()), slog.String("fund_id", fundID))
		return nil, fmt.Errorf("failed to update fund %s: %w", fundID, err)
	}

	logger.Info("Fund updated", slog.String("fund_id", fundID))
	return fund, nil
}

// DeactivateFund marks a fund inactive.
func (s *fundService) DeactivateFund(ctx context.Context, fundID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return fmt.Errorf("failed to find fund %s for deactivation: %w", fundID, err)
	}
	if !fund.IsActive {
		return fmt.Errorf("%w: fund %s is already inactive", apperrors.ErrValidation, fundID)
	}

	if err := s.fundRepo.DeactivateFund(ctx, fundID, requestingUserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate fund", slog.String("error", err.Error()), slog.String("fund_id", fundID))
		return fmt.Errorf("failed to deactivate fund %s: %w", fundID, err)
	}

	logger.Info("Fund deactivated", slog.String("fund_id", fundID))
	return nil
}
