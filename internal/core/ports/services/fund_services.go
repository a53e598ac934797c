package services

import (
	"context"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/dto"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// FundReaderSvc defines read operations for funds
type FundReaderSvc interface {
	// GetFundByID retrieves a specific fund by its ID.
	GetFundByID(ctx context.Context, fundID string) (*domain.Fund, error)

	// ListFundsByEntity retrieves a paginated list of funds owned by an entity.
	ListFundsByEntity(ctx context.Context, entityID string, params pagination.Params) ([]domain.Fund, pagination.PageInfo, error)
}

// FundWriterSvc defines write operations for funds
type FundWriterSvc interface {
	// CreateFund persists a new fund under its owning entity.
	CreateFund(ctx context.Context, req dto.CreateFundRequest, creatorUserID string) (*domain.Fund, error)

	// UpdateFund updates mutable fund details.
	UpdateFund(ctx context.Context, fundID string, req dto.UpdateFundRequest, requestingUserID string) (*domain.Fund, error)

	// DeactivateFund marks a fund as inactive.
	DeactivateFund(ctx context.Context, fundID string, requestingUserID string) error
}

// FundSvcFacade combines all fund-related service interfaces
type FundSvcFacade interface {
	FundReaderSvc
	FundWriterSvc
}
