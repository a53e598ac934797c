package repositories

import (
	"context"
	"time"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// FundReader defines read operations for fund data
type FundReader interface {
	// FindFundByID retrieves a specific fund by its unique identifier.
	FindFundByID(ctx context.Context, fundID string) (*domain.Fund, error)

	// ListFundsByEntity retrieves a page of funds for one entity plus the total row count.
	ListFundsByEntity(ctx context.Context, entityID string, params pagination.Params) ([]domain.Fund, int64, error)
}

// FundWriter defines write operations for fund data
type FundWriter interface {
	// SaveFund persists a new fund.
	SaveFund(ctx context.Context, fund domain.Fund) error

	// UpdateFund updates an existing fund's details.
	UpdateFund(ctx context.Context, fund domain.Fund) error

	// DeactivateFund marks a fund as inactive (soft delete).
	DeactivateFund(ctx context.Context, fundID string, userID string, now time.Time) error
}

// FundRepositoryFacade combines all fund-related repository interfaces
type FundRepositoryFacade interface {
	FundReader
	FundWriter
}
