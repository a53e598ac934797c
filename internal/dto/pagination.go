package dto

import "github.com/openfmis/ipsas_ledger/internal/utils/pagination"

// PaginatedResponse wraps a page of items with navigation metadata.
type PaginatedResponse[T any] struct {
	Items           []T   `json:"items"`
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewPaginatedResponse builds the envelope from items and computed page info.
func NewPaginatedResponse[T any](items []T, info pagination.PageInfo) PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return PaginatedResponse[T]{
		Items:           items,
		CurrentPage:     info.CurrentPage,
		TotalPages:      info.TotalPages,
		TotalItems:      info.TotalItems,
		ItemsPerPage:    info.ItemsPerPage,
		HasNextPage:     info.HasNextPage,
		HasPreviousPage: info.HasPreviousPage,
	}
}
