// Package pagination implements page/limit listing shared by every list
// operation on the inbound surface.
package pagination

import "strings"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SortOrder is the listing direction; input is case-insensitive and anything
// unrecognized falls back to descending.
type SortOrder string

const (
	Ascending  SortOrder = "ASC"
	Descending SortOrder = "DESC"
)

// Params carries normalized listing parameters. Build via Normalize so
// defaults and clamps are always applied.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
}

// Normalize applies defaults and bounds: page >= 1, limit in [1,100]
// (values above 100 are clamped, not rejected), sortBy defaults to
// createdAt, sortOrder defaults to DESC.
func Normalize(page, limit int, sortBy, sortOrder string) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if sortBy == "" {
		sortBy = "createdAt"
	}
	order := Descending
	if strings.EqualFold(sortOrder, string(Ascending)) {
		order = Ascending
	}
	return Params{Page: page, Limit: limit, SortBy: sortBy, SortOrder: order}
}

// Offset returns the row offset for the normalized page/limit.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageInfo describes one page of a listing.
type PageInfo struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewPageInfo builds the page envelope from the normalized params and the
// total row count.
func NewPageInfo(p Params, totalItems int64) PageInfo {
	totalPages := int((totalItems + int64(p.Limit) - 1) / int64(p.Limit))
	return PageInfo{
		CurrentPage:     p.Page,
		TotalPages:      totalPages,
		TotalItems:      totalItems,
		ItemsPerPage:    p.Limit,
		HasNextPage:     p.Page < totalPages,
		HasPreviousPage: p.Page > 1,
	}
}
