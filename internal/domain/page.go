package domain

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit within int for any limit up to MaxLimit.
	MaxPage = math.MaxInt / MaxLimit
)

// PageRequest selects a window of records. Page is 1-based.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest normalises page and limit, falling back to the defaults
// for zero or negative values. Limit is capped at MaxLimit and page at
// MaxPage.
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	page = min(page, MaxPage)
	if limit < 1 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)
	return PageRequest{Page: page, Limit: limit}
}

// Offset is the number of records skipped before this page.
// It saturates at math.MaxInt rather than overflowing.
func (p PageRequest) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Page is the envelope returned by list operations.
type Page[T any] struct {
	Records         []T
	CurrentDataSize int
	TotalDataSize   int
	TotalPages      int
	CurrentPage     int
	HasMore         bool
}

// NewPage builds the envelope for records fetched with req out of total.
func NewPage[T any](records []T, total int, req PageRequest) Page[T] {
	if records == nil {
		records = []T{}
	}
	totalPages := 0
	if req.Limit > 0 {
		totalPages = total / req.Limit
		if total%req.Limit != 0 {
			totalPages++
		}
	}
	return Page[T]{
		Records:         records,
		CurrentDataSize: len(records),
		TotalDataSize:   total,
		TotalPages:      totalPages,
		CurrentPage:     req.Page,
		HasMore:         req.Page < totalPages,
	}
}

// SinglePage wraps one record in the envelope used by get-by-id responses.
func SinglePage[T any](record T) Page[T] {
	return Page[T]{
		Records:         []T{record},
		CurrentDataSize: 1,
		TotalDataSize:   1,
		TotalPages:      1,
		CurrentPage:     1,
	}
}
