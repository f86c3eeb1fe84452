package pagination

import (
	"github.com/samber/lo"
)

// DefaultPageSize is the number of rows shown per page.
const DefaultPageSize = 10

// Paginator splits items into pages of PageSize elements.
type Paginator[T any] struct {
	items    []T
	pageSize int
}

// Controls describes the navigation region for a given page.
type Controls struct {
	// Visible is false when there is at most one page.
	Visible bool `json:"visible"`

	PreviousEnabled bool `json:"previous_enabled"`
	NextEnabled     bool `json:"next_enabled"`

	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// New creates a paginator over items. A non-positive pageSize falls back
// to DefaultPageSize. items is not copied and must not be modified.
func New[T any](items []T, pageSize int) Paginator[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Paginator[T]{
		items:    items,
		pageSize: pageSize,
	}
}

// PageSize returns the configured page size.
func (p Paginator[T]) PageSize() int {
	return p.pageSize
}

// Len returns the number of items in the dataset.
func (p Paginator[T]) Len() int {
	return len(p.items)
}

// TotalPages returns ceil(Len / PageSize), or 0 for an empty dataset.
func (p Paginator[T]) TotalPages() int {
	if len(p.items) == 0 {
		return 0
	}
	return (len(p.items) + p.pageSize - 1) / p.pageSize
}

// Valid reports whether page is inside [1, TotalPages].
func (p Paginator[T]) Valid(page int) bool {
	return page >= 1 && page <= p.TotalPages()
}

// Slice returns the items of the given page. Out-of-range pages yield an
// empty slice. The result shares memory with the dataset but has its
// capacity capped, so appending to it never overwrites the next page.
func (p Paginator[T]) Slice(page int) []T {
	if !p.Valid(page) {
		return []T{}
	}

	start := (page - 1) * p.pageSize
	end := min(start+p.pageSize, len(p.items))
	return p.items[start:end:end]
}

// Next returns page+1 when a later page exists, otherwise page unchanged.
func (p Paginator[T]) Next(page int) int {
	if page < p.TotalPages() {
		return page + 1
	}
	return page
}

// Previous returns page-1 when page is past the first page, otherwise page
// unchanged.
func (p Paginator[T]) Previous(page int) int {
	if page > 1 {
		return page - 1
	}
	return page
}

// Clamp forces page into [1, max(TotalPages, 1)].
func (p Paginator[T]) Clamp(page int) int {
	return lo.Clamp(page, 1, max(p.TotalPages(), 1))
}

// Controls returns the navigation state for page.
func (p Paginator[T]) Controls(page int) Controls {
	total := p.TotalPages()
	return Controls{
		Visible:         total > 1,
		PreviousEnabled: total > 1 && page > 1,
		NextEnabled:     total > 1 && page < total,
		Page:            page,
		TotalPages:      total,
	}
}
