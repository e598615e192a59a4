// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import "robotpacc/internal/domain"

// ListResponse wraps list results with pagination.
type ListResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// NewListResponse maps a domain page through fn.
func NewListResponse[E any, T any](res domain.ListResult[E], fn func(E) T) ListResponse[T] {
	out := make([]T, 0, len(res.Items))
	for _, e := range res.Items {
		out = append(out, fn(e))
	}
	return ListResponse[T]{
		Items:      out,
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	}
}

// MessageResponse is returned by create and delete operations.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListQuery holds the common list query parameters.
type ListQuery struct {
	Search       string `form:"search"`
	ItemCode     string `form:"itemcode"`
	Counterparty string `form:"phone"`
	OrderBy      string `form:"orderBy"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset       int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters into a domain list filter.
func (q ListQuery) ToFilter() domain.ListFilter {
	f := domain.DefaultListFilter()
	f.Search = q.Search
	f.ItemCode = q.ItemCode
	f.Counterparty = q.Counterparty
	f.OrderBy = q.OrderBy
	if q.Limit > 0 {
		f.Limit = q.Limit
	}
	f.Offset = q.Offset
	return f.Normalize()
}
