package domain

// PaginatedResult wraps one page of items with paging metadata.
type PaginatedResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginatedResult builds a PaginatedResult, computing the page count.
func NewPaginatedResult[T any](items []T, total int64, page, limit int) PaginatedResult[T] {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PaginatedResult[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: pages,
	}
}

// Paginate slices items for the given 1-based page.
func Paginate[T any](items []T, page, limit int) PaginatedResult[T] {
	if page < 1 {
		page = 1
	}
	total := int64(len(items))
	start := (page - 1) * limit
	if limit <= 0 || start >= len(items) {
		return NewPaginatedResult([]T{}, total, page, limit)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return NewPaginatedResult(items[start:end], total, page, limit)
}
