package httputil

import (
	"net/http"
	"strconv"
)

// Pagination holds the page/limit parameters used by the mock listing
// endpoints.
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads page and limit query parameters, defaulting to
// page 1 and limit 100. Values below 1 fall back to the defaults.
func ParsePagination(r *http.Request) Pagination {
	p := Pagination{Page: 1, Limit: 100}

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			p.Limit = n
		}
	}

	return p
}

// Bounds returns the half-open slice interval [start, end) for a collection
// of the given total size.
func (p Pagination) Bounds(total int) (int, int) {
	start := (p.Page - 1) * p.Limit
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return start, end
}

// TotalPages returns the number of pages needed for total items.
func (p Pagination) TotalPages(total int) int {
	if p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
