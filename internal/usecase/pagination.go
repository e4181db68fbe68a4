package usecase

// Pagination carries a validated paging window derived from query parameters.
type Pagination struct {
	Page  int
	Limit int
}

// PageInfo summarizes a paged result set for the response envelope.
type PageInfo struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

// NewPagination clamps the requested page and limit to sane bounds. Page
// numbering is 1-based; a page past the end of the data yields an empty slice,
// never an error.
func NewPagination(page, limit, defaultLimit, maxLimit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset converts the 1-based page number into a row offset.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Info computes the envelope metadata for a total row count.
func (p Pagination) Info(totalItems int64) PageInfo {
	totalPages := int64(0)
	if p.Limit > 0 {
		totalPages = (totalItems + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return PageInfo{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: p.Page,
	}
}
