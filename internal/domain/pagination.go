package domain

// PaginationParams selects a page of results in list queries. Page is
// 1-based; callers clamp PageSize before handing the params to a repository.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset converts the 1-based page number into a row offset. Pages below 1
// are treated as the first page.
func (p PaginationParams) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.PageSize
}
