package models

// PaginationQuery carries the page/per_page query parameters of list endpoints
type PaginationQuery struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// PaginationResult describes one page of a paginated response
type PaginationResult struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int64 `json:"total_pages"`
}

// NewPaginationResult 创建一个新的分页结果对象
func NewPaginationResult(total int64, page, perPage int) PaginationResult {
	return PaginationResult{
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: (total + int64(perPage) - 1) / int64(perPage),
	}
}

// Normalize 修正非法的分页参数
func (q *PaginationQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > 100 {
		q.PerPage = 10
	}
}

// Offset returns the row offset of the requested page
func (q *PaginationQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}
