package dto

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// PagedRequest carries 1-based pagination parameters.
type PagedRequest struct {
	PageNumber int `form:"page" json:"page"`
	PageSize   int `form:"pageSize" json:"pageSize"`
}

// Normalize clamps the request to sane bounds: page >= 1, size in
// [1,100], with defaults for out-of-range values.
func (r *PagedRequest) Normalize() {
	if r.PageNumber < 1 {
		r.PageNumber = DefaultPageNumber
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
}

// PagedResult is the pagination envelope returned by list endpoints.
type PagedResult[T any] struct {
	Data         []T   `json:"data"`
	TotalRecords int64 `json:"total_records"`
	PageNumber   int   `json:"page_number"`
	PageSize     int   `json:"page_size"`
	TotalPages   int   `json:"total_pages"`
	HasNext      bool  `json:"has_next_page"`
	HasPrevious  bool  `json:"has_previous_page"`
}

// NewPagedResult fills in the derived fields: totalPages =
// ceil(totalRecords/pageSize) plus the next/previous flags.
func NewPagedResult[T any](data []T, totalRecords int64, pageNumber, pageSize int) *PagedResult[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalRecords + int64(pageSize) - 1) / int64(pageSize))
	}

	if data == nil {
		data = []T{}
	}

	return &PagedResult[T]{
		Data:         data,
		TotalRecords: totalRecords,
		PageNumber:   pageNumber,
		PageSize:     pageSize,
		TotalPages:   totalPages,
		HasNext:      pageNumber < totalPages,
		HasPrevious:  pageNumber > 1,
	}
}
