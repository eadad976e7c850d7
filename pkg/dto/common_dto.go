package dto

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Normalize fills in defaults for unset paging values.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

func NewPaginationMeta(q PageQuery, total int64) PaginationMeta {
	totalPages := int(total) / q.PageSize
	if int(total)%q.PageSize != 0 {
		totalPages++
	}

	return PaginationMeta{
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		Limit:       q.PageSize,
	}
}

type Paginated[T any] struct {
	Data []T           `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

type List[T any] struct {
	Data []T `json:"data"`
}
