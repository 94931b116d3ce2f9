package dto

// PaginatedResponse - общий ответ для списков с пагинацией
type PaginatedResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

func NewPaginatedResponse[T any](items []T, total int64, page, pageSize int) *PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &PaginatedResponse[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Pagination заполняется хендлером из page/page_size
type Pagination struct {
	Page     int `form:"-"`
	PageSize int `form:"-"`
}
