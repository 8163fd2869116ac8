package pagination

import "math"

// DefaultPageSize применяется, когда размер страницы не задан или невалиден.
const DefaultPageSize = 10

// Page — одна страница списка с метаданными постраничного вывода.
// PageIndex нумеруется с единицы.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageIndex  int `json:"pageIndex"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
}

// HasPreviousPage сообщает, есть ли страница перед текущей.
func (p Page[T]) HasPreviousPage() bool {
	return p.PageIndex > 1
}

// HasNextPage сообщает, есть ли страница после текущей.
func (p Page[T]) HasNextPage() bool {
	return p.PageIndex < p.TotalPages
}

// New нарезает полный список на страницу pageIndex размера pageSize.
// Невалидные параметры приводятся к первой странице размера по умолчанию.
// Страница за пределами списка возвращается пустой, но с метаданными.
func New[T any](source []T, pageIndex, pageSize int) Page[T] {
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	count := len(source)
	start := (pageIndex - 1) * pageSize
	if start > count {
		start = count
	}
	end := start + pageSize
	if end > count {
		end = count
	}

	items := make([]T, 0, end-start)
	items = append(items, source[start:end]...)

	return Page[T]{
		Items:      items,
		PageIndex:  pageIndex,
		TotalPages: int(math.Ceil(float64(count) / float64(pageSize))),
		TotalCount: count,
	}
}
