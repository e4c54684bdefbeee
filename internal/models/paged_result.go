package models

// PagedResult is one page of an ordered collection plus its position in the whole.
// Build it with NewPagedResult or EmptyPage so the flags stay consistent with TotalPages.
type PagedResult[T any] struct {
	Data          []T   `json:"data"`
	TotalElements int64 `json:"total_elements"`
	PageNumber    int   `json:"page_number"`
	TotalPages    int   `json:"total_pages"`
	IsFirst       bool  `json:"is_first"`
	IsLast        bool  `json:"is_last"`
	HasNext       bool  `json:"has_next"`
	HasPrevious   bool  `json:"has_previous"`
}

// EmptyPage is the page returned when nothing matches: page 1 of 0 with every flag false.
func EmptyPage[T any]() PagedResult[T] {
	return PagedResult[T]{
		Data:       []T{},
		PageNumber: 1,
	}
}

// NewPagedResult derives the paging metadata for data, which is page pageNumber
// (1-based) of size pageSize out of totalElements rows. pageSize must be positive.
func NewPagedResult[T any](data []T, pageNumber, pageSize int, totalElements int64) PagedResult[T] {
	if data == nil {
		data = []T{}
	}
	size := int64(pageSize)
	totalPages := int((totalElements + size - 1) / size)

	return PagedResult[T]{
		Data:          data,
		TotalElements: totalElements,
		PageNumber:    pageNumber,
		TotalPages:    totalPages,
		IsFirst:       pageNumber == 1,
		IsLast:        pageNumber >= totalPages || totalPages == 0,
		HasNext:       pageNumber < totalPages,
		HasPrevious:   pageNumber > 1,
	}
}

// MapPage converts the elements of p while keeping its paging metadata.
func MapPage[T, R any](p PagedResult[T], fn func(T) R) PagedResult[R] {
	out := make([]R, 0, len(p.Data))
	for _, item := range p.Data {
		out = append(out, fn(item))
	}
	return PagedResult[R]{
		Data:          out,
		TotalElements: p.TotalElements,
		PageNumber:    p.PageNumber,
		TotalPages:    p.TotalPages,
		IsFirst:       p.IsFirst,
		IsLast:        p.IsLast,
		HasNext:       p.HasNext,
		HasPrevious:   p.HasPrevious,
	}
}
