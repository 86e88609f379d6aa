package validators

import (
	"net/http"
	"strconv"

	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Pagination is the parsed page/page_size query pair.
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePagination reads page and page_size with sane bounds.
func ParsePagination(r *http.Request) (Pagination, error) {
	p := Pagination{Page: 1, PageSize: defaultPageSize}

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, apperrors.New(apperrors.CodeValidation, "page must be a positive integer")
		}
		p.Page = n
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, apperrors.New(apperrors.CodeValidation, "page_size must be a positive integer")
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		p.PageSize = n
	}
	return p, nil
}
