package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Limits for page flags.
const (
	DefaultPage     = 1
	MinPage         = 1
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 1000

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Flag validation errors.
var (
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = fmt.Errorf("page-size must be between 1 and %d", MaxPageSize)
	ErrInvalidSort     = errors.New("sort must look like 'field' or 'field:asc|desc'")
)

// Params are the page flags of a listing command. Pages past the end are
// valid here; they are clamped when the window is cut.
type Params struct {
	Page     int
	PageSize int
}

// Validate rejects values no clamping can repair.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	return nil
}

// Sort is a parsed --sort expression. The zero value means "keep load order".
type Sort struct {
	Field string
	Desc  bool
}

// IsZero reports whether no sort was requested.
func (s Sort) IsZero() bool { return s.Field == "" }

// Order returns "asc" or "desc".
func (s Sort) Order() string {
	if s.Desc {
		return SortDesc
	}
	return SortAsc
}

// ParseSort parses "field" or "field:order", e.g. "name" or "email:desc".
// The order is case-insensitive and defaults to ascending.
func ParseSort(expr string) (Sort, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Sort{}, nil
	}

	field, order, hasOrder := strings.Cut(expr, ":")
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" || strings.Contains(order, ":") {
		return Sort{}, fmt.Errorf("%w: %q", ErrInvalidSort, expr)
	}
	if !hasOrder {
		return Sort{Field: field}, nil
	}

	switch strings.ToLower(strings.TrimSpace(order)) {
	case SortAsc:
		return Sort{Field: field}, nil
	case SortDesc:
		return Sort{Field: field, Desc: true}, nil
	default:
		return Sort{}, fmt.Errorf("%w: %q", ErrInvalidSort, expr)
	}
}
