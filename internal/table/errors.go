package table

import "errors"

// Errors returned while building a table. Interactions never fail; they are
// no-ops when they cannot apply.
var (
	ErrEmptyColumnKey     = errors.New("column key is empty")
	ErrDuplicateColumnKey = errors.New("duplicate column key")
	ErrMissingRender      = errors.New("custom column has no render function")
	ErrInvalidOrder       = errors.New("invalid sort order")
)
