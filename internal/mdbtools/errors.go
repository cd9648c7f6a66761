package mdbtools

import (
	"errors"
	"fmt"
)

var ErrTableNotFound = errors.New("table not found")

// TableNotFoundError reports a table missing from the source file along
// with the tables that are available.
type TableNotFoundError struct {
	Table     string
	Available []string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table not found: %q, options are %q", e.Table, e.Available)
}

func (e *TableNotFoundError) Unwrap() error {
	return ErrTableNotFound
}
