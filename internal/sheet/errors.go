package sheet

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput marks structurally invalid CSV input (too few lines,
	// unreadable records, rows wider than the header).
	ErrMalformedInput = errors.New("malformed input")

	// ErrMissingDataRows is the grouped-format case of ErrMalformedInput where
	// the document ends before its first data line.
	ErrMissingDataRows = fmt.Errorf("%w: CSV missing data rows", ErrMalformedInput)

	// ErrColumnNotFound marks a lookup of a column that the table does not have.
	ErrColumnNotFound = errors.New("column not found")
)
