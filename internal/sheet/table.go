package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table is a flat CSV with a single header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// ParseTable decodes b and reads it as a flat CSV. Short rows are padded
// with ""; a row wider than the header is malformed.
func ParseTable(b []byte) (*Table, error) {
	text, err := Decode(b)
	if err != nil {
		return nil, err
	}
	r := newReader(strings.NewReader(text))
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedInput, err)
	}

	t := &Table{Header: header}
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedInput, line, err)
		}
		if len(rec) > len(header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d",
				ErrMalformedInput, line, len(rec), len(header))
		}
		row := make([]string, len(header))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Len is the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of the first column named name.
func (t *Table) Index(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// Indexes resolves every name, failing on the first unknown column.
func (t *Table) Indexes(names []string) ([]int, error) {
	out := make([]int, len(names))
	for i, n := range names {
		idx, err := t.Index(n)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}
