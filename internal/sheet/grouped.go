package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// RowIndexField names the column carrying the row number.
	RowIndexField = "Row"
	// SummarySuffix marks columns whose text feeds the judges.
	SummarySuffix = "Summary"

	minGroupedLines = 3
)

// Role is the part a column plays in scoring.
type Role int

const (
	RoleInput Role = iota
	RoleRowIndex
	RoleSummary
)

func (r Role) String() string {
	switch r {
	case RoleRowIndex:
		return "row_index"
	case RoleSummary:
		return "summary"
	default:
		return "input"
	}
}

// Classify assigns a role from the field name alone.
func Classify(field string) Role {
	switch {
	case field == RowIndexField:
		return RoleRowIndex
	case strings.HasSuffix(field, SummarySuffix):
		return RoleSummary
	default:
		return RoleInput
	}
}

// Columns is the classified field schema of a grouped-header CSV. Roles are
// stored as positions into Fields so duplicate names keep separate values.
type Columns struct {
	Fields    []string
	RowIndex  int // -1 when the schema has no row-index field
	Inputs    []int
	Summaries []int
}

// NewColumns classifies every field of schema.
func NewColumns(schema []string) Columns {
	c := Columns{Fields: schema, RowIndex: -1}
	for i, f := range schema {
		switch Classify(f) {
		case RoleRowIndex:
			// first "Row" wins; later duplicates are ignored for indexing
			if c.RowIndex < 0 {
				c.RowIndex = i
			}
		case RoleSummary:
			c.Summaries = append(c.Summaries, i)
		default:
			c.Inputs = append(c.Inputs, i)
		}
	}
	return c
}

func (c Columns) names(idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = c.Fields[j]
	}
	return out
}

// InputNames returns input field names in schema order.
func (c Columns) InputNames() []string { return c.names(c.Inputs) }

// SummaryNames returns summary field names in schema order.
func (c Columns) SummaryNames() []string { return c.names(c.Summaries) }

// Duplicates lists field names that occur more than once, in order of their
// second occurrence. Role iteration is unaffected, but name lookups on such
// schemas are ambiguous.
func (c Columns) Duplicates() []string {
	seen := make(map[string]int, len(c.Fields))
	var out []string
	for _, f := range c.Fields {
		seen[f]++
		if seen[f] == 2 {
			out = append(out, f)
		}
	}
	return out
}

// Row is one data record positionally aligned to its schema.
type Row struct {
	fields []string
	values []string
}

// NewRow aligns values to fields. Missing trailing values read as "" and
// surplus values are dropped.
func NewRow(fields, values []string) Row {
	v := make([]string, len(fields))
	copy(v, values)
	return Row{fields: fields, values: v}
}

// Value returns the value at schema position i, or "" when out of range.
func (r Row) Value(i int) string {
	if i < 0 || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// Get returns the value of the first field named name.
func (r Row) Get(name string) (string, bool) {
	for i, f := range r.fields {
		if f == name {
			return r.values[i], true
		}
	}
	return "", false
}

// Len is the schema width.
func (r Row) Len() int { return len(r.values) }

// ParseGrouped reads a grouped-header document: lines[0] is a label that is
// discarded, lines[1] holds the field names and data starts at lines[2].
func ParseGrouped(lines []string) (Columns, []Row, error) {
	if len(lines) < minGroupedLines {
		return Columns{}, nil, fmt.Errorf("%w (need %d lines, got %d)",
			ErrMissingDataRows, minGroupedLines, len(lines))
	}

	schema, err := readRecord(lines[1])
	if err != nil {
		return Columns{}, nil, err
	}
	cols := NewColumns(schema)

	r := newReader(strings.NewReader(strings.Join(lines[2:], "\n")))
	var rows []Row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Columns{}, nil, fmt.Errorf("%w: data row: %v", ErrMalformedInput, err)
		}
		rows = append(rows, NewRow(schema, rec))
	}
	return cols, rows, nil
}

func readRecord(line string) ([]string, error) {
	rec, err := newReader(strings.NewReader(line)).Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty field-name line", ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: field-name line: %v", ErrMalformedInput, err)
	}
	return rec, nil
}

func newReader(src io.Reader) *csv.Reader {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r
}
