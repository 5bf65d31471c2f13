// Package summarize slices rows from a flat CSV table and sends the joined
// text of each row to one or more generation back-ends.
package summarize

import (
	"context"
	"strings"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/generate"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/sheet"
)

// ErrorPrefix starts the placeholder stored for a failed model call.
const ErrorPrefix = "Error: "

// GenerationRecord holds every model's reply for one table row. Row is the
// 1-based position in the original table.
type GenerationRecord struct {
	Row    int               `json:"row"`
	Models map[string]string `json:"models"`
}

// Bounds converts a 1-based inclusive range into slice bounds over n rows.
// rowStart < 1 means 1 and rowEnd < 1 means the last row.
func Bounds(rowStart, rowEnd, n int) (lo, hi int) {
	if rowStart < 1 {
		rowStart = 1
	}
	hi = n
	if rowEnd > 0 && rowEnd < n {
		hi = rowEnd
	}
	lo = rowStart - 1
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// SummarizeRows calls gen once per (row, model) over rows rowStart..rowEnd.
// A failed call leaves "Error: <msg>" in that model's slot, msg being the
// back-end's own message, and processing continues. Unknown target columns
// fail before any call is made.
func SummarizeRows(ctx context.Context, t *sheet.Table, targetColumns []string, rowStart, rowEnd int, modelIDs []string, gen generate.Generator) ([]GenerationRecord, error) {
	idx, err := t.Indexes(targetColumns)
	if err != nil {
		return nil, err
	}
	lo, hi := Bounds(rowStart, rowEnd, t.Len())

	out := make([]GenerationRecord, 0, hi-lo)
	for i := lo; i < hi; i++ {
		text := JoinColumns(t.Rows[i], idx)
		rec := GenerationRecord{Row: i + 1, Models: make(map[string]string, len(modelIDs))}
		for _, m := range modelIDs {
			reply, err := gen.Generate(ctx, m, text)
			if err != nil {
				reply = ErrorPrefix + generate.Cause(err).Error()
			}
			rec.Models[m] = reply
		}
		out = append(out, rec)
	}
	return out, nil
}

// JoinColumns joins the values at idx with a single space.
func JoinColumns(row []string, idx []int) string {
	parts := make([]string, len(idx))
	for i, j := range idx {
		parts[i] = row[j]
	}
	return strings.Join(parts, " ")
}
