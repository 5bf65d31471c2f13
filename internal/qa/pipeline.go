package qa

import (
	"strconv"
	"strings"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/sheet"
)

// ScoredRecord is the evaluation of one data row.
type ScoredRecord struct {
	Row     int                 `json:"row"`
	Metrics map[string]float64  `json:"metrics"`
	Scores  map[string]*float64 `json:"scores"`
}

// ScoreRows evaluates every row in order and returns one record per row.
func ScoreRows(rows []sheet.Row, cols sheet.Columns, metrics, judges []string) []ScoredRecord {
	out := make([]ScoredRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoreRow(row, cols, metrics, judges))
	}
	return out
}

func scoreRow(row sheet.Row, cols sheet.Columns, metrics, judges []string) ScoredRecord {
	text := InputText(row, cols)
	summaries := make([]string, len(cols.Summaries))
	for i, idx := range cols.Summaries {
		summaries[i] = row.Value(idx)
	}

	rec := ScoredRecord{
		Row:     LenientInt(row.Value(cols.RowIndex), 0),
		Metrics: make(map[string]float64, len(metrics)),
		Scores:  make(map[string]*float64, len(judges)),
	}
	for _, m := range metrics {
		rec.Metrics[m] = MetricScore(m, text)
	}
	for _, j := range judges {
		rec.Scores[j] = JudgeAverage(j, summaries)
	}
	return rec
}

// InputText joins the input-role values of row in schema order.
func InputText(row sheet.Row, cols sheet.Columns) string {
	parts := make([]string, len(cols.Inputs))
	for i, idx := range cols.Inputs {
		parts[i] = row.Value(idx)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// LenientInt parses s as a base-10 integer and returns fallback for empty
// or non-numeric input. A bad row number must not fail a whole batch.
func LenientInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
