package qa

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/metrics"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/schemas"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/sheet"
)

// ObjectStore reads and removes uploaded CSV objects.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Runner evaluates one grouped-response sheet held in object storage.
type Runner struct {
	Store      ObjectStore
	AutoDelete bool
	Log        *zap.Logger
	Metrics    *metrics.Recorder
}

// Evaluate fetches req.S3Key, scores every data row and, on a final run with
// auto-delete enabled, removes the source object. Cleanup failures are logged
// and never fail the request.
func (r *Runner) Evaluate(ctx context.Context, req schemas.EvaluateRequest) ([]ScoredRecord, error) {
	raw, err := r.Store.Get(ctx, req.S3Key)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.S3Key, err)
	}
	lines, err := sheet.DecodeLines(raw)
	if err != nil {
		return nil, err
	}
	cols, rows, err := sheet.ParseGrouped(lines)
	if err != nil {
		return nil, err
	}

	if dup := cols.Duplicates(); len(dup) > 0 {
		r.Log.Warn("duplicate field names; each column is scored by position",
			zap.String("key", req.S3Key), zap.Strings("fields", dup))
	}

	out := ScoreRows(rows, cols, req.Metrics, req.JudgeModelIDs)
	r.Metrics.RowsScored(len(out))
	r.Log.Info("scored rows",
		zap.String("key", req.S3Key),
		zap.Int("rows", len(out)),
		zap.Strings("inputs", cols.InputNames()),
		zap.Strings("summaries", cols.SummaryNames()))

	if req.FinalRun && r.AutoDelete {
		if err := r.Store.Delete(ctx, req.S3Key); err != nil {
			r.Log.Warn("cleanup failed", zap.String("key", req.S3Key), zap.Error(err))
		} else {
			r.Metrics.SourceDeleted("modelJudge")
		}
	}
	return out, nil
}
