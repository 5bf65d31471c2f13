package summarize

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/generate"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/metrics"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/schemas"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/sheet"
)

// ErrNoSource is returned when a request names neither inline content nor a key.
var ErrNoSource = errors.New("no csv_content or s3_key in request")

// ObjectStore reads and removes uploaded CSV objects.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Runner serves one summarisation request end to end.
type Runner struct {
	Store      ObjectStore
	Generator  generate.Generator
	AutoDelete bool
	Log        *zap.Logger
	Metrics    *metrics.Recorder
}

func (r *Runner) Run(ctx context.Context, req schemas.SummarizeRequest) ([]GenerationRecord, error) {
	raw, err := r.load(ctx, req)
	if err != nil {
		return nil, err
	}
	t, err := sheet.ParseTable(raw)
	if err != nil {
		return nil, err
	}

	out, err := SummarizeRows(ctx, t, req.TargetColumns, req.RowStart, req.RowEnd, req.ModelIDs, observed{r})
	if err != nil {
		return nil, err
	}
	r.Metrics.RowsSummarized(len(out))
	r.Log.Info("summarised rows",
		zap.Int("rows", len(out)),
		zap.Strings("models", req.ModelIDs))

	if req.FinalRun && r.AutoDelete && req.S3Key != nil {
		r.cleanup(ctx, *req.S3Key)
	}
	return out, nil
}

func (r *Runner) load(ctx context.Context, req schemas.SummarizeRequest) ([]byte, error) {
	switch {
	case req.CSVContent != nil:
		return *req.CSVContent, nil
	case req.S3Key != nil:
		b, err := r.Store.Get(ctx, *req.S3Key)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", *req.S3Key, err)
		}
		return b, nil
	}
	return nil, ErrNoSource
}

func (r *Runner) cleanup(ctx context.Context, key string) {
	if err := r.Store.Delete(ctx, key); err != nil {
		r.Log.Warn("cleanup failed", zap.String("key", key), zap.Error(err))
		return
	}
	r.Metrics.SourceDeleted("summerizeData")
}

// observed counts and logs each generation call.
type observed struct{ r *Runner }

func (o observed) Generate(ctx context.Context, modelID, prompt string) (string, error) {
	out, err := o.r.Generator.Generate(ctx, modelID, prompt)
	if err != nil {
		o.r.Metrics.Generation(modelID, metrics.OutcomeError)
		o.r.Log.Warn("generation failed", zap.String("model", modelID), zap.Error(err))
		return "", err
	}
	o.r.Metrics.Generation(modelID, metrics.OutcomeOK)
	return out, nil
}
