package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/metrics"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/qa"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/schemas"
)

// TypeEvaluate is the asynq task type of a background evaluation.
const TypeEvaluate = "evaluate"

const (
	StatusDone   = "done"
	StatusFailed = "failed"
)

// Payload is the task body: the job id and the request to evaluate.
type Payload struct {
	JobID   string                  `json:"job_id"`
	Request schemas.EvaluateRequest `json:"request"`
}

// Result is the document stored under ResultKey once a job has run.
type Result struct {
	JobID      string            `json:"job_id"`
	Status     string            `json:"status"`
	Judgements []qa.ScoredRecord `json:"judgements,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// ResultKey is the object key of a job's Result.
func ResultKey(jobID string) string {
	return "results/" + jobID + ".json"
}

// NewEvaluateTask builds a task for req under a fresh job id. Jobs never
// retry; a failure is recorded in the Result instead.
func NewEvaluateTask(req schemas.EvaluateRequest) (*asynq.Task, string, error) {
	id := uuid.NewString()
	b, err := json.Marshal(Payload{JobID: id, Request: req})
	if err != nil {
		return nil, "", err
	}
	return asynq.NewTask(TypeEvaluate, b, asynq.TaskID(id), asynq.MaxRetry(0)), id, nil
}

// ResultStore persists job results.
type ResultStore interface {
	PutJSON(ctx context.Context, key string, v any) error
}

type Server struct {
	Runner  *qa.Runner
	Results ResultStore
	Log     *zap.Logger
	Metrics *metrics.Recorder
}

func (s *Server) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEvaluate, s.HandleEvaluate)
	return mux
}

func (s *Server) HandleEvaluate(ctx context.Context, t *asynq.Task) error {
	var p Payload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", TypeEvaluate, err, asynq.SkipRetry)
	}
	log := s.Log.With(zap.String("job_id", p.JobID), zap.String("key", p.Request.S3Key))
	log.Info("starting evaluation job")

	res := Result{JobID: p.JobID, Status: StatusDone}
	out, err := s.Runner.Evaluate(ctx, p.Request)
	if err != nil {
		// recorded on the result so the job is not retried
		log.Error("evaluation job failed", zap.Error(err))
		res.Status = StatusFailed
		res.Error = err.Error()
		s.Metrics.JobCompleted(metrics.OutcomeError)
	} else {
		res.Judgements = out
		s.Metrics.JobCompleted(metrics.OutcomeOK)
	}

	if err := s.Results.PutJSON(ctx, ResultKey(p.JobID), res); err != nil {
		return fmt.Errorf("store result %s: %w", p.JobID, err)
	}
	log.Info("evaluation job stored", zap.String("status", res.Status), zap.Int("rows", len(res.Judgements)))
	return nil
}

// Run serves evaluation tasks from the Redis queue at addr until the process
// receives a termination signal.
func Run(addr string, concurrency int, s *Server) error {
	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: addr}, asynq.Config{
		Concurrency: concurrency,
		Logger:      s.Log.Sugar(),
	})
	return srv.Run(s.Mux())
}
