package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	m "github.com/go-chi/chi/v5/middleware"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/config"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/generate"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/metrics"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/qa"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/summarize"
)

// Store is the object storage the handlers need.
type Store interface {
	Bucket() string
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	GetJSON(ctx context.Context, key string, v any) error
}

// Queue enqueues background evaluation tasks. *asynq.Client satisfies it.
type Queue interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Deps are the collaborators behind the router. Queue may be nil, in which
// case job submission answers 503.
type Deps struct {
	Store     Store
	Generator generate.Generator
	Queue     Queue
	Log       *zap.Logger
	Metrics   *metrics.Recorder
}

type Server struct {
	cfg       *config.Config
	store     Store
	queue     Queue
	log       *zap.Logger
	metrics   *metrics.Recorder
	judge     *qa.Runner
	summarize *summarize.Runner
}

// NewRouter wires both handlers and the service endpoints onto a chi mux.
func NewRouter(cfg *config.Config, d Deps) *chi.Mux {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:     cfg,
		store:   d.Store,
		queue:   d.Queue,
		log:     log.Named("http"),
		metrics: d.Metrics,
		judge: &qa.Runner{
			Store:      d.Store,
			AutoDelete: cfg.AutoDelete,
			Log:        log.Named("modelJudge"),
			Metrics:    d.Metrics,
		},
		summarize: &summarize.Runner{
			Store:      d.Store,
			Generator:  d.Generator,
			AutoDelete: cfg.AutoDelete,
			Log:        log.Named("summerizeData"),
			Metrics:    d.Metrics,
		},
	}

	r := chi.NewRouter()
	r.Use(m.RequestID, m.RealIP, Observe(s.log, s.metrics), Recover(s.log), CORS)
	r.NotFound(s.noRoute)
	r.MethodNotAllowed(s.noRoute)

	r.Route("/modelJudge", func(r chi.Router) {
		r.Get("/presign", s.presignJudge)
		r.Post("/", s.evaluate)
		r.Post("/jobs", s.submitJob)
		r.Get("/jobs/{id}", s.getJob)
	})
	r.Route("/summerizeData", func(r chi.Router) {
		r.Get("/presign", s.presignSummarize)
		r.Post("/", s.summarizeData)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	return r
}

func NewServer(cfg *config.Config, d Deps) *http.Server {
	return &http.Server{Addr: cfg.Addr, Handler: NewRouter(cfg, d)}
}

type errResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) noRoute(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errResp{fmt.Sprintf("No route for %s %s", r.Method, r.URL.Path)})
}

// errBadJSON is returned by decodeBody for any body that is not a JSON object.
var errBadJSON = errors.New("bad JSON")

// decodeBody reads a JSON request body into v. An empty body counts as {}.
func decodeBody(r *http.Request, v any) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	return nil
}

// staged reports whether key is an admissible evaluation upload: under the
// staging prefix and a .csv object.
func (s *Server) staged(key string) bool {
	return strings.HasPrefix(key, s.cfg.StagingPrefix) && strings.HasSuffix(key, ".csv")
}
