package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/app"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/config"
	httpSrv "github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/http"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	svc, err := app.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}

	// Job routes answer 503 unless a queue is configured.
	var queue httpSrv.Queue
	if cfg.RedisAddr != "" {
		asq := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer asq.Close()
		queue = asq
	}

	srv := httpSrv.NewServer(cfg, svc.Deps(logger, queue))
	logger.Info("listening", zap.String("addr", srv.Addr), zap.Bool("jobs", queue != nil))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
