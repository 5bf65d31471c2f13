package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/app"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/config"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/logging"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/qa"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.RedisAddr == "" {
		log.Fatal("REDIS_ADDR is required for the worker")
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

	// metrics only; the worker has no API surface
	go func() {
		if err := http.ListenAndServe(cfg.Addr, svc.Metrics.Handler()); err != nil {
			logger.Warn("metrics listener stopped", zap.Error(err))
		}
	}()

	w := &worker.Server{
		Runner: &qa.Runner{
			Store:      svc.Store,
			AutoDelete: cfg.AutoDelete,
			Log:        logger.Named("modelJudge"),
			Metrics:    svc.Metrics,
		},
		Results: svc.Store,
		Log:     logger.Named("worker"),
		Metrics: svc.Metrics,
	}
	logger.Info("worker starting", zap.String("redis", cfg.RedisAddr), zap.Int("concurrency", cfg.WorkerConcurrency))
	if err := worker.Run(cfg.RedisAddr, cfg.WorkerConcurrency, w); err != nil {
		logger.Fatal("worker stopped", zap.Error(err))
	}
}
