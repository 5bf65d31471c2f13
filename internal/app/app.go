// Package app assembles the service collaborators shared by every entry point.
package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/config"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/generate"
	api "github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/http"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/metrics"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/storage"
)

type Services struct {
	Store     *storage.Client
	Generator *generate.Registry
	Metrics   *metrics.Recorder
}

// Build loads AWS configuration once and constructs storage, the generation
// registry and the metrics recorder from cfg.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Services, error) {
	awsCfg, err := cfg.AWS(ctx)
	if err != nil {
		return nil, err
	}
	store := storage.New(awsCfg, cfg.Bucket, storage.Options{
		Endpoint:   cfg.S3Endpoint,
		PresignTTL: cfg.PresignTTL(),
		ACL:        cfg.UploadACL,
	})

	gen, err := Registry(ctx, cfg, bedrockruntime.NewFromConfig(awsCfg))
	if err != nil {
		return nil, err
	}
	log.Info("services ready",
		zap.String("bucket", cfg.Bucket),
		zap.String("region", cfg.Region),
		zap.Bool("gemini", cfg.GeminiAPIKey != ""),
		zap.Bool("auto_delete", cfg.AutoDelete))

	return &Services{Store: store, Generator: gen, Metrics: metrics.New()}, nil
}

// Registry registers the Bedrock families, plus Gemini when an API key is
// configured.
func Registry(ctx context.Context, cfg *config.Config, bedrock generate.BedrockAPI) (*generate.Registry, error) {
	p := generate.Params{Temperature: cfg.Temperature, MaxTokens: cfg.MaxTokens}
	r := generate.NewRegistry()
	if cfg.GeminiAPIKey != "" {
		client, err := generate.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		generate.NewGemini(client.Models, p).Register(r)
	}
	generate.NewBedrock(bedrock, p, cfg.LlamaProfileARN).Register(r)
	return r, nil
}

// Deps adapts the services to the router's dependencies. queue is left
// unset when nil so job submission reports 503.
func (s *Services) Deps(log *zap.Logger, queue api.Queue) api.Deps {
	return api.Deps{
		Store:     s.Store,
		Generator: s.Generator,
		Queue:     queue,
		Log:       log,
		Metrics:   s.Metrics,
	}
}
