// Command lambda serves the router behind an API Gateway HTTP API.
package main

import (
	"context"
	"log"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
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

	// No asynq queue inside Lambda: job routes report 503.
	mux := httpSrv.NewRouter(cfg, svc.Deps(logger, nil))
	lambda.Start(newHandler(mux, cfg.BasePath))
}

type handlerFunc func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// newHandler adapts mux to HTTP API events. Named stages put the stage in
// the raw path, so it is removed along with basePath before routing.
func newHandler(mux *chi.Mux, basePath string) handlerFunc {
	adapter := chiadapter.NewV2(mux)
	adapter.StripBasePath(basePath)
	return func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return adapter.ProxyWithContextV2(ctx, stripStage(req))
	}
}

func stripStage(req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPRequest {
	stage := req.RequestContext.Stage
	if stage == "" || stage == "$default" {
		return req
	}
	req.RawPath = trimSegment(req.RawPath, "/"+stage)
	req.RequestContext.HTTP.Path = trimSegment(req.RequestContext.HTTP.Path, "/"+stage)
	return req
}

// trimSegment drops prefix from p only when it is a whole path segment.
func trimSegment(p, prefix string) string {
	rest, ok := strings.CutPrefix(p, prefix)
	if !ok || (rest != "" && !strings.HasPrefix(rest, "/")) {
		return p
	}
	if rest == "" {
		return "/"
	}
	return rest
}
