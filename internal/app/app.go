package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"coach-chat/handler"
	"coach-chat/internal/config"
	"coach-chat/internal/integrations/groq"
	"coach-chat/internal/integrations/paramstore"
	"coach-chat/internal/usecase"
)

// loadParamStore is replaced in tests to avoid touching AWS credentials.
var loadParamStore = func(ctx context.Context) (groq.Getter, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: load AWS config: %w", err)
	}
	return paramstore.NewFromConfig(awsCfg)
}

// NewHandler wires the completion client, service and handler from cfg.
func NewHandler(ctx context.Context, cfg config.Config, logger *slog.Logger) (*handler.Handler, error) {
	opts := []groq.Option{
		// Slightly above the service deadline so the context fires first.
		groq.WithHTTPClient(&http.Client{Timeout: cfg.CompletionTimeout + cfg.CompletionTimeout/10}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, groq.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, groq.WithAPIKey(cfg.APIKey))
	} else {
		getter, err := loadParamStore(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, groq.WithParamStore(getter, cfg.ParamPrefix))
	}

	llm, err := groq.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("app: create completion client: %w", err)
	}

	svc, err := usecase.NewCoachService(llm, usecase.KeywordClassifier{}, usecase.Options{
		Model:      cfg.Model,
		MaxHistory: cfg.MaxHistory,
		Timeout:    cfg.CompletionTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("app: create coach service: %w", err)
	}

	h, err := handler.NewHandler(svc, handler.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("app: create handler: %w", err)
	}
	return h, nil
}
