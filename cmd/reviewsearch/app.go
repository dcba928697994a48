package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/reviewsearch/internal/config"
	logpkg "github.com/kailas-cloud/reviewsearch/internal/logger"
	"github.com/kailas-cloud/reviewsearch/internal/transport/searchapi"
)

// app is what every command starts from.
type app struct {
	env    string // resolved from --env, then $ENV, then "local"
	cfg    config.Config
	logger *zap.Logger
}

// secureCookies reports whether session cookies must carry Secure.
func (a *app) secureCookies() bool { return a.env == "prod" }

// bootstrap loads .env, the config for env and the logger.
func bootstrap(env string) (*app, error) {
	envErr := godotenv.Load()

	if env == "" {
		env = config.GetEnv()
	}
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("failed to load .env file", zap.Error(envErr))
	}
	return &app{env: env, cfg: cfg, logger: logger}, nil
}

func newSearchClient(cfg config.SearchAPIConfig, logger *zap.Logger) *searchapi.Client {
	return searchapi.NewClient(&searchapi.Config{
		BaseURL: cfg.BaseURL,
		Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		Logger:  logger.Named("searchapi"),
	})
}
