// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"time"

	"codex_backend/internal/feature/contentsync/usecase"
	"codex_backend/internal/platform/config"
	"codex_backend/internal/platform/externalapi/github"
	"codex_backend/internal/platform/gemini"
	infrahttp "codex_backend/internal/platform/http"
	"codex_backend/internal/shared/ratelimiter"
)

// NewBlogSource creates a GitHub-backed PostSource with its own HTTP client and rate limiter.
func NewBlogSource(cfg config.ContentConfig) *github.BlogSource {
	ghCfg := github.Config{
		BaseURL:     cfg.GitHubAPIURL,
		Repo:        cfg.GitHubRepo,
		Branch:      cfg.GitHubBranch,
		ContentPath: cfg.GitHubContentPath,
		Token:       cfg.GitHubToken,
		Timeout:     cfg.Timeout,
	}
	httpClient := infrahttp.NewHTTPClient(ghCfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RequestsPerMinute, time.Minute)
	return github.NewBlogSource(ghCfg, httpClient, limiter)
}

// NewSummarizer returns a Gemini summarizer when enabled.
// A nil Summarizer makes the sync fall back to sentence extraction.
func NewSummarizer(ctx context.Context, cfg config.GeminiConfig) (usecase.Summarizer, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	s, err := gemini.NewSummarizer(ctx, gemini.Config{Model: cfg.Model, APIKey: cfg.APIKey})
	if err != nil {
		return nil, err
	}
	slog.Info("gemini summarizer enabled", "model", cfg.Model)
	return s, nil
}
