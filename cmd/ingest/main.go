package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"codex_backend/internal/app/di"
	syncusecase "codex_backend/internal/feature/contentsync/usecase"
	insightsadapters "codex_backend/internal/feature/insights/adapters"
	"codex_backend/internal/platform/config"
	infradb "codex_backend/internal/platform/db"
)

// systemAdminID は定期実行で作成されたインサイトの作成者として記録されます。
const systemAdminID = "system"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(di.NewLogger(os.Stdout, cfg.Log))

	db, err := infradb.Open(cfg.Database)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	summarizer, err := di.NewSummarizer(ctx, cfg.Gemini)
	if err != nil {
		slog.Warn("gemini summarizer unavailable", "error", err)
	}

	uc := syncusecase.NewContentSyncUsecase(di.NewBlogSource(cfg.Content), insightsadapters.NewInsightRepository(db), summarizer, cfg.Content.BlogBaseURL)

	report, err := uc.Sync(ctx, systemAdminID)
	if err != nil {
		slog.Error("blog sync failed", "error", err)
		os.Exit(1)
	}
	slog.Info("blog sync ok",
		"synced", report.Synced,
		"updated", report.Updated,
		"total_files", report.TotalFiles,
		"errors", len(report.Errors),
	)
}
