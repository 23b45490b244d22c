package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"codex_backend/internal/app/di"
	"codex_backend/internal/app/router"
	authadapters "codex_backend/internal/feature/auth/adapters"
	authhandler "codex_backend/internal/feature/auth/transport/handler"
	authusecase "codex_backend/internal/feature/auth/usecase"
	synchandler "codex_backend/internal/feature/contentsync/transport/handler"
	syncusecase "codex_backend/internal/feature/contentsync/usecase"
	insightsadapters "codex_backend/internal/feature/insights/adapters"
	insightshandler "codex_backend/internal/feature/insights/transport/handler"
	insightsusecase "codex_backend/internal/feature/insights/usecase"
	paymentsadapters "codex_backend/internal/feature/payments/adapters"
	paymentshandler "codex_backend/internal/feature/payments/transport/handler"
	paymentsusecase "codex_backend/internal/feature/payments/usecase"
	"codex_backend/internal/platform/config"
	infradb "codex_backend/internal/platform/db"
	platformhandler "codex_backend/internal/platform/http/handler"
	jwtmw "codex_backend/internal/platform/jwt"
	"codex_backend/internal/platform/mailer"
	"codex_backend/internal/platform/metrics"
	infraredis "codex_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(di.NewLogger(os.Stdout, cfg.Log))

	if err := run(cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.Open(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}()
	}

	// Redis（任意）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	m := metrics.New(cfg.Metrics.Namespace)

	// Mail
	dispatcher := mailer.NewDispatcher(di.NewMailSender(cfg.Mail), cfg.Mail.SendTimeout)

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	resetRepo := authadapters.NewResetTokenRepository(db)
	insightRepo := insightsadapters.NewInsightRepository(db)
	dailyHitRepo := di.NewDailyHitRepository(rdb, db, cfg.Redis.Namespace)
	interactionRepo := insightsadapters.NewInteractionRepository(db)
	analyticsRepo := insightsadapters.NewAnalyticsRepository(db)
	ledger := paymentsadapters.NewLedger(db)

	summarizer, err := di.NewSummarizer(ctx, cfg.Gemini)
	if err != nil {
		// 要約器がなくても同期は抜粋抽出で動作する
		slog.Warn("gemini summarizer unavailable", "error", err)
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(
		userRepo,
		authusecase.NewBcryptHasher(cfg.Auth.BcryptCost),
		jwtmw.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		uuid.NewString,
	)
	resetUC := authusecase.NewPasswordResetUsecase(
		userRepo,
		resetRepo,
		authusecase.NewBcryptHasher(cfg.Auth.BcryptCost),
		authadapters.NewResetMailer(dispatcher),
		authusecase.ResetConfig{URLTemplate: cfg.Reset.URLTemplate, TTL: cfg.Reset.TokenTTL},
		uuid.NewString,
	)
	dailyHitUC := insightsusecase.NewDailyHitUsecase(dailyHitRepo, insightRepo, m)
	insightsUC := insightsusecase.NewInsightsUsecase(insightRepo, interactionRepo, analyticsRepo)
	paymentsUC := paymentsusecase.NewPaymentsUsecase(di.NewPaymentProvider(cfg.Stripe), ledger, cfg.Stripe.Currency, uuid.NewString)
	syncUC := syncusecase.NewContentSyncUsecase(di.NewBlogSource(cfg.Content), insightRepo, summarizer, cfg.Content.BlogBaseURL)

	// Handler
	handlers := router.Handlers{
		Auth:     authhandler.NewAuthHandler(authUC),
		Password: authhandler.NewPasswordHandler(resetUC),
		DailyHit: insightshandler.NewDailyHitHandler(dailyHitUC),
		Insights: insightshandler.NewInsightsHandler(insightsUC),
		Payments: paymentshandler.NewPaymentsHandler(paymentsUC, cfg.Server.PublicBaseURL),
		Sync:     synchandler.NewSyncHandler(syncUC),
		Health:   platformhandler.NewHealthHandler(healthChecks(db, rdb)),
	}

	// ルータ生成
	engine := router.NewRouter(handlers, authUC, router.Options{
		AllowedOrigins: cfg.CORS.Origins(),
		Metrics:        m,
	})

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	// 送信中のメールを待つ
	if err := dispatcher.Wait(shutdownCtx); err != nil {
		slog.Warn("pending emails were not flushed", "error", err)
	}
	slog.Info("server stopped")
	return nil
}

func healthChecks(db *gorm.DB, rdb *redisv9.Client) map[string]platformhandler.Checker {
	checks := map[string]platformhandler.Checker{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}
