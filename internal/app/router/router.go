// Package router はgin のルートテーブルを組み立てます。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "codex_backend/internal/feature/auth/transport/handler"
	synchandler "codex_backend/internal/feature/contentsync/transport/handler"
	insightshandler "codex_backend/internal/feature/insights/transport/handler"
	paymentshandler "codex_backend/internal/feature/payments/transport/handler"
	platformhandler "codex_backend/internal/platform/http/handler"
	jwtmw "codex_backend/internal/platform/jwt"
	"codex_backend/internal/platform/metrics"
)

// Handlers はルーターに登録するハンドラーの一式です。
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Password *authhandler.PasswordHandler
	DailyHit *insightshandler.DailyHitHandler
	Insights *insightshandler.InsightsHandler
	Payments *paymentshandler.PaymentsHandler
	Sync     *synchandler.SyncHandler
	Health   *platformhandler.HealthHandler
}

// Options はミドルウェアの設定です。
type Options struct {
	AllowedOrigins []string
	Metrics        *metrics.Metrics
}

// NewRouter はすべてのAPIルートを /api 以下に登録したエンジンを返します。
func NewRouter(h Handlers, authenticator jwtmw.Authenticator, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)

	api := r.Group("/api")

	// 認証不要
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/forgot-password", h.Password.ForgotPassword)
	api.POST("/auth/reset-password", h.Password.ResetPassword)
	// Stripe-Signature ヘッダーで検証する
	api.POST("/webhook/stripe", h.Payments.StripeWebhook)

	// 認証必須のルート
	user := api.Group("/")
	user.Use(jwtmw.AuthRequired(authenticator))
	{
		user.GET("/auth/verify", h.Auth.Verify)

		user.GET("/user/profile", h.Auth.Profile)
		user.PUT("/user/interests", h.Auth.UpdateInterests)
		user.GET("/user/subscription", h.Payments.Subscription)

		user.GET("/insights/daily-hit", h.DailyHit.GetDailyHit)
		user.GET("/insights/library", h.Insights.Library)
		user.GET("/insights/saved", h.Insights.Saved)
		user.POST("/insights/:id/like", h.Insights.Like)
		user.POST("/insights/:id/save", h.Insights.Save)

		user.POST("/payments/checkout/session", h.Payments.CreateCheckoutSession)
		user.GET("/payments/checkout/status/:id", h.Payments.CheckoutStatus)
	}

	// 管理者のみ
	admin := api.Group("/admin")
	admin.Use(jwtmw.AuthRequired(authenticator), jwtmw.AdminRequired())
	{
		admin.GET("/insights", h.Insights.AdminList)
		admin.POST("/insights", h.Insights.AdminCreate)
		admin.PUT("/insights/:id", h.Insights.AdminUpdate)
		admin.DELETE("/insights/:id", h.Insights.AdminDelete)
		admin.GET("/analytics", h.Insights.Analytics)
		admin.POST("/daily-hits/override", h.DailyHit.Override)
		admin.POST("/subscriptions/grant", h.Payments.Grant)
		admin.POST("/subscriptions/revoke", h.Payments.Revoke)
		admin.POST("/sync-blog", h.Sync.SyncBlog)
	}

	return r
}

// corsConfig は "*" のみなら全オリジンを許可します。その場合は資格情報付きリクエストを許可しません。
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
