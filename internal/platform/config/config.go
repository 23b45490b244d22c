// Package config loads application settings from environment variables.
package config

import (
	"log/slog"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Reset    ResetConfig
	Mail     MailConfig
	Stripe   StripeConfig
	Content  ContentConfig
	Gemini   GeminiConfig
	CORS     CORSConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// PublicBaseURL overrides the scheme://host used to build the payment webhook URL.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// DSN wins over the individual fields when set.
type DatabaseConfig struct {
	DSN            string        `env:"DATABASE_URL"`
	Host           string        `env:"DB_HOST"            env-default:"localhost"`
	Port           string        `env:"DB_PORT"            env-default:"5432"`
	User           string        `env:"DB_USER"            env-default:"postgres"`
	Password       string        `env:"DB_PASSWORD"`
	Name           string        `env:"DB_NAME"            env-default:"codex"`
	SSLMode        string        `env:"DB_SSLMODE"         env-default:"disable"`
	MaxOpenConns   int           `env:"DB_MAX_OPEN_CONNS"  env-default:"25"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" env-default:"60s"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS"     env-default:"false"`
}

// RedisConfig holds settings for the optional daily-hit cache.
type RedisConfig struct {
	Host      string `env:"REDIS_HOST"`
	Port      string `env:"REDIS_PORT"      env-default:"6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB"        env-default:"0"`
	Namespace string `env:"REDIS_NAMESPACE" env-default:"dailyhit"`
}

// Enabled reports whether a Redis host was configured.
func (r RedisConfig) Enabled() bool { return r.Host != "" }

// AuthConfig holds session token and password hashing settings.
type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET"       env-required:"true"`
	TokenTTL   time.Duration `env:"AUTH_TOKEN_TTL"   env-default:"720h"`
	BcryptCost int           `env:"AUTH_BCRYPT_COST" env-default:"10"`
}

// ResetConfig holds password reset settings.
type ResetConfig struct {
	URLTemplate string        `env:"RESET_URL_TEMPLATE" env-default:"https://app.getgeeky.blog/reset-password?token=%s"`
	TokenTTL    time.Duration `env:"RESET_TOKEN_TTL"    env-default:"1h"`
}

// MailConfig holds outbound email settings.
type MailConfig struct {
	ResendAPIKey string        `env:"RESEND_API_KEY"`
	From         string        `env:"MAIL_FROM"         env-default:"GetGeeky Codex <noreply@getgeeky.blog>"`
	SendTimeout  time.Duration `env:"MAIL_SEND_TIMEOUT" env-default:"15s"`
}

// StripeConfig holds payment provider settings.
type StripeConfig struct {
	SecretKey     string `env:"STRIPE_API_KEY"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	Currency      string `env:"STRIPE_CURRENCY" env-default:"usd"`
}

// ContentConfig holds the blog import settings.
type ContentConfig struct {
	GitHubAPIURL      string        `env:"GITHUB_API_URL"          env-default:"https://api.github.com"`
	GitHubRepo        string        `env:"GITHUB_REPO"             env-default:"getgeekyofficial/codex-blog"`
	GitHubBranch      string        `env:"GITHUB_BRANCH"           env-default:"main"`
	GitHubContentPath string        `env:"GITHUB_CONTENT_PATH"     env-default:"content/posts"`
	GitHubToken       string        `env:"GITHUB_TOKEN"`
	BlogBaseURL       string        `env:"BLOG_BASE_URL"           env-default:"https://codex-blog.vercel.app"`
	RequestsPerMinute int           `env:"GITHUB_REQUESTS_PER_MIN" env-default:"30"`
	Timeout           time.Duration `env:"GITHUB_TIMEOUT"          env-default:"10s"`
}

// GeminiConfig toggles the optional excerpt summarizer.
type GeminiConfig struct {
	Enabled bool   `env:"GEMINI_ENABLED" env-default:"false"`
	Model   string `env:"GEMINI_MODEL"   env-default:"gemini-2.5-flash"`
	// APIKey selects the Gemini API backend. Empty falls back to ADC (GOOGLE_GENAI_USE_VERTEXAI etc.).
	APIKey string `env:"GEMINI_API_KEY"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `env:"CORS_ORIGINS" env-default:"*"`
}

// Origins splits AllowedOrigins into a trimmed list.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

// SlogLevel maps Level to a slog.Level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Namespace string `env:"METRICS_NAMESPACE" env-default:"codex"`
}
