package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// unsetEnv removes key for the duration of the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "ENV_FILE")
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Hour, cfg.Reset.TokenTTL)
	assert.Equal(t, "https://app.getgeeky.blog/reset-password?token=%s", cfg.Reset.URLTemplate)
	assert.Equal(t, "usd", cfg.Stripe.Currency)
	assert.Equal(t, "getgeekyofficial/codex-blog", cfg.Content.GitHubRepo)
	assert.Equal(t, "content/posts", cfg.Content.GitHubContentPath)
	assert.Equal(t, "dailyhit", cfg.Redis.Namespace)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Database.RunMigrations)
}

func TestLoad_EnvOverrides(t *testing.T) {
	unsetEnv(t, "ENV_FILE")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("AUTH_TOKEN_TTL", "24h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.Origins())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "short secret", env: map[string]string{"JWT_SECRET": "short"}},
		{name: "bad bcrypt cost", env: map[string]string{"JWT_SECRET": testSecret, "AUTH_BCRYPT_COST": "99"}},
		{name: "reset template without placeholder", env: map[string]string{"JWT_SECRET": testSecret, "RESET_URL_TEMPLATE": "https://x.example/reset"}},
		{name: "non-positive reset ttl", env: map[string]string{"JWT_SECRET": testSecret, "RESET_TOKEN_TTL": "0s"}},
		{name: "explicit env file missing", env: map[string]string{"JWT_SECRET": testSecret, "ENV_FILE": "/nonexistent/.env"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, "ENV_FILE")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	unsetEnv(t, "JWT_SECRET")
	unsetEnv(t, "MAIL_FROM")

	path := filepath.Join(t.TempDir(), "test.env")
	content := "JWT_SECRET=" + testSecret + "\nMAIL_FROM=team@example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("ENV_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, "team@example.com", cfg.Mail.From)
}

func TestLogConfig_SlogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LogConfig{Level: tt.level}.SlogLevel(), tt.level)
	}
}
