package di

import (
	"io"
	"log/slog"
	"strings"

	"codex_backend/internal/platform/config"
)

// NewLogger builds the process logger. LOG_FORMAT=text selects the human-readable handler.
func NewLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
