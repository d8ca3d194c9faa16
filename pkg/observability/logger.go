// Package observability provides structured logging setup for repostats.
package observability

import (
	"io"
	"log/slog"

	"github.com/Sumatoshi-tech/repostats/pkg/config"
)

// LoggerOptions adjust the configured logging behavior per invocation.
type LoggerOptions struct {
	// Verbose lowers the level to debug regardless of configuration.
	Verbose bool
	// Quiet discards all log output.
	Quiet bool
}

// NewLogger builds an [slog.Logger] writing to w according to the logging
// configuration. The configuration is assumed validated.
func NewLogger(w io.Writer, cfg config.LoggingConfig, opts LoggerOptions) *slog.Logger {
	if opts.Quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	level := parseLevel(cfg.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
