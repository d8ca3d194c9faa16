package observability_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/repostats/pkg/config"
	"github.com/Sumatoshi-tech/repostats/pkg/observability"
)

func TestNewLoggerFiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, config.LoggingConfig{Level: "warn", Format: "text"}, observability.LoggerOptions{})

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestNewLoggerVerboseEnablesDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, config.LoggingConfig{Level: "error", Format: "text"}, observability.LoggerOptions{Verbose: true})

	logger.Debug("details")
	assert.Contains(t, buf.String(), "details")
}

func TestNewLoggerQuietDiscardsEverything(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, config.LoggingConfig{Level: "debug", Format: "text"}, observability.LoggerOptions{Quiet: true})

	logger.Error("nothing")
	assert.Empty(t, buf.String())
}

func TestNewLoggerJSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, config.LoggingConfig{Level: "info", Format: "json"}, observability.LoggerOptions{})

	logger.Info("hello", "signal", "stars")

	line := strings.TrimSpace(buf.String())
	require.True(t, strings.HasPrefix(line, "{"), "expected JSON output, got %q", line)
	assert.Contains(t, line, `"signal":"stars"`)
}
