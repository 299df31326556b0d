package observability

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/automationexercise/shopcheck/internal/config"
)

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLoggerWithWriter(config.LogConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("step passed", zap.String("journey", "TC01"))
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug entry should be filtered at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "step passed", entry["msg"])
	assert.Equal(t, "TC01", entry["journey"])
	assert.Contains(t, entry, "ts")
}

func TestNewLoggerWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLoggerWithWriter(config.LogConfig{Level: "debug", Format: "console"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Debug("clicking", zap.String("locator", "#submit_search"))
	require.NoError(t, logger.Sync())

	assert.Contains(t, buf.String(), "clicking")
	assert.Contains(t, buf.String(), "#submit_search")
}

func TestNewLoggerWithWriter_InvalidLevel(t *testing.T) {
	_, err := NewLoggerWithWriter(config.LogConfig{Level: "loud"}, zapcore.AddSync(&bytes.Buffer{}))
	assert.Error(t, err)
}

func TestNewLoggerWithWriter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopcheck.log")
	logger, err := NewLoggerWithWriter(config.LogConfig{
		Level:      "info",
		Format:     "console",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	}, zapcore.AddSync(&bytes.Buffer{}))
	require.NoError(t, err)

	logger.Info("written to file")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written to file"`)
}

// capture swaps *target for a pipe while fn runs and returns what was written to it
func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	saved := *target
	*target = w
	defer func() { *target = saved }()

	fn()
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestNewLogger_KeepsStdoutForCommandOutput(t *testing.T) {
	var stderr string
	stdout := capture(t, &os.Stdout, func() {
		stderr = capture(t, &os.Stderr, func() {
			logger, err := NewLogger(config.LogConfig{Level: "info", Format: "console"})
			require.NoError(t, err)
			logger.Info("step passed", zap.String("journey", "register-user"))
			_ = logger.Sync()
		})
	})

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "step passed")
	assert.Contains(t, stderr, "register-user")
}
