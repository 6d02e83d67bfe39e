package utils

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGCPLoggerAttributeReplacer(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: GCPLoggerAttributeReplacer}))

	logger.Warn("import done", "stores", 12)

	assert.Contains(t, buf.String(), `"severity":"WARNING"`)
	assert.Contains(t, buf.String(), `"message":"import done"`)
	assert.Contains(t, buf.String(), `"stores":12`)
}

func TestLocalDevHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLocalDevHandler(&buf))

	logger.Info("leaderboard read", "regions", 4)

	assert.Contains(t, buf.String(), "INFO leaderboard read")
	assert.Contains(t, buf.String(), "regions=4")
}
