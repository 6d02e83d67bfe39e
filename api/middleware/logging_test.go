package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(buffer *bytes.Buffer, options ...LoggerOption) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := gin.New()
	r.Use(NewLogging(logger, options...))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/liveness", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func serve(r *gin.Engine, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
}

func TestNewLogging(t *testing.T) {
	var buffer bytes.Buffer
	r := newTestRouter(&buffer, WithIgnorePath([]string{"/liveness"}))

	serve(r, "/ok")
	assert.Contains(t, buffer.String(), "level=INFO")
	assert.Contains(t, buffer.String(), "route=/ok")

	buffer.Reset()
	serve(r, "/missing")
	assert.Contains(t, buffer.String(), "level=WARN")
	assert.Contains(t, buffer.String(), "status=404")

	buffer.Reset()
	serve(r, "/liveness")
	assert.Empty(t, buffer.String())
}

func TestNewLogging_ErrorsOnly(t *testing.T) {
	var buffer bytes.Buffer
	r := newTestRouter(&buffer, WithErrorsOnly(true))

	serve(r, "/ok")
	assert.Empty(t, buffer.String())

	serve(r, "/missing")
	assert.Contains(t, buffer.String(), "status=404")
}
