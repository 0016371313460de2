package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteEventName(t *testing.T) {
	assert.Equal(t, "notes_id_archive", routeEventName("/api/notes/:id/archive"))
	assert.Equal(t, "auth_login", routeEventName("/api/auth/login"))
	assert.Equal(t, "", routeEventName(""))
}

func TestIsUntracked(t *testing.T) {
	assert.True(t, isUntracked("/health"))
	assert.True(t, isUntracked("/swagger/index.html"))
	assert.False(t, isUntracked("/api/notes"))
}

func TestStructuredLoggingMiddleware_StoresLoggerInRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(StructuredLoggingMiddleware(logger))
	router.GET("/ping", func(c *gin.Context) {
		GetLoggerFromContext(c).Info("inside handler")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"msg":"inside handler"`)
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Contains(t, buf.String(), `"msg":"Request completed"`)
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, slog.Default(), GetLoggerFromCtx(req.Context()))
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim, err := NewLimiter("2-M", "test", nil)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/login", RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewLimiter_RejectsBadRate(t *testing.T) {
	_, err := NewLimiter("five-per-minute", "test", nil)
	assert.Error(t, err)
}
