package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/artmafra/notas/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	result *ratelimit.Result
	err    error
}

func (s *stubLimiter) Enabled() bool { return true }

func (s *stubLimiter) AllowIP(ctx context.Context, ip string) (*ratelimit.Result, error) {
	return s.result, s.err
}

func newLimitedEngine(limiter ipLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := &Server{limiter: limiter}

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	r.GET("/ping", s.RateLimit(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func TestRateLimitAllows(t *testing.T) {
	r := newLimitedEngine(&stubLimiter{
		result: &ratelimit.Result{Allowed: true, Limit: 10, Remaining: 9},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitDenies(t *testing.T) {
	r := newLimitedEngine(&stubLimiter{
		result: &ratelimit.Result{Allowed: false, Limit: 10, RetryAfter: 30 * time.Second},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "rate limit exceeded", payload["error"])
}

func TestRateLimitBackendFailure(t *testing.T) {
	r := newLimitedEngine(&stubLimiter{err: errors.New("redis: connection refused")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRateLimitDisabledWithoutLimiter(t *testing.T) {
	r := newLimitedEngine(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
