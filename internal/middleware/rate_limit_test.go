package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(10, 5)
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := rl.Allow(1)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, remaining := rl.Allow(1)
	assert.False(t, allowed, "request 6 should be rate limited")
	assert.Equal(t, 0, remaining)
}

func TestRateLimiter_WorkspacesAreIndependent(t *testing.T) {
	rl := NewRateLimiter(10, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		rl.Allow(1)
	}
	allowed, _ := rl.Allow(1)
	assert.False(t, allowed)

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow(2)
		assert.True(t, allowed, "workspace 2 request %d should be allowed", i+1)
	}
}

func TestRateLimiter_EvictStale(t *testing.T) {
	rl := NewRateLimiter(10, 3)
	defer rl.Stop()

	rl.Allow(1)
	rl.evictStale(time.Now().Add(LimiterTTL + time.Second))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.limiters)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(10, 3)

	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}

func withWorkspace(c echo.Context, workspaceID int32) {
	ctx := context.WithValue(c.Request().Context(), WorkspaceIDKey, workspaceID)
	c.SetRequest(c.Request().WithContext(ctx))
}

func TestRateLimit_Middleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(60, 2)
	defer rl.Stop()

	handler := RateLimit(rl)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/budget-planner-chat", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		withWorkspace(c, 9)
		require.NoError(t, handler(c))
		return rec
	}

	first := call()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "60", first.Header().Get("X-RateLimit-Limit"))

	assert.Equal(t, http.StatusOK, call().Code)

	limited := call()
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))

	var body problemDetails
	require.NoError(t, json.Unmarshal(limited.Body.Bytes(), &body))
	assert.Equal(t, errorTypeRateLimit, body.Type)
	assert.Equal(t, http.StatusTooManyRequests, body.Status)
}

func TestRateLimit_SkipsWithoutWorkspace(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)
	defer rl.Stop()

	handler := RateLimit(rl)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
