package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultBurstSize = 5
	CleanupInterval  = 5 * time.Minute
	LimiterTTL       = 10 * time.Minute
)

// RateLimiter keeps one token bucket per workspace
type RateLimiter struct {
	limiters          map[int32]*limiterEntry
	mu                sync.Mutex
	requestsPerMinute int
	perSecond         float64
	burstSize         int
	stopCh            chan struct{}
	stopOnce          sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter starts a limiter allowing requestsPerMinute with the given burst
func NewRateLimiter(requestsPerMinute int, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		limiters:          make(map[int32]*limiterEntry),
		requestsPerMinute: requestsPerMinute,
		perSecond:         float64(requestsPerMinute) / 60.0,
		burstSize:         burstSize,
		stopCh:            make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Allow consumes a token for workspaceID and reports the tokens left
func (r *RateLimiter) Allow(workspaceID int32) (bool, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.limiters[workspaceID]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(r.perSecond), r.burstSize)}
		r.limiters[workspaceID] = entry
	}
	entry.lastSeen = time.Now()

	allowed := entry.limiter.Allow()
	remaining := int(entry.limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining
}

// retryAfter estimates the seconds until one token is available again
func (r *RateLimiter) retryAfter() int {
	seconds := int(1 / r.perSecond)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictStale(time.Now())
		case <-r.stopCh:
			return
		}
	}
}

func (r *RateLimiter) evictStale(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for workspaceID, entry := range r.limiters {
		if now.Sub(entry.lastSeen) > LimiterTTL {
			delete(r.limiters, workspaceID)
			log.Debug().Int32("workspace_id", workspaceID).Msg("Cleaned up stale rate limiter")
		}
	}
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// RateLimit limits authenticated requests per workspace. It must run after Authenticate.
func RateLimit(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			workspaceID := GetWorkspaceID(c)
			if workspaceID == 0 {
				return next(c)
			}

			allowed, remaining := rl.Allow(workspaceID)
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(rl.requestsPerMinute))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				retryAfter := rl.retryAfter()
				h.Set("Retry-After", strconv.Itoa(retryAfter))

				log.Warn().
					Int32("workspace_id", workspaceID).
					Int("retry_after", retryAfter).
					Str("path", c.Request().URL.Path).
					Msg("Rate limit exceeded")

				return rateLimitError(c, retryAfter)
			}

			return next(c)
		}
	}
}
