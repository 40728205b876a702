package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"identity-service/app/metrics"
)

// RateLimiterConfig holds per-client rate limiting configuration.
type RateLimiterConfig struct {
	// Interval between allowed identification requests per client IP.
	IdentifyInterval time.Duration
	// Burst for identification requests.
	IdentifyBurst int
}

// DefaultRateLimiterConfig returns the default limits.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		IdentifyInterval: time.Minute,
		IdentifyBurst:    5,
	}
}

// RateLimiter limits requests per client IP with separate budgets for
// the identification endpoints and the rest of the API.
type RateLimiter struct {
	cfg      RateLimiterConfig
	visitors map[string]*visitor
	mutex    sync.Mutex
	done     chan struct{}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter and starts its cleanup loop.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		cfg:      cfg,
		visitors: make(map[string]*visitor),
		done:     make(chan struct{}),
	}

	go rl.cleanupVisitors()
	return rl
}

// RateLimit returns the echo middleware function.
func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			var limit rate.Limit
			var burst int

			path := c.Request().URL.Path
			switch {
			case strings.HasSuffix(path, "/identify"), strings.HasSuffix(path, "/verify"):
				limit = rate.Every(rl.cfg.IdentifyInterval)
				burst = rl.cfg.IdentifyBurst
			default:
				limit = rate.Every(time.Second)
				burst = 20
			}

			if !rl.allow(ip, path, limit, burst) {
				metrics.RecordRateLimited()
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error": "too many requests, try later",
					"code":  "RATE_LIMIT_EXCEEDED",
				})
			}

			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(ip, path string, limit rate.Limit, burst int) bool {
	// Separate buckets per endpoint class so a burst of health checks
	// never consumes the identification budget.
	key := ip
	if strings.HasSuffix(path, "/identify") || strings.HasSuffix(path, "/verify") {
		key = ip + ":identification"
	}

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(limit, burst)}
		rl.visitors[key] = v
	}

	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mutex.Lock()
			for key, v := range rl.visitors {
				if time.Since(v.lastSeen) > 3*time.Minute {
					delete(rl.visitors, key)
				}
			}
			rl.mutex.Unlock()
		}
	}
}

// Stop terminates the cleanup loop.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}
