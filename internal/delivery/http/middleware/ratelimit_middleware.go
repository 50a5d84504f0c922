package middleware

import (
	"net/http"
	"sync"
	"time"

	"jukebox/config"
	"jukebox/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles requests per client IP. It guards the
// unauthenticated auth endpoints against credential stuffing.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

// NewRateLimitMiddleware creates the limiter from config. A zero RPS
// disables throttling.
func NewRateLimitMiddleware(cfg *config.Config) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		visitors: make(map[string]*visitor),
	}
	if cfg.RateLimit != nil {
		m.rps = rate.Limit(cfg.RateLimit.RPS)
		m.burst = cfg.RateLimit.Burst
	}
	if m.rps > 0 {
		go m.cleanup()
	}

	return m
}

func (m *RateLimitMiddleware) getLimiter(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, exists := m.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(m.rps, m.burst)
		m.visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}

		return limiter
	}

	v.lastSeen = time.Now()

	return v.limiter
}

// cleanup drops idle visitor entries so the map does not grow unbounded.
func (m *RateLimitMiddleware) cleanup() {
	for {
		time.Sleep(10 * time.Minute)
		m.mu.Lock()
		for ip, v := range m.visitors {
			if time.Since(v.lastSeen) > 10*time.Minute {
				delete(m.visitors, ip)
			}
		}
		m.mu.Unlock()
	}
}

// Limit is the echo middleware function.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.rps <= 0 {
			return next(c)
		}

		if !m.getLimiter(c.RealIP()).Allow() {
			return response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, slow down")
		}

		return next(c)
	}
}
