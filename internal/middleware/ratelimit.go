package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/puzpuzpuz/xsync/v3"
)

// RateLimiter tracks request timestamps per client IP over a sliding window.
// Analysis requests can be expensive (a full accessibility pass touches every
// zone pair), so the limiter sits in front of all API routes.
type RateLimiter struct {
	requests *xsync.MapOf[string, []time.Time]
	limit    int
	window   time.Duration
}

// NewRateLimiter creates a new rate limiter allowing limit requests per window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: xsync.NewMapOf[string, []time.Time](),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()

	return rl
}

// cleanup drops idle IPs so the map does not grow without bound
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.requests.Range(func(ip string, times []time.Time) bool {
			valid := withinWindow(times, now, rl.window)
			if len(valid) == 0 {
				rl.requests.Delete(ip)
			} else {
				rl.requests.Store(ip, valid)
			}
			return true
		})
	}
}

// Allow reports whether a request from the given IP is within the limit
func (rl *RateLimiter) Allow(ip string) bool {
	now := time.Now()
	allowed := false
	rl.requests.Compute(ip, func(times []time.Time, _ bool) ([]time.Time, bool) {
		valid := withinWindow(times, now, rl.window)
		if len(valid) >= rl.limit {
			return valid, false
		}
		allowed = true
		return append(valid, now), false
	})
	return allowed
}

func withinWindow(times []time.Time, now time.Time, window time.Duration) []time.Time {
	var valid []time.Time
	for _, t := range times {
		if now.Sub(t) < window {
			valid = append(valid, t)
		}
	}
	return valid
}

// RateLimit middleware limits requests per IP
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(limit, window)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
