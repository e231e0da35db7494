package middleware

import (
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a per-client token bucket keyed by the sharer header when
// present, falling back to the remote IP. rps <= 0 disables limiting.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if burst <= 0 {
		burst = 5
	}

	var limiters sync.Map // map[string]*rate.Limiter

	getLimiter := func(key string) *rate.Limiter {
		if v, ok := limiters.Load(key); ok {
			return v.(*rate.Limiter)
		}
		lim := rate.NewLimiter(rate.Limit(rps), burst)
		actual, loaded := limiters.LoadOrStore(key, lim)
		if loaded {
			return actual.(*rate.Limiter)
		}
		return lim
	}

	return func(c *gin.Context) {
		if rps <= 0 {
			c.Next()
			return
		}

		key := c.GetHeader(SharerHeader)
		if key == "" {
			host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
			if err == nil && host != "" {
				key = host
			} else {
				key = "unknown"
			}
		}

		if !getLimiter(key).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
