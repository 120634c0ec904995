package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog/internal/infrastructure/ratelimit"
	"catalog/internal/shared/utils"
)

// RateLimit throttles by client IP using the shared limiter. Preview routes
// proxy straight through to the storage systems, so overload upstream is the
// caller's problem to feel, not the back-ends'.
func RateLimit(limiter ratelimit.RateLimiter, cfg ratelimit.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.ClientIP(), cfg)
		if err != nil {
			// Limiter backend unavailable; letting traffic through beats
			// blocking every request.
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
