package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/voltguard/backend/internal/ratelimit"
)

// SubmissionLimit bounds report submissions per client IP. A limiter failure
// (e.g. redis down) fails open: a broken limiter must not take report intake
// with it.
func SubmissionLimit(limiter ratelimit.RateLimiter, cfg ratelimit.Config, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || !cfg.Enabled() {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.ClientIP(), cfg)
		if err != nil {
			logger.Warn().Err(err).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": "Too many submissions, try again later",
				},
			})
			return
		}
		c.Next()
	}
}
