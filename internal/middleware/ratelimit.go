package middleware

import (
	"net/http"

	"github.com/iambatul/sishairven/internal/logger"
	"github.com/iambatul/sishairven/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit guards a route with the named limiter from the registry.
// Rate-limit headers are attached to every response on this path,
// admitted or not.
func RateLimit(reg *ratelimit.Registry, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := reg.Get(name)
		if lim == nil {
			// Unknown limiter name is a wiring bug, not client error.
			logger.Error("unknown rate limiter", map[string]any{"name": name})
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
			})
			return
		}

		res, err := lim.Apply(c.Request)
		ratelimit.WriteHeaders(c.Writer.Header(), res)

		if err != nil {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
