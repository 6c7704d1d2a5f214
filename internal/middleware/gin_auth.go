package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireAdmin adapts the net/http AuthMiddleware to Gin. Auth
// decisions stay in the gate; this only bridges the two handler
// models.
func GinRequireAdmin(auth *AuthMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		handler := auth.RequireAdmin(next)
		handler.ServeHTTP(c.Writer, c.Request)

		// If the middleware already wrote the response, stop the Gin chain.
		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}
