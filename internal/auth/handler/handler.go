package handler

import (
	"net/http"

	"github.com/iambatul/sishairven/internal/auth"
	"github.com/iambatul/sishairven/internal/middleware"
	"github.com/iambatul/sishairven/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler owns the admin session lifecycle endpoints: login, logout
// and the identity echo. Route protection itself lives in middleware.
type Handler struct {
	gate          *auth.Gate
	secureCookies bool
}

func NewHandler(gate *auth.Gate, secureCookies bool) *Handler {
	return &Handler{
		gate:          gate,
		secureCookies: secureCookies,
	}
}

// Logout revokes whichever session credential the request carries and
// clears the cookie. Idempotent: logging out twice is fine.
func (h *Handler) Logout(c *gin.Context) {
	token := auth.ExtractBearerToken(c.Request)
	if token == "" {
		if cookie, err := c.Request.Cookie(session.CookieName); err == nil {
			token = cookie.Value
		}
	}

	if token != "" {
		_ = h.gate.RevokeSession(c.Request.Context(), token)
	}

	session.ClearCookie(c.Writer, h.secureCookies)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the identity the auth middleware resolved.
func (h *Handler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": identity})
}
