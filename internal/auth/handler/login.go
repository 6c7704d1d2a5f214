package handler

import (
	"errors"
	"net/http"

	"github.com/iambatul/sishairven/internal/auth"
	"github.com/iambatul/sishairven/internal/session"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login. Success opens a session and
// sets the cookie; the token is also returned for non-browser clients.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	token, identity, err := h.gate.LoginAdmin(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin credentials not configured"})
		return
	case errors.Is(err, auth.ErrUnauthenticated):
		// Same answer for wrong email and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	session.SetCookie(c.Writer, token, h.secureCookies)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    identity,
	})
}
