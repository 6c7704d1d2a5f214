package newsletter

import (
	"net/http"
	"strings"

	"github.com/iambatul/sishairven/internal/logger"
	"github.com/iambatul/sishairven/internal/security"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc        *Service
	trustProxy bool
}

func NewHandler(svc *Service, trustProxy bool) *Handler {
	return &Handler{svc: svc, trustProxy: trustProxy}
}

type subscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Subscribe handles POST /api/subscribe.
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	if !ValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if len(name) > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid name"})
		return
	}

	ip := security.ClientIP(c.Request, h.trustProxy)
	if err := h.svc.Subscribe(c.Request.Context(), req.Email, name, security.HashClientIP(ip)); err != nil {
		logger.Error("failed to save subscriber", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thank you for subscribing!",
	})
}
