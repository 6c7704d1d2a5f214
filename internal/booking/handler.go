package booking

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

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

// Create handles POST /api/book. The rate-limit middleware has already
// run and attached headers by the time this executes.
func (h *Handler) Create(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	if errs := req.validate(time.Now()); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(errs, ", ")})
		return
	}

	ip := security.ClientIP(c.Request, h.trustProxy)

	id, err := h.svc.Save(c.Request.Context(), Appointment{
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     req.Email,
		Service:   req.Service,
		Date:      req.Date,
		Message:   req.Message,
		IPHash:    security.HashClientIP(ip),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		logger.Error("failed to save appointment", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process booking request. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      id,
		"message": "Appointment request submitted successfully! We will contact you shortly to confirm.",
	})
}

// List handles GET /api/admin/appointments.
func (h *Handler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 100)
	offset := queryInt(c, "offset", 0)
	status := c.Query("status")

	appointments, err := h.svc.List(c.Request.Context(), limit, offset, status)
	if err != nil {
		logger.Error("failed to list appointments", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		logger.Error("failed to load appointment stats", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"appointments": appointments,
			"stats":        stats,
			"pagination": gin.H{
				"limit":   limit,
				"offset":  offset,
				"total":   stats.Total,
				"hasMore": offset+len(appointments) < stats.Total,
			},
		},
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/appointments/:id.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
	case errors.Is(err, sql.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
	case err != nil:
		logger.Error("failed to update appointment", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
