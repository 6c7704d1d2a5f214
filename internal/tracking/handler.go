package tracking

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/iambatul/sishairven/internal/logger"
	"github.com/iambatul/sishairven/internal/security"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc        *Service
	proxy      *ProxyClient
	trustProxy bool
}

func NewHandler(svc *Service, proxy *ProxyClient, trustProxy bool) *Handler {
	return &Handler{svc: svc, proxy: proxy, trustProxy: trustProxy}
}

type clickRequest struct {
	ASIN                string  `json:"asin"`
	ProductName         string  `json:"productName"`
	Category            string  `json:"category"`
	Country             string  `json:"country"`
	Timezone            string  `json:"timezone"`
	Source              string  `json:"source"`
	Campaign            string  `json:"campaign"`
	EstimatedCommission float64 `json:"estimatedCommission"`
}

// TrackClick handles POST /api/clika/track-click.
func (h *Handler) TrackClick(c *gin.Context) {
	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	if !ValidASIN(req.ASIN) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ASIN"})
		return
	}
	if req.ProductName == "" || len(req.ProductName) > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product name"})
		return
	}

	country := req.Country
	if country == "" {
		country = "US"
	} else if !ValidCountryCode(country) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid country code"})
		return
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	ip := security.ClientIP(c.Request, h.trustProxy)

	id, err := h.svc.SaveClick(c.Request.Context(), Click{
		ASIN:                req.ASIN,
		ProductName:         req.ProductName,
		Category:            req.Category,
		Country:             country,
		Timezone:            timezone,
		Source:              req.Source,
		Campaign:            req.Campaign,
		EstimatedCommission: req.EstimatedCommission,
		IPHash:              security.HashClientIP(ip),
		UserAgent:           c.Request.UserAgent(),
	})
	if err != nil {
		logger.Error("failed to save click", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// TrackSession handles POST /api/clika/track-session. Session pings
// are high-volume, low-value telemetry; they are logged, not stored.
func (h *Handler) TrackSession(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	logger.Info("session ping", map[string]any{
		"proxyId": payload["proxyId"],
		"country": payload["country"],
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// TrackImpression handles POST /api/clika/track-impression.
func (h *Handler) TrackImpression(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	logger.Info("impression", map[string]any{
		"asin":   payload["asin"],
		"source": payload["source"],
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type proxyRequest struct {
	TargetURL string `json:"targetUrl"`
}

// RequestProxy handles POST /api/clika/request-proxy.
func (h *Handler) RequestProxy(c *gin.Context) {
	if !h.proxy.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Clika service not configured"})
		return
	}

	body, err := c.GetRawData()
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	var req proxyRequest
	_ = json.Unmarshal(body, &req)
	if req.TargetURL != "" && !validProxyURL(req.TargetURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target URL"})
		return
	}

	result, err := h.proxy.Forward(
		c.Request.Context(),
		body,
		c.Request.Header.Get("X-Forwarded-For"),
	)
	if err != nil {
		if errors.Is(err, ErrUpstream) {
			logger.Error("clika proxy error", map[string]any{"error": err.Error()})
			c.JSON(http.StatusBadGateway, gin.H{"error": "Clika service error"})
			return
		}
		logger.Error("proxy request failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Data(http.StatusOK, "application/json", result)
}

func validProxyURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
