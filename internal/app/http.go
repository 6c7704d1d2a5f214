package app

import (
	"context"
	"net/http"
	"time"

	"github.com/iambatul/sishairven/internal/auth"
	authhandler "github.com/iambatul/sishairven/internal/auth/handler"
	"github.com/iambatul/sishairven/internal/booking"
	"github.com/iambatul/sishairven/internal/config"
	"github.com/iambatul/sishairven/internal/logger"
	"github.com/iambatul/sishairven/internal/middleware"
	"github.com/iambatul/sishairven/internal/newsletter"
	"github.com/iambatul/sishairven/internal/ratelimit"
	"github.com/iambatul/sishairven/internal/session"
	"github.com/iambatul/sishairven/internal/tracking"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewMemoryStore()
	sessionStore.StartSweeper(ctx)

	gate := auth.NewGate(
		auth.NewAuthenticator(cfg.AdminAPIToken),
		sessionStore,
		cfg.AdminEmail,
		cfg.AdminPasswordHash,
	)

	var regOpts []ratelimit.RegistryOption
	if cfg.BookingMaxRequests > 0 {
		regOpts = append(regOpts, ratelimit.WithPolicy(ratelimit.Booking, ratelimit.Options{
			MaxRequests: cfg.BookingMaxRequests,
			Window:      5 * time.Minute,
			Burst:       1,
		}))
	}
	limiters := ratelimit.NewRegistry(cfg.TrustProxyHeaders, regOpts...)
	limiters.StartJanitor(ctx, time.Minute)

	bookingSvc := booking.NewService(infra.DB)
	bookingHandler := booking.NewHandler(bookingSvc, cfg.TrustProxyHeaders)

	newsletterSvc := newsletter.NewService(infra.DB)
	newsletterHandler := newsletter.NewHandler(newsletterSvc, cfg.TrustProxyHeaders)

	trackingSvc := tracking.NewService(infra.DB)
	trackingHandler := tracking.NewHandler(
		trackingSvc,
		tracking.NewProxyClient(cfg.ClikaAPIURL, cfg.ClikaAPIKey),
		cfg.TrustProxyHeaders,
	)

	adminHandler := authhandler.NewHandler(gate, cfg.IsProduction())
	authMiddleware := middleware.NewAuthMiddleware(gate)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Public routes
	// ----------------------------

	router.POST("/api/book",
		middleware.RateLimit(limiters, ratelimit.Booking),
		bookingHandler.Create,
	)

	router.POST("/api/subscribe",
		middleware.RateLimit(limiters, ratelimit.Newsletter),
		newsletterHandler.Subscribe,
	)

	// The tracking script runs in browsers on third-party storefronts.
	clika := router.Group("/api/clika")
	clika.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))
	clika.POST("/track-click",
		middleware.RateLimit(limiters, ratelimit.ClickTracking),
		trackingHandler.TrackClick,
	)
	clika.POST("/track-session",
		middleware.RateLimit(limiters, ratelimit.SessionTracking),
		trackingHandler.TrackSession,
	)
	clika.POST("/track-impression",
		middleware.RateLimit(limiters, ratelimit.SessionTracking),
		trackingHandler.TrackImpression,
	)
	clika.POST("/request-proxy",
		middleware.RateLimit(limiters, ratelimit.Proxy),
		trackingHandler.RequestProxy,
	)

	// ----------------------------
	// Admin routes
	// ----------------------------

	router.POST("/api/admin/login",
		middleware.RateLimit(limiters, ratelimit.Login),
		adminHandler.Login,
	)

	admin := router.Group("/api/admin")
	admin.Use(middleware.GinRequireAdmin(authMiddleware))

	admin.POST("/logout", adminHandler.Logout)
	admin.GET("/me", adminHandler.Me)

	admin.GET("/appointments", bookingHandler.List)
	admin.PATCH("/appointments/:id", bookingHandler.UpdateStatus)

	admin.GET("/clicks", func(c *gin.Context) {
		clicks, err := trackingSvc.ListClicks(c.Request.Context(), 100, 0)
		if err != nil {
			logger.Error("failed to list clicks", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch clicks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": clicks})
	})

	admin.GET("/stats", func(c *gin.Context) {
		appointments, err := bookingSvc.Stats(c.Request.Context())
		if err != nil {
			logger.Error("failed to load stats", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
			return
		}

		clicks, err := trackingSvc.ClickStats(c.Request.Context())
		if err != nil {
			logger.Error("failed to load stats", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
			return
		}

		subscribers, err := newsletterSvc.Count(c.Request.Context())
		if err != nil {
			logger.Error("failed to load stats", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"appointments": appointments,
				"clicks":       clicks,
				"subscribers":  subscribers,
			},
		})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
