package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/practitioners-pod/api/admin"
	"github.com/killallgit/practitioners-pod/api/applications"
	"github.com/killallgit/practitioners-pod/api/auth"
	"github.com/killallgit/practitioners-pod/api/contact"
	"github.com/killallgit/practitioners-pod/api/episodes"
	"github.com/killallgit/practitioners-pod/api/guests"
	"github.com/killallgit/practitioners-pod/api/health"
	"github.com/killallgit/practitioners-pod/api/middleware"
	"github.com/killallgit/practitioners-pod/api/newsletter"
	"github.com/killallgit/practitioners-pod/api/stats"
	"github.com/killallgit/practitioners-pod/api/types"
	"github.com/killallgit/practitioners-pod/api/version"
	_ "github.com/killallgit/practitioners-pod/docs/swagger"
	"github.com/killallgit/practitioners-pod/pkg/config"
	apperrors "github.com/killallgit/practitioners-pod/pkg/errors"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil || deps.Episodes == nil || deps.Auth == nil {
		return fmt.Errorf("route dependencies are incomplete")
	}

	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	limit := func(group string) gin.HandlerFunc {
		if !cfg.RateLimiting.Enabled {
			return func(c *gin.Context) { c.Next() }
		}
		return PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, group, cfg.RateLimiting.PerMinute(group))
	}

	responseCache := middleware.CacheMiddleware(middleware.CacheConfig{
		Cache:      deps.Cache,
		Enabled:    cfg.Cache.Enabled && deps.Cache != nil,
		DefaultTTL: cfg.Cache.Memory.DefaultTTL,
		TTLByPath: map[string]time.Duration{
			"/api/v1/episodes": cfg.Cache.API.EpisodeTTL,
			"/api/v1/guests":   cfg.Cache.API.GuestTTL,
			"/api/v1/stats":    cfg.Cache.API.StatsTTL,
		},
	})

	// Public listings: default rate limit, cached
	episodes.RegisterRoutes(v1.Group("/episodes", limit("default"), responseCache), deps)
	guests.RegisterRoutes(v1.Group("/guests", limit("default"), responseCache), deps)
	stats.RegisterRoutes(v1.Group("/stats", limit("default"), responseCache), deps)

	// Public forms: stricter rate limit
	contact.RegisterRoutes(v1.Group("/contact", limit("forms")), deps)
	newsletter.RegisterRoutes(v1.Group("/newsletter", limit("forms")), deps)
	applications.RegisterRoutes(v1.Group("/applications", limit("forms")), deps)

	// Admin: bearer token
	authHandler := auth.NewHandler(deps.Auth)
	adminGroup := v1.Group("/admin", limit("admin"), authHandler.AuthMiddleware())
	adminGroup.GET("/me", authHandler.Me)
	admin.RegisterRoutes(adminGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Status:  types.StatusError,
			Message: "The requested endpoint was not found",
			Error:   string(apperrors.ErrCodeNotFound),
			Details: gin.H{"path": c.Request.URL.Path},
		})
	}
}
