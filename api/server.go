package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
	"github.com/killallgit/practitioners-pod/internal/services/cache"
	"github.com/killallgit/practitioners-pod/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	config             *config.Config
	responseCache      *cache.MemoryCache
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, deps *types.Dependencies) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	readTimeout := durationOr(cfg.Server.ReadTimeout, 30*time.Second)
	writeTimeout := durationOr(cfg.Server.WriteTimeout, 30*time.Second)
	maxHeaderBytes := cfg.Server.MaxHeaderBytes
	if maxHeaderBytes <= 0 {
		maxHeaderBytes = 1 << 20 // 1 MB
	}

	return &Server{
		engine:       engine,
		config:       cfg,
		dependencies: deps,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:        engine,
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: maxHeaderBytes,
		},
	}
}

func durationOr(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	if s.dependencies == nil {
		return fmt.Errorf("server dependencies are required")
	}

	s.setupCache()
	s.setupMiddleware()
	return s.setupRoutes()
}

// setupCache creates the response cache when enabled and hands it to handlers
func (s *Server) setupCache() {
	if !s.config.Cache.Enabled || s.dependencies.Cache != nil {
		return
	}
	mem := s.config.Cache.Memory
	s.responseCache = cache.NewMemoryCache(cache.Options{
		MaxEntries:      mem.MaxEntries,
		DefaultTTL:      mem.DefaultTTL,
		CleanupInterval: durationOr(mem.CleanupInterval, time.Minute),
	})
	s.dependencies.Cache = s.responseCache
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	if s.config.Security.EnableRecovery {
		s.engine.Use(Recovery())
	}

	if s.config.Logging.Requests {
		s.engine.Use(RequestLogger())
	}

	if s.config.Security.EnableCORS {
		s.engine.Use(CORS(s.config.Security))
	}

	maxBody := s.config.Server.MaxBodyBytes
	if maxBody <= 0 {
		s.engine.Use(RequestSizeLimit())
	} else {
		s.engine.Use(RequestSizeLimitWithSize(maxBody))
	}
}

// setupRoutes delegates to the main route registration
func (s *Server) setupRoutes() error {
	return RegisterRoutes(s.engine, s.dependencies, s.rateLimiters, s.cleanupStop, &s.cleanupInitialized)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() {
		if s.responseCache != nil {
			s.responseCache.Stop()
		}
		close(s.cleanupStop)
	})

	return s.httpServer.Shutdown(ctx)
}
