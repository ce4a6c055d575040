package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
	"github.com/killallgit/practitioners-pod/internal/database"
	"github.com/killallgit/practitioners-pod/internal/models"
	"github.com/killallgit/practitioners-pod/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		Auth:        config.AuthConfig{JWTSecret: "test-secret", Issuer: "podsite"},
		Cache: config.CacheConfig{
			Enabled: true,
			Memory:  config.MemoryCacheConfig{DefaultTTL: time.Minute, MaxEntries: 100},
			API:     config.APICacheConfig{EpisodeTTL: time.Minute},
		},
		RateLimiting: config.RateLimitConfig{
			Enabled:   true,
			Endpoints: map[string]int{"default": 600, "forms": 4, "admin": 600},
		},
		Security: config.SecurityConfig{EnableRecovery: true},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *database.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	deps, err := types.NewDependencies(db, cfg, nil)
	require.NoError(t, err)

	srv := NewServer(cfg, deps)
	require.NoError(t, srv.Initialize())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, db
}

func serve(srv *Server, method, target string, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func TestServer_InitializeRequiresDependencies(t *testing.T) {
	srv := NewServer(testConfig(), nil)
	assert.Error(t, srv.Initialize())
}

func TestServer_Addr(t *testing.T) {
	srv := NewServer(testConfig(), nil)
	assert.Equal(t, "127.0.0.1:8080", srv.Addr())
}

func TestServer_EpisodeListingIsCached(t *testing.T) {
	srv, db := newTestServer(t, testConfig())
	require.NoError(t, db.Create(&models.Episode{
		YouTubeID:     "abc123",
		Title:         "Shipping Weekly",
		EpisodeNumber: 1,
		PublishedAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Topics:        []string{"Delivery"},
	}).Error)

	first := serve(srv, http.MethodGet, "/api/v1/episodes?sort=newest", "", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Contains(t, first.Body.String(), "Shipping Weekly")

	second := serve(srv, http.MethodGet, "/api/v1/episodes?sort=newest", "", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestServer_AdminRequiresToken(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	w := serve(srv, http.MethodGet, "/api/v1/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")

	token, _, err := srv.dependencies.Auth.IssueToken("host@example.com", time.Hour)
	require.NoError(t, err)

	w = serve(srv, http.MethodGet, "/api/v1/admin/dashboard", "", map[string]string{
		"Authorization": "Bearer " + token,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dashboard")
}

func TestServer_NoRoute(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	w := serve(srv, http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "The requested endpoint was not found")
}

func TestServer_FormsRateLimited(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	// 4 per minute leaves a burst of one
	w := serve(srv, http.MethodPost, "/api/v1/newsletter/subscribe", `{"email":"a@example.com"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(srv, http.MethodPost, "/api/v1/newsletter/subscribe", `{"email":"b@example.com"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Listings use their own bucket
	w = serve(srv, http.MethodGet, "/api/v1/stats", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_HealthReportsCache(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	w := serve(srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cache"`)
}

func TestServer_ShutdownIsIdempotent(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	ctx := context.Background()
	assert.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, srv.Shutdown(ctx))
}
