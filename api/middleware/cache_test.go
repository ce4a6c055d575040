package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/internal/services/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCachedRouter(t *testing.T, enabled bool) (*gin.Engine, *int, *cache.MemoryCache) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := cache.NewMemoryCache(cache.Options{})
	t.Cleanup(store.Stop)

	calls := 0
	router := gin.New()
	router.Use(CacheMiddleware(CacheConfig{
		Cache:      store,
		DefaultTTL: time.Minute,
		Enabled:    enabled,
	}))
	router.GET("/api/v1/episodes", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"calls": calls})
	})
	router.GET("/api/v1/missing", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusNotFound, gin.H{"error": "nope"})
	})
	return router, &calls, store
}

func doGet(router http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCacheMiddleware_HitAfterMiss(t *testing.T) {
	router, calls, _ := setupCachedRouter(t, true)

	first := doGet(router, "/api/v1/episodes?topic=Leadership", nil)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := doGet(router, "/api/v1/episodes?topic=Leadership", nil)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Contains(t, second.Header().Get("Content-Type"), "application/json")
	assert.NotEmpty(t, second.Header().Get("ETag"))
	assert.Equal(t, 1, *calls)

	notModified := doGet(router, "/api/v1/episodes?topic=Leadership", map[string]string{
		"If-None-Match": second.Header().Get("ETag"),
	})
	assert.Equal(t, http.StatusNotModified, notModified.Code)

	doGet(router, "/api/v1/episodes?topic=Culture", nil)
	assert.Equal(t, 2, *calls, "different query is a different key")
}

func TestCacheMiddleware_Bypass(t *testing.T) {
	router, calls, _ := setupCachedRouter(t, true)

	doGet(router, "/api/v1/episodes", nil)
	w := doGet(router, "/api/v1/episodes", map[string]string{"Cache-Control": "no-cache"})
	assert.Equal(t, "BYPASS", w.Header().Get("X-Cache"))
	assert.Equal(t, 2, *calls)
}

func TestCacheMiddleware_SkipsErrorsAndDisabled(t *testing.T) {
	router, calls, store := setupCachedRouter(t, true)
	doGet(router, "/api/v1/missing", nil)
	doGet(router, "/api/v1/missing", nil)
	assert.Equal(t, 2, *calls)
	assert.Equal(t, 0, store.Stats().Entries)

	disabled, disabledCalls, _ := setupCachedRouter(t, false)
	doGet(disabled, "/api/v1/episodes", nil)
	w := doGet(disabled, "/api/v1/episodes", nil)
	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.Equal(t, 2, *disabledCalls)
}

func TestCacheKey(t *testing.T) {
	a := httptest.NewRequest(http.MethodGet, "/api/v1/episodes?sort=oldest&q=go", nil)
	b := httptest.NewRequest(http.MethodGet, "/api/v1/episodes?q=go&sort=oldest", nil)
	assert.Equal(t, CacheKey(a), CacheKey(b))
	assert.Equal(t, "http:/api/v1/episodes?q=go&sort=oldest", CacheKey(a))

	plain := httptest.NewRequest(http.MethodGet, "/api/v1/episodes", nil)
	assert.Equal(t, "http:/api/v1/episodes", CacheKey(plain))
}

func TestCacheKey_SearchTextCannotCollide(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"separator in search", "/api/v1/episodes?search=a%3Atopic%3DLeadership", "/api/v1/episodes?search=a&topic=Leadership"},
		{"ampersand in search", "/api/v1/episodes?search=a%26topic%3Dall", "/api/v1/episodes?search=a&topic=all"},
		{"repeated key", "/api/v1/episodes?search=a&search=b", "/api/v1/episodes?search=a%26search%3Db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := httptest.NewRequest(http.MethodGet, tt.a, nil)
			b := httptest.NewRequest(http.MethodGet, tt.b, nil)
			assert.NotEqual(t, CacheKey(a), CacheKey(b))
		})
	}
}

func TestCacheMiddleware_DistinctQueriesDoNotShareEntries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := cache.NewMemoryCache(cache.Options{})
	t.Cleanup(store.Stop)

	router := gin.New()
	router.Use(CacheMiddleware(CacheConfig{Cache: store, DefaultTTL: time.Minute, Enabled: true}))
	router.GET("/api/v1/episodes", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"search": c.Query("search"), "topic": c.Query("topic")})
	})

	first := doGet(router, "/api/v1/episodes?search=a%3Atopic%3DLeadership", nil)
	require.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := doGet(router, "/api/v1/episodes?search=a&topic=Leadership", nil)
	assert.Equal(t, "MISS", second.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"search":"a","topic":"Leadership"}`, second.Body.String())
}

func TestTTLFor(t *testing.T) {
	cfg := CacheConfig{
		DefaultTTL: time.Minute,
		TTLByPath: map[string]time.Duration{
			"/api/v1/episodes":        10 * time.Minute,
			"/api/v1/episodes/latest": 2 * time.Minute,
		},
	}
	require.Equal(t, 2*time.Minute, ttlFor(cfg, "/api/v1/episodes/latest"))
	assert.Equal(t, 10*time.Minute, ttlFor(cfg, "/api/v1/episodes/abc"))
	assert.Equal(t, time.Minute, ttlFor(cfg, "/api/v1/stats"))
}

func TestInvalidatePaths(t *testing.T) {
	router, calls, store := setupCachedRouter(t, true)

	doGet(router, "/api/v1/episodes", nil)
	doGet(router, "/api/v1/episodes?sort=oldest", nil)
	require.Equal(t, 2, *calls)

	removed := InvalidatePaths(context.Background(), store, SyncedPaths...)
	assert.Equal(t, 2, removed)

	w := doGet(router, "/api/v1/episodes", nil)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, 3, *calls)

	assert.Zero(t, InvalidatePaths(context.Background(), nil, SyncedPaths...))
}
