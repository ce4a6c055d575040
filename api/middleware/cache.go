package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/internal/services/cache"
)

// KeyPrefix starts every response cache key; invalidation works on it
const KeyPrefix = "http:"

// SyncedPaths are the cached listings an episode sync can change
var SyncedPaths = []string{"/api/v1/episodes", "/api/v1/stats", "/api/v1/guests"}

// InvalidatePaths drops every cached response under each path, query
// variants included. A nil cache is a no-op.
func InvalidatePaths(ctx context.Context, c cache.Cache, paths ...string) int {
	if c == nil {
		return 0
	}
	removed := 0
	for _, path := range paths {
		n, err := c.DeletePrefix(ctx, KeyPrefix+path)
		if err != nil {
			slog.Warn("failed to invalidate cached responses", "path", path, "error", err)
			continue
		}
		removed += n
	}
	return removed
}

// CacheConfig holds configuration for cache middleware
type CacheConfig struct {
	Cache      cache.Cache
	DefaultTTL time.Duration
	TTLByPath  map[string]time.Duration // longest matching prefix wins
	Enabled    bool
}

// responseWriter captures response for caching
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// cachedResponse is what gets stored per key
type cachedResponse struct {
	Status      int       `json:"status"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
	CachedAt    time.Time `json:"cached_at"`
	ETag        string    `json:"etag"`
}

// CacheMiddleware serves GET responses from the cache and stores 200s on a miss
func CacheMiddleware(config CacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.Enabled || config.Cache == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		if shouldBypassCache(c.Request) {
			c.Header("X-Cache", "BYPASS")
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := CacheKey(c.Request)

		if data, found := config.Cache.Get(ctx, key); found {
			var resp cachedResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				c.Header("X-Cache", "HIT")
				c.Header("ETag", resp.ETag)
				c.Header("Age", strconv.Itoa(int(time.Since(resp.CachedAt).Seconds())))
				if match := c.GetHeader("If-None-Match"); match != "" && match == resp.ETag {
					c.AbortWithStatus(http.StatusNotModified)
					return
				}
				c.Data(resp.Status, resp.ContentType, resp.Body)
				c.Abort()
				return
			}
			slog.Warn("dropping unreadable cache entry", "key", key)
			_ = config.Cache.Delete(ctx, key)
		}

		c.Header("X-Cache", "MISS")
		w := &responseWriter{ResponseWriter: c.Writer, body: bytes.NewBuffer(nil)}
		c.Writer = w

		c.Next()

		if w.Status() != http.StatusOK || w.body.Len() == 0 {
			return
		}

		resp := cachedResponse{
			Status:      http.StatusOK,
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
			CachedAt:    time.Now(),
			ETag:        generateETag(w.body.Bytes()),
		}
		data, err := json.Marshal(resp)
		if err != nil {
			return
		}
		if err := config.Cache.Set(ctx, key, data, ttlFor(config, c.Request.URL.Path)); err != nil {
			slog.Warn("failed to store cached response", "key", key, "error", err)
		}
	}
}

func ttlFor(config CacheConfig, path string) time.Duration {
	ttl := config.DefaultTTL
	best := -1
	for prefix, pathTTL := range config.TTLByPath {
		if strings.HasPrefix(path, prefix) && len(prefix) > best {
			ttl, best = pathTTL, len(prefix)
		}
	}
	return ttl
}

// shouldBypassCache checks if cache should be bypassed based on request headers
func shouldBypassCache(req *http.Request) bool {
	for _, directive := range strings.Split(strings.ToLower(req.Header.Get("Cache-Control")), ",") {
		switch strings.TrimSpace(directive) {
		case "no-cache", "no-store", "max-age=0":
			return true
		}
	}
	return req.Header.Get("Pragma") == "no-cache"
}

// CacheKey creates a unique key for the request from its path and sorted query
func CacheKey(req *http.Request) string {
	key := KeyPrefix + req.URL.Path
	if req.URL.RawQuery != "" {
		// Encode sorts by key and escapes every value
		key += "?" + req.URL.Query().Encode()
	}
	return key
}

// generateETag creates an ETag for the response body
func generateETag(body []byte) string {
	hash := sha256.Sum256(body)
	return fmt.Sprintf(`"%s"`, hex.EncodeToString(hash[:16]))
}
