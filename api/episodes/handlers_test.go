package episodes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func setupRouter(t *testing.T) (*gin.Engine, *database.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test"}}
	deps, err := types.NewDependencies(db, cfg, nil)
	require.NoError(t, err)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/episodes"), deps)
	return router, db
}

func seed(t *testing.T, db *database.DB) {
	t.Helper()
	guest := models.Guest{Name: "Priya Raman", Company: "Acme"}
	require.NoError(t, db.Create(&guest).Error)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	episodes := []models.Episode{
		{YouTubeID: "yt1", Title: "Scaling Teams", EpisodeNumber: 1, PublishedAt: base, Topics: []string{"Leadership"}},
		{YouTubeID: "yt2", Title: "Incident Reviews", EpisodeNumber: 2, PublishedAt: base.AddDate(0, 1, 0), Topics: []string{"Operations", "Leadership"}, GuestID: &guest.ID},
		{YouTubeID: "yt3", Title: "Hiring Well", EpisodeNumber: 3, PublishedAt: base.AddDate(0, 2, 0), Topics: []string{"Hiring"}},
	}
	for i := range episodes {
		require.NoError(t, db.Create(&episodes[i]).Error)
	}
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetAll(t *testing.T) {
	router, db := setupRouter(t)
	seed(t, db)

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedIDs    []string
		expectedSort   string
	}{
		{"defaults newest first", "/api/v1/episodes", http.StatusOK, []string{"yt3", "yt2", "yt1"}, "newest"},
		{"oldest", "/api/v1/episodes?sort=oldest", http.StatusOK, []string{"yt1", "yt2", "yt3"}, "oldest"},
		{"topic filter", "/api/v1/episodes?topic=Leadership", http.StatusOK, []string{"yt2", "yt1"}, "newest"},
		{"topic is case sensitive", "/api/v1/episodes?topic=leadership", http.StatusOK, []string{}, "newest"},
		{"search matches guest name", "/api/v1/episodes?search=PRIYA", http.StatusOK, []string{"yt2"}, "newest"},
		{"views alias", "/api/v1/episodes?sort=views", http.StatusOK, []string{"yt3", "yt2", "yt1"}, "episode_number_desc"},
		{"invalid sort", "/api/v1/episodes?sort=random", http.StatusBadRequest, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, tt.target)
			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedIDs == nil {
				return
			}

			var resp types.DirectoryResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			ids := make([]string, 0, len(resp.Episodes))
			for _, e := range resp.Episodes {
				ids = append(ids, e.YouTubeID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
			assert.Equal(t, len(tt.expectedIDs), resp.Count)
			assert.Equal(t, 3, resp.Total)
			assert.Equal(t, []string{"Hiring", "Leadership", "Operations"}, resp.Topics)
			assert.Equal(t, tt.expectedSort, resp.Query.Sort)
		})
	}
}

func TestGetAll_Empty(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "/api/v1/episodes")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.DirectoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Episodes)
	assert.Empty(t, resp.Topics)
	assert.Equal(t, "all", resp.Query.Topic)
}

func TestGetTopicsAndLatest(t *testing.T) {
	router, db := setupRouter(t)
	seed(t, db)

	w := get(router, "/api/v1/episodes/topics")
	require.Equal(t, http.StatusOK, w.Code)
	var topics types.TopicsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &topics))
	assert.Equal(t, []string{"Hiring", "Leadership", "Operations"}, topics.Topics)

	w = get(router, "/api/v1/episodes/latest?limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	var latest types.EpisodesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &latest))
	require.Len(t, latest.Episodes, 2)
	assert.Equal(t, "yt3", latest.Episodes[0].YouTubeID)
	assert.Equal(t, "yt2", latest.Episodes[1].YouTubeID)
	require.NotNil(t, latest.Episodes[1].Guest)
	assert.Equal(t, "Priya Raman", latest.Episodes[1].Guest.Name)
}

func TestGetByID(t *testing.T) {
	router, db := setupRouter(t)
	seed(t, db)

	w := get(router, "/api/v1/episodes/yt1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.EpisodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Scaling Teams", resp.Episode.Title)
	require.Len(t, resp.Related, 1)
	assert.Equal(t, "yt2", resp.Related[0].YouTubeID)

	w = get(router, "/api/v1/episodes/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "episode not found")
}
