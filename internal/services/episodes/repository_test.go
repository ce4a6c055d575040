package episodes

import (
	"context"
	"testing"
	"time"

	"github.com/killallgit/practitioners-pod/internal/models"
	apperrors "github.com/killallgit/practitioners-pod/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedEpisodes(t *testing.T, db *gorm.DB) {
	guest := models.Guest{Name: "Dana Ortiz", Company: "Acme"}
	require.NoError(t, db.Create(&guest).Error)

	episodes := []models.Episode{
		{YouTubeID: "a", Title: "Scaling Systems", EpisodeNumber: 1, PublishedAt: base, ViewCount: 100, Topics: []string{"DevOps"}},
		{YouTubeID: "b", Title: "Team Culture", EpisodeNumber: 2, PublishedAt: base.Add(24 * time.Hour), ViewCount: 250, Topics: []string{"Leadership"}, GuestID: &guest.ID},
		{YouTubeID: "c", Title: "Pipelines", EpisodeNumber: 3, PublishedAt: base.Add(48 * time.Hour), Topics: []string{"DevOps", "CI"}},
	}
	for i := range episodes {
		require.NoError(t, db.Create(&episodes[i]).Error)
	}
}

func TestRepository_ListAll(t *testing.T) {
	db := setupTestDB(t)
	seedEpisodes(t, db)
	repo := NewRepository(db)

	list, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].YouTubeID)
	assert.Equal(t, "a", list[2].YouTubeID)

	require.NotNil(t, list[1].Guest)
	assert.Equal(t, "Dana Ortiz", list[1].Guest.Name)
}

func TestRepository_Latest(t *testing.T) {
	db := setupTestDB(t)
	seedEpisodes(t, db)
	repo := NewRepository(db)

	list, err := repo.Latest(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].YouTubeID)
	assert.Equal(t, "b", list[1].YouTubeID)
}

func TestRepository_GetByYouTubeID(t *testing.T) {
	db := setupTestDB(t)
	seedEpisodes(t, db)
	repo := NewRepository(db)

	ep, err := repo.GetByYouTubeID(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "Team Culture", ep.Title)
	assert.Equal(t, []string{"Leadership"}, []string(ep.Topics))

	_, err = repo.GetByYouTubeID(context.Background(), "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestRepository_Aggregates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	n, err := repo.MaxEpisodeNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	views, err := repo.TotalViews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), views)

	seedEpisodes(t, db)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	views, err = repo.TotalViews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(350), views)

	n, err = repo.MaxEpisodeNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRepository_CreateAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ep := &models.Episode{YouTubeID: "x", Title: "Old", EpisodeNumber: 1, PublishedAt: base}
	require.NoError(t, repo.Create(ctx, ep))
	assert.NotZero(t, ep.ID)

	ep.Title = "New"
	ep.ViewCount = 42
	require.NoError(t, repo.Update(ctx, ep))

	stored, err := repo.GetByYouTubeID(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "New", stored.Title)
	assert.Equal(t, int64(42), stored.ViewCount)

	dup := &models.Episode{YouTubeID: "x", Title: "Dup", EpisodeNumber: 2, PublishedAt: base}
	err = repo.Create(ctx, dup)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeAlreadyExists))
}
