package guests

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

// seed creates two guests; only the second has episodes.
func seed(t *testing.T, db *gorm.DB) (quiet, featured models.Guest) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	quiet = models.Guest{Name: "Quiet Guest", Expertise: []string{"Testing"}}
	require.NoError(t, db.Create(&quiet).Error)
	featured = models.Guest{Name: "Dana Ortiz", Company: "Acme", Expertise: []string{"SRE", "Leadership"}}
	require.NoError(t, db.Create(&featured).Error)

	for i, title := range []string{"Older", "Newer"} {
		ep := models.Episode{
			YouTubeID:     title,
			Title:         title,
			EpisodeNumber: i + 1,
			PublishedAt:   base.Add(time.Duration(i) * 24 * time.Hour),
			GuestID:       &featured.ID,
		}
		require.NoError(t, db.Create(&ep).Error)
	}
	return quiet, featured
}

func TestService_List(t *testing.T) {
	db := setupTestDB(t)
	quiet, featured := seed(t, db)
	svc := NewService(NewRepository(db))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, featured.ID, list[0].ID)
	require.Len(t, list[0].Episodes, 2)
	assert.Equal(t, "Newer", list[0].Episodes[0].Title)
	assert.Equal(t, []string{"SRE", "Leadership"}, []string(list[0].Expertise))

	assert.Equal(t, quiet.ID, list[1].ID)
	assert.Empty(t, list[1].Episodes)
}

func TestService_Featured(t *testing.T) {
	db := setupTestDB(t)
	_, featured := seed(t, db)
	svc := NewService(NewRepository(db))

	list, err := svc.Featured(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, featured.ID, list[0].ID)

	list, err = svc.Featured(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_GetAndCount(t *testing.T) {
	db := setupTestDB(t)
	_, featured := seed(t, db)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	g, err := svc.Get(ctx, featured.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana Ortiz", g.Name)

	_, err = svc.Get(ctx, 999)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
