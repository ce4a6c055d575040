package contact

import (
	"context"
	"testing"

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

func TestService_SubmitAndList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	msg := &models.ContactMessage{
		Name:    "Alex",
		Email:   " alex@example.com ",
		Subject: "Sponsorship",
		Message: "We would love to sponsor an upcoming episode.",
		Status:  models.MessageStatusArchived,
	}
	require.NoError(t, svc.Submit(ctx, msg))
	assert.NotZero(t, msg.ID)
	assert.Equal(t, models.MessageStatusNew, msg.Status)
	assert.Equal(t, "alex@example.com", msg.Email)

	require.NoError(t, db.Create(&models.ContactMessage{Name: "B", Email: "b@example.com", Status: models.MessageStatusRead}).Error)

	list, total, err := svc.List(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	list, total, err = svc.List(ctx, "NEW", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Sponsorship", list[0].Subject)

	n, err := svc.CountByStatus(ctx, models.MessageStatusNew)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, _, err = svc.List(ctx, "spam", 1, 10)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
}
