package guests

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/practitioners-pod/internal/models"
	apperrors "github.com/killallgit/practitioners-pod/pkg/errors"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

var _ GuestRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func episodesNewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("published_at DESC")
}

func (r *Repository) List(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := r.db.WithContext(ctx).
		Preload("Episodes", episodesNewestFirst).
		Order("created_at DESC").
		Order("id DESC").
		Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("listing guests: %w", err)
	}
	return guests, nil
}

// Featured returns guests that have appeared on at least one episode
func (r *Repository) Featured(ctx context.Context, limit int) ([]models.Guest, error) {
	var guests []models.Guest
	appeared := r.db.Model(&models.Episode{}).Select("guest_id").Where("guest_id IS NOT NULL")
	if err := r.db.WithContext(ctx).
		Preload("Episodes", episodesNewestFirst).
		Where("id IN (?)", appeared).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("listing featured guests: %w", err)
	}
	return guests, nil
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).
		Preload("Episodes", episodesNewestFirst).
		First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("guest", id)
		}
		return nil, fmt.Errorf("getting guest: %w", err)
	}
	return &guest, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Guest{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting guests: %w", err)
	}
	return count, nil
}
