package applications

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

var _ ApplicationRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, app *models.GuestApplication) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("creating application: %w", err)
	}
	return nil
}

func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.GuestApplication{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking application email: %w", err)
	}
	return count > 0, nil
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*models.GuestApplication, error) {
	var app models.GuestApplication
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application", id)
		}
		return nil, fmt.Errorf("getting application: %w", err)
	}
	return &app, nil
}

func (r *Repository) Recent(ctx context.Context, limit int) ([]models.GuestApplication, error) {
	var apps []models.GuestApplication
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("getting recent applications: %w", err)
	}
	return apps, nil
}

func (r *Repository) List(ctx context.Context, status models.ApplicationStatus, page, limit int) ([]models.GuestApplication, int64, error) {
	var apps []models.GuestApplication
	var total int64

	query := r.db.WithContext(ctx).Model(&models.GuestApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting applications: %w", err)
	}

	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&apps).Error; err != nil {
		return nil, 0, fmt.Errorf("listing applications: %w", err)
	}

	return apps, total, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	result := r.db.WithContext(ctx).Model(&models.GuestApplication{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("updating application status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("application", id)
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.GuestApplication{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting applications: %w", err)
	}
	return count, nil
}
