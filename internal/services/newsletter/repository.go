package newsletter

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

var _ SubscriberRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("subscriber", email)
		}
		return nil, fmt.Errorf("getting subscriber: %w", err)
	}
	return &sub, nil
}

func (r *Repository) Create(ctx context.Context, sub *models.NewsletterSubscriber) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.AlreadyExists("subscriber", "Email already subscribed")
		}
		return fmt.Errorf("creating subscriber: %w", err)
	}
	return nil
}

func (r *Repository) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.NewsletterSubscriber{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return fmt.Errorf("updating subscriber: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("subscriber", id)
	}
	return nil
}

func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.NewsletterSubscriber{}).
		Where("active = ?", true).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting subscribers: %w", err)
	}
	return count, nil
}
