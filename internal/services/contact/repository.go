package contact

import (
	"context"
	"fmt"

	"github.com/killallgit/practitioners-pod/internal/models"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

var _ MessageRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("creating contact message: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, status models.MessageStatus, page, limit int) ([]models.ContactMessage, int64, error) {
	var msgs []models.ContactMessage
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting contact messages: %w", err)
	}
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&msgs).Error; err != nil {
		return nil, 0, fmt.Errorf("listing contact messages: %w", err)
	}
	return msgs, total, nil
}

func (r *Repository) CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting contact messages: %w", err)
	}
	return count, nil
}
