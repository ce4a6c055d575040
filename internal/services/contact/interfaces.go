package contact

import (
	"context"

	"github.com/killallgit/practitioners-pod/internal/models"
)

// MessageRepository defines the interface for contact message persistence
type MessageRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context, status models.MessageStatus, page, limit int) ([]models.ContactMessage, int64, error)
	CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error)
}
