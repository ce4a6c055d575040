package newsletter

import (
	"context"

	"github.com/killallgit/practitioners-pod/internal/models"
)

// SubscriberRepository defines the interface for newsletter persistence
type SubscriberRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	Create(ctx context.Context, sub *models.NewsletterSubscriber) error
	SetActive(ctx context.Context, id uint, active bool) error
	CountActive(ctx context.Context) (int64, error)
}
