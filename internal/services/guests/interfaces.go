package guests

import (
	"context"

	"github.com/killallgit/practitioners-pod/internal/models"
)

// GuestRepository defines the interface for guest data persistence
type GuestRepository interface {
	List(ctx context.Context) ([]models.Guest, error)
	Featured(ctx context.Context, limit int) ([]models.Guest, error)
	GetByID(ctx context.Context, id uint) (*models.Guest, error)
	Count(ctx context.Context) (int64, error)
}
