package applications

import (
	"context"

	"github.com/killallgit/practitioners-pod/internal/models"
)

// ApplicationRepository defines the interface for guest application persistence
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.GuestApplication) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, id uint) (*models.GuestApplication, error)
	Recent(ctx context.Context, limit int) ([]models.GuestApplication, error)
	List(ctx context.Context, status models.ApplicationStatus, page, limit int) ([]models.GuestApplication, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error
	Count(ctx context.Context) (int64, error)
}
