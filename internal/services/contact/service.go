package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/killallgit/practitioners-pod/internal/models"
	apperrors "github.com/killallgit/practitioners-pod/pkg/errors"
)

type Service struct {
	repo MessageRepository
}

func NewService(repo MessageRepository) *Service {
	return &Service{repo: repo}
}

// Submit stores a contact form message as new
func (s *Service) Submit(ctx context.Context, msg *models.ContactMessage) error {
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Status = models.MessageStatusNew
	if err := s.repo.Create(ctx, msg); err != nil {
		return apperrors.DatabaseError("insert", err)
	}
	slog.Info("contact message received", "id", msg.ID, "subject", msg.Subject)
	return nil
}

func (s *Service) List(ctx context.Context, status string, page, limit int) ([]models.ContactMessage, int64, error) {
	st := models.MessageStatus(strings.ToLower(strings.TrimSpace(status)))
	switch st {
	case "", models.MessageStatusNew, models.MessageStatusRead, models.MessageStatusArchived:
	default:
		return nil, 0, apperrors.ValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return s.repo.List(ctx, st, page, min(limit, 100))
}

func (s *Service) CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error) {
	return s.repo.CountByStatus(ctx, status)
}
