package applications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/killallgit/practitioners-pod/internal/models"
	apperrors "github.com/killallgit/practitioners-pod/pkg/errors"
)

// Recording formats a guest can choose
const (
	FormatVideo     = "video"
	FormatAudioOnly = "audio-only"
)

// MaxPageSize caps admin listing pages
const MaxPageSize = 100

type Service struct {
	repo ApplicationRepository
}

func NewService(repo ApplicationRepository) *Service {
	return &Service{repo: repo}
}

// Submit stores a new application. Each email may apply only once.
func (s *Service) Submit(ctx context.Context, app *models.GuestApplication) error {
	app.Email = strings.ToLower(strings.TrimSpace(app.Email))
	if app.RecordingFormat != FormatVideo && app.RecordingFormat != FormatAudioOnly {
		return apperrors.ValidationError("recordingFormat", "must be video or audio-only")
	}

	exists, err := s.repo.ExistsByEmail(ctx, app.Email)
	if err != nil {
		return apperrors.DatabaseError("lookup", err)
	}
	if exists {
		return apperrors.AlreadyExists("application", "An application with this email already exists")
	}

	app.Status = models.ApplicationStatusNew
	if err := s.repo.Create(ctx, app); err != nil {
		return apperrors.DatabaseError("insert", err)
	}

	slog.Info("guest application received", "id", app.ID, "uuid", app.UUID)
	return nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]models.GuestApplication, error) {
	if limit <= 0 {
		return []models.GuestApplication{}, nil
	}
	return s.repo.Recent(ctx, limit)
}

// List returns one page of applications, optionally filtered by status
func (s *Service) List(ctx context.Context, status string, page, limit int) ([]models.GuestApplication, int64, error) {
	st := models.ApplicationStatus(strings.ToUpper(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return nil, 0, apperrors.ValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	limit = min(limit, MaxPageSize)
	return s.repo.List(ctx, st, page, limit)
}

// UpdateStatus moves an application to a new review status
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) (*models.GuestApplication, error) {
	st := models.ApplicationStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !st.Valid() {
		return nil, apperrors.ValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	slog.Info("application status updated", "id", id, "status", st)
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
