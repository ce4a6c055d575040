package guests

import (
	"context"

	"github.com/killallgit/practitioners-pod/internal/models"
)

type Service struct {
	repo GuestRepository
}

func NewService(repo GuestRepository) *Service {
	return &Service{repo: repo}
}

// List returns every guest, newest first, with their episodes
func (s *Service) List(ctx context.Context) ([]models.Guest, error) {
	return s.repo.List(ctx)
}

// Featured returns up to limit guests who have appeared on the show
func (s *Service) Featured(ctx context.Context, limit int) ([]models.Guest, error) {
	if limit <= 0 {
		return []models.Guest{}, nil
	}
	return s.repo.Featured(ctx, limit)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Guest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
