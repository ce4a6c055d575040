package newsletter

import (
	"context"
	"log/slog"
	"strings"

	"github.com/killallgit/practitioners-pod/internal/models"
	apperrors "github.com/killallgit/practitioners-pod/pkg/errors"
)

// Outcome describes what Subscribe did
type Outcome string

const (
	OutcomeCreated     Outcome = "created"
	OutcomeReactivated Outcome = "reactivated"
)

type Service struct {
	repo SubscriberRepository
}

func NewService(repo SubscriberRepository) *Service {
	return &Service{repo: repo}
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Subscribe signs an address up. An active address is rejected; an inactive
// one is switched back on.
func (s *Service) Subscribe(ctx context.Context, email string, name string) (Outcome, error) {
	email = normalize(email)

	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.Active:
		return "", apperrors.AlreadyExists("subscriber", "Email already subscribed")
	case err == nil:
		if err := s.repo.SetActive(ctx, existing.ID, true); err != nil {
			return "", apperrors.DatabaseError("update", err)
		}
		slog.Info("newsletter subscription reactivated", "id", existing.ID)
		return OutcomeReactivated, nil
	case !apperrors.Is(err, apperrors.ErrCodeNotFound):
		return "", apperrors.DatabaseError("lookup", err)
	}

	sub := &models.NewsletterSubscriber{Email: email, Active: true}
	if n := strings.TrimSpace(name); n != "" {
		sub.Name = &n
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		// lost a race with a concurrent signup for the same address
		if apperrors.Is(err, apperrors.ErrCodeAlreadyExists) {
			return "", err
		}
		return "", apperrors.DatabaseError("insert", err)
	}
	slog.Info("newsletter subscription created", "id", sub.ID)
	return OutcomeCreated, nil
}

// Unsubscribe marks an address inactive. Unsubscribing twice is not an error.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	existing, err := s.repo.GetByEmail(ctx, normalize(email))
	if err != nil {
		return err
	}
	if !existing.Active {
		return nil
	}
	if err := s.repo.SetActive(ctx, existing.ID, false); err != nil {
		return apperrors.DatabaseError("update", err)
	}
	slog.Info("newsletter subscription cancelled", "id", existing.ID)
	return nil
}

func (s *Service) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx)
}
