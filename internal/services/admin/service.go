package admin

import (
	"context"
	"log/slog"

	"github.com/killallgit/practitioners-pod/internal/models"
)

// Counter is any source that can report a row count
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// MessageCounter counts contact messages by status
type MessageCounter interface {
	CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error)
}

// ApplicationSource lists and counts guest applications
type ApplicationSource interface {
	Counter
	Recent(ctx context.Context, limit int) ([]models.GuestApplication, error)
}

// SubscriberCounter counts active newsletter subscribers
type SubscriberCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

// Dashboard is the admin overview
type Dashboard struct {
	Applications       int64                     `json:"applications"`
	Guests             int64                     `json:"guests"`
	Episodes           int64                     `json:"episodes"`
	NewMessages        int64                     `json:"new_messages"`
	Subscribers        int64                     `json:"subscribers"`
	RecentApplications []models.GuestApplication `json:"recent_applications"`
}

type Service struct {
	applications ApplicationSource
	guests       Counter
	episodes     Counter
	messages     MessageCounter
	subscribers  SubscriberCounter
	recentLimit  int
}

func NewService(applications ApplicationSource, guests, episodes Counter, messages MessageCounter, subscribers SubscriberCounter, recentLimit int) *Service {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &Service{
		applications: applications,
		guests:       guests,
		episodes:     episodes,
		messages:     messages,
		subscribers:  subscribers,
		recentLimit:  recentLimit,
	}
}

// Dashboard gathers the overview. Each figure fails independently and falls
// back to zero so one broken table never blanks the whole page.
func (s *Service) Dashboard(ctx context.Context) *Dashboard {
	d := &Dashboard{
		Applications: s.count(ctx, "applications", s.applications.Count),
		Guests:       s.count(ctx, "guests", s.guests.Count),
		Episodes:     s.count(ctx, "episodes", s.episodes.Count),
		NewMessages: s.count(ctx, "messages", func(ctx context.Context) (int64, error) {
			return s.messages.CountByStatus(ctx, models.MessageStatusNew)
		}),
		Subscribers: s.count(ctx, "subscribers", s.subscribers.CountActive),
	}

	recent, err := s.applications.Recent(ctx, s.recentLimit)
	if err != nil {
		slog.Warn("dashboard: recent applications unavailable", "error", err)
		recent = []models.GuestApplication{}
	}
	d.RecentApplications = recent
	return d
}

func (s *Service) count(ctx context.Context, name string, fn func(context.Context) (int64, error)) int64 {
	n, err := fn(ctx)
	if err != nil {
		slog.Warn("dashboard: count unavailable", "figure", name, "error", err)
		return 0
	}
	return n
}
