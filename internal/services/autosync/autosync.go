// Package autosync runs the YouTube episode sync on a fixed interval.
package autosync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/killallgit/practitioners-pod/internal/services/episodes"
)

// Syncer is the episode sync the service drives
type Syncer interface {
	SyncFromSource(ctx context.Context) (*episodes.SyncResult, error)
}

// Service periodically syncs episodes from the channel
type Service struct {
	syncer   Syncer
	interval time.Duration
	onSynced func(ctx context.Context, result *episodes.SyncResult)

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService creates a sync service. onSynced, when set, runs after every
// successful sync.
func NewService(syncer Syncer, interval time.Duration, onSynced func(context.Context, *episodes.SyncResult)) *Service {
	return &Service{
		syncer:   syncer,
		interval: interval,
		onSynced: onSynced,
	}
}

// Start runs one sync immediately, then one per interval until ctx is done
// or Stop is called.
func (s *Service) Start(ctx context.Context) {
	if s.interval <= 0 || s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.RunOnce(ctx)
		for {
			select {
			case <-ticker.C:
				s.RunOnce(ctx)
			case <-ctx.Done():
				slog.Info("episode autosync stopped")
				return
			}
		}
	}()

	slog.Info("episode autosync started", "interval", s.interval)
}

// Stop cancels the loop and waits for an in-flight sync to return
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// RunOnce performs a single sync. Failures are logged, never returned.
func (s *Service) RunOnce(ctx context.Context) {
	result, err := s.syncer.SyncFromSource(ctx)
	if err != nil && ctx.Err() == nil {
		slog.Warn("episode autosync failed", "error", err)
	}
	// partial runs still report what they wrote
	if result != nil && s.onSynced != nil {
		s.onSynced(ctx, result)
	}
}
