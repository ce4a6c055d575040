package episodes

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/killallgit/practitioners-pod/internal/directory"
	"github.com/killallgit/practitioners-pod/internal/models"
	"github.com/killallgit/practitioners-pod/internal/services/youtube"
	apperrors "github.com/killallgit/practitioners-pod/pkg/errors"
)

// DirectoryResult is one evaluation of the episode directory
type DirectoryResult struct {
	Episodes []models.Episode
	Topics   []string
	Total    int
	Query    directory.Query
}

// Stats summarizes the catalogue for the home page
type Stats struct {
	Episodes   int64
	TotalViews int64
}

// SyncResult reports what a sync changed
type SyncResult struct {
	Fetched   int
	Created   int
	Updated   int
	Unchanged int
}

type Service struct {
	repo   EpisodeRepository
	source VideoSource

	// serializes syncs so episode numbering is read and assigned by one run at a time
	syncMu sync.Mutex
}

// NewService creates an episode service. source may be nil when sync is not configured.
func NewService(repo EpisodeRepository, source VideoSource) *Service {
	return &Service{repo: repo, source: source}
}

func (s *Service) ListAll(ctx context.Context) ([]models.Episode, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Latest(ctx context.Context, limit int) ([]models.Episode, error) {
	if limit <= 0 {
		return []models.Episode{}, nil
	}
	return s.repo.Latest(ctx, limit)
}

func (s *Service) GetByYouTubeID(ctx context.Context, youtubeID string) (*models.Episode, error) {
	if youtubeID == "" {
		return nil, apperrors.ValidationError("youtubeId", "is required")
	}
	return s.repo.GetByYouTubeID(ctx, youtubeID)
}

// Directory loads every episode and runs it through the directory engine
func (s *Service) Directory(ctx context.Context, q directory.Query) (*DirectoryResult, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if q.SortOrder == "" {
		q.SortOrder = directory.SortNewest
	}
	if q.SelectedTopic == "" {
		q.SelectedTopic = directory.AllTopics
	}

	engine := directory.NewEngine(ToDirectoryEpisodes(all))
	engine.SetSearchText(q.SearchText)
	engine.SetSelectedTopic(q.SelectedTopic)
	engine.SetSortOrder(q.SortOrder)

	return &DirectoryResult{
		Episodes: fromDirectory(engine.Results(), indexByYouTubeID(all)),
		Topics:   engine.Topics(),
		Total:    engine.Total(),
		Query:    engine.Query(),
	}, nil
}

// Topics returns the distinct topics across all episodes
func (s *Service) Topics(ctx context.Context) ([]string, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return directory.ComputeTopics(ToDirectoryEpisodes(all)), nil
}

// Related returns up to limit other episodes sharing a topic with episode
func (s *Service) Related(ctx context.Context, episode *models.Episode, limit int) ([]models.Episode, error) {
	if episode == nil || limit <= 0 || len(episode.Topics) == 0 {
		return []models.Episode{}, nil
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	related := directory.Related(ToDirectoryEpisodes(all), ToDirectoryEpisode(*episode), limit)
	return fromDirectory(related, indexByYouTubeID(all)), nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.repo.TotalViews(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{Episodes: count, TotalViews: views}, nil
}

// SourceMetrics returns the video source's request counters when it keeps them
func (s *Service) SourceMetrics() (map[string]int64, bool) {
	reporter, ok := s.source.(interface{ GetMetrics() map[string]int64 })
	if !ok {
		return nil, false
	}
	return reporter.GetMetrics(), true
}

// CanSync reports whether a video source is wired in
func (s *Service) CanSync() bool {
	return s.source != nil
}

// SyncFromSource upserts channel uploads by YouTube ID. New uploads are numbered
// after the current highest episode number, oldest first.
func (s *Service) SyncFromSource(ctx context.Context) (*SyncResult, error) {
	if s.source == nil {
		return nil, apperrors.NotConfigured("YouTube sync")
	}

	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	videos, err := s.source.ChannelVideos(ctx)
	if err != nil {
		return nil, apperrors.ExternalServiceError("youtube", err)
	}

	videos = slices.Clone(videos)
	slices.SortStableFunc(videos, func(a, b youtube.Video) int {
		return cmp.Compare(a.PublishedAt.UnixNano(), b.PublishedAt.UnixNano())
	})

	next, err := s.repo.MaxEpisodeNumber(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Fetched: len(videos)}
	seen := make(map[string]bool, len(videos))
	for _, v := range videos {
		if v.ID == "" || seen[v.ID] {
			continue
		}
		seen[v.ID] = true

		existing, err := s.repo.GetByYouTubeID(ctx, v.ID)
		switch {
		case apperrors.Is(err, apperrors.ErrCodeNotFound):
			next++
			if err := s.repo.Create(ctx, newEpisodeFromVideo(v, next)); err != nil {
				return result, fmt.Errorf("creating episode %s: %w", v.ID, err)
			}
			result.Created++
		case err != nil:
			return result, err
		case applyVideo(existing, v):
			if err := s.repo.Update(ctx, existing); err != nil {
				return result, fmt.Errorf("updating episode %s: %w", v.ID, err)
			}
			result.Updated++
		default:
			result.Unchanged++
		}
	}

	slog.Info("episode sync finished",
		"fetched", result.Fetched,
		"created", result.Created,
		"updated", result.Updated,
		"unchanged", result.Unchanged)
	return result, nil
}
