package episodes

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/practitioners-pod/internal/models"
	apperrors "github.com/killallgit/practitioners-pod/pkg/errors"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// Ensure Repository implements EpisodeRepository interface
var _ EpisodeRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) newestFirst(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Guest").
		Order("published_at DESC").
		Order("episode_number DESC")
}

func (r *Repository) ListAll(ctx context.Context) ([]models.Episode, error) {
	var episodes []models.Episode
	if err := r.newestFirst(ctx).Find(&episodes).Error; err != nil {
		return nil, fmt.Errorf("listing episodes: %w", err)
	}
	return episodes, nil
}

func (r *Repository) Latest(ctx context.Context, limit int) ([]models.Episode, error) {
	var episodes []models.Episode
	if err := r.newestFirst(ctx).Limit(limit).Find(&episodes).Error; err != nil {
		return nil, fmt.Errorf("getting latest episodes: %w", err)
	}
	return episodes, nil
}

func (r *Repository) GetByYouTubeID(ctx context.Context, youtubeID string) (*models.Episode, error) {
	var episode models.Episode
	if err := r.db.WithContext(ctx).
		Preload("Guest").
		Where("youtube_id = ?", youtubeID).
		First(&episode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("episode", youtubeID)
		}
		return nil, fmt.Errorf("getting episode: %w", err)
	}
	return &episode, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Episode{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting episodes: %w", err)
	}
	return count, nil
}

func (r *Repository) TotalViews(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Episode{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("summing views: %w", err)
	}
	return total, nil
}

func (r *Repository) MaxEpisodeNumber(ctx context.Context) (int, error) {
	var n int
	// Unscoped so numbers of soft-deleted episodes are never reused
	if err := r.db.WithContext(ctx).Unscoped().Model(&models.Episode{}).
		Select("COALESCE(MAX(episode_number), 0)").
		Scan(&n).Error; err != nil {
		return 0, fmt.Errorf("getting max episode number: %w", err)
	}
	return n, nil
}

func (r *Repository) Create(ctx context.Context, episode *models.Episode) error {
	if err := r.db.WithContext(ctx).Create(episode).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.AlreadyExists("episode", fmt.Sprintf("episode %s already exists", episode.YouTubeID))
		}
		return fmt.Errorf("creating episode: %w", err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, episode *models.Episode) error {
	result := r.db.WithContext(ctx).Omit("Guest").Save(episode)
	if result.Error != nil {
		return fmt.Errorf("updating episode: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("episode", episode.YouTubeID)
	}
	return nil
}
