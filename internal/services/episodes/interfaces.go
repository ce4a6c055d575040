package episodes

import (
	"context"

	"github.com/killallgit/practitioners-pod/internal/models"
	"github.com/killallgit/practitioners-pod/internal/services/youtube"
)

// EpisodeRepository defines the interface for episode data persistence
type EpisodeRepository interface {
	// Read operations
	ListAll(ctx context.Context) ([]models.Episode, error)
	Latest(ctx context.Context, limit int) ([]models.Episode, error)
	GetByYouTubeID(ctx context.Context, youtubeID string) (*models.Episode, error)
	Count(ctx context.Context) (int64, error)
	TotalViews(ctx context.Context) (int64, error)
	MaxEpisodeNumber(ctx context.Context) (int, error)

	// Write operations
	Create(ctx context.Context, episode *models.Episode) error
	Update(ctx context.Context, episode *models.Episode) error
}

// VideoSource supplies the channel uploads episodes are synced from
type VideoSource interface {
	ChannelVideos(ctx context.Context) ([]youtube.Video, error)
}
