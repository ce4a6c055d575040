package episodes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
	"github.com/killallgit/practitioners-pod/internal/models"
)

// GetByID returns one episode and the episodes related to it by topic
// @Summary Get episode
// @Tags episodes
// @Produce json
// @Param youtubeId path string true "YouTube video ID"
// @Success 200 {object} types.EpisodeResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/episodes/{youtubeId} [get]
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		episode, err := deps.Episodes.GetByYouTubeID(ctx, c.Param("youtubeId"))
		if err != nil {
			types.SendError(c, err, "Failed to fetch episode")
			return
		}

		// related episodes are decoration; a failure still serves the episode
		related, err := deps.Episodes.Related(ctx, episode, deps.Site().RelatedEpisodes)
		if err != nil {
			slog.Warn("failed to load related episodes", "youtube_id", episode.YouTubeID, "error", err)
			related = []models.Episode{}
		}

		c.JSON(http.StatusOK, types.EpisodeResponse{Episode: *episode, Related: related})
	}
}
