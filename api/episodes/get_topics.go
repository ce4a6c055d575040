package episodes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
)

// GetTopics returns the distinct topics across all episodes
// @Summary List topics
// @Tags episodes
// @Produce json
// @Success 200 {object} types.TopicsResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/episodes/topics [get]
func GetTopics(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		topics, err := deps.Episodes.Topics(c.Request.Context())
		if err != nil {
			types.SendError(c, err, "Failed to fetch topics")
			return
		}
		c.JSON(http.StatusOK, types.TopicsResponse{Topics: topics})
	}
}
