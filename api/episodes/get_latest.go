package episodes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
)

// GetLatest returns the most recent episodes
// @Summary Latest episodes
// @Tags episodes
// @Produce json
// @Param limit query int false "Number of episodes (1-50)" default(6)
// @Success 200 {object} types.EpisodesResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/episodes/latest [get]
func GetLatest(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := types.QueryInt(c, "limit", deps.Site().LatestEpisodes, 1, 50)

		list, err := deps.Episodes.Latest(c.Request.Context(), limit)
		if err != nil {
			types.SendError(c, err, "Failed to fetch episodes")
			return
		}
		c.JSON(http.StatusOK, types.EpisodesResponse{Episodes: list, Count: len(list)})
	}
}
