package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
)

// RegisterRoutes registers the stats route
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
}

// Get returns the public catalogue figures
// @Summary Site statistics
// @Tags stats
// @Produce json
// @Success 200 {object} types.StatsResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/stats [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		episodeStats, err := deps.Episodes.Stats(ctx)
		if err != nil {
			types.SendError(c, err, "Failed to fetch stats")
			return
		}
		guestCount, err := deps.Guests.Count(ctx)
		if err != nil {
			types.SendError(c, err, "Failed to fetch stats")
			return
		}

		c.JSON(http.StatusOK, types.StatsResponse{
			Episodes:   episodeStats.Episodes,
			Guests:     guestCount,
			TotalViews: episodeStats.TotalViews,
		})
	}
}
