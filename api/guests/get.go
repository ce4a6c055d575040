package guests

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
)

// GetAll returns every guest with their episodes
// @Summary List guests
// @Tags guests
// @Produce json
// @Success 200 {object} types.GuestsResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/guests [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := deps.Guests.List(c.Request.Context())
		if err != nil {
			types.SendError(c, err, "Failed to fetch guests")
			return
		}
		c.JSON(http.StatusOK, types.GuestsResponse{Guests: list, Count: len(list)})
	}
}

// GetFeatured returns guests who have appeared on at least one episode
// @Summary Featured guests
// @Tags guests
// @Produce json
// @Param limit query int false "Number of guests (1-50)" default(6)
// @Success 200 {object} types.GuestsResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/guests/featured [get]
func GetFeatured(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := types.QueryInt(c, "limit", deps.Site().FeaturedGuests, 1, 50)

		list, err := deps.Guests.Featured(c.Request.Context(), limit)
		if err != nil {
			types.SendError(c, err, "Failed to fetch guests")
			return
		}
		c.JSON(http.StatusOK, types.GuestsResponse{Guests: list, Count: len(list)})
	}
}
