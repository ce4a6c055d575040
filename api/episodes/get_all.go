package episodes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
	"github.com/killallgit/practitioners-pod/internal/directory"
)

// GetAll returns the episode directory
// @Summary List episodes
// @Description Filter episodes by free text and topic, then sort them
// @Tags episodes
// @Produce json
// @Param search query string false "Case-insensitive match on title, description and guest name"
// @Param topic query string false "Exact topic, or 'all'" default(all)
// @Param sort query string false "Sort order" Enums(newest, oldest, episode_number_desc) default(newest)
// @Success 200 {object} types.DirectoryResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/episodes [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := directory.ParseSortOrder(c.Query("sort"))
		if !ok {
			types.SendBadRequest(c, "Invalid sort order: use newest, oldest or episode_number_desc")
			return
		}

		query := directory.Query{
			SearchText:    c.Query("search"),
			SelectedTopic: c.DefaultQuery("topic", directory.AllTopics),
			SortOrder:     order,
		}

		result, err := deps.Episodes.Directory(c.Request.Context(), query)
		if err != nil {
			types.SendError(c, err, "Failed to fetch episodes")
			return
		}

		c.JSON(http.StatusOK, types.DirectoryResponse{
			Episodes: result.Episodes,
			Topics:   result.Topics,
			Count:    len(result.Episodes),
			Total:    result.Total,
			Query: types.DirectoryQuery{
				Search: result.Query.SearchText,
				Topic:  result.Query.SelectedTopic,
				Sort:   string(result.Query.SortOrder),
			},
		})
	}
}
