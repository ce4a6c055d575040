package episodes

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
)

// RegisterRoutes registers episode routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/episodes - Directory listing with search, topic and sort
	router.GET("", GetAll(deps))

	// GET /api/v1/episodes/topics - Distinct topics
	router.GET("/topics", GetTopics(deps))

	// GET /api/v1/episodes/latest - Most recent episodes
	router.GET("/latest", GetLatest(deps))

	// GET /api/v1/episodes/:youtubeId - Episode details with related episodes
	router.GET("/:youtubeId", GetByID(deps))
}
