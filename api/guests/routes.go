package guests

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
)

// RegisterRoutes registers guest routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", GetAll(deps))
	router.GET("/featured", GetFeatured(deps))
}
