package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
)

// RegisterRoutes registers admin routes. The caller attaches the auth guard
// to router.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/dashboard", GetDashboard(deps))
	router.GET("/applications", GetApplications(deps))
	router.PUT("/applications/:id/status", PutApplicationStatus(deps))
	router.GET("/messages", GetMessages(deps))
	router.POST("/sync", PostSync(deps))
}
