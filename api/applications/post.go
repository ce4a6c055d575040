package applications

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
)

// RegisterRoutes registers the guest application route
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Post(deps))
}

// Post stores a guest application
// @Summary Apply to be a guest
// @Description Each email address may apply once
// @Tags forms
// @Accept json
// @Produce json
// @Param request body types.ApplicationRequest true "Application"
// @Success 201 {object} types.SubmitResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Failure 429 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/applications [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ApplicationRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		app := req.ToModel()
		if err := deps.Applications.Submit(c.Request.Context(), app); err != nil {
			types.SendError(c, err, "Failed to submit application")
			return
		}

		types.SendCreated(c, types.SubmitResponse{Success: true, ID: app.ID, UUID: app.UUID})
	}
}
