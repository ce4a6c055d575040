package newsletter

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
)

// RegisterRoutes registers newsletter routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/subscribe", Subscribe(deps))
	router.POST("/unsubscribe", Unsubscribe(deps))
}

// Subscribe signs an email address up for the newsletter
// @Summary Subscribe to the newsletter
// @Description New addresses are created, inactive ones reactivated; an active address is a conflict
// @Tags forms
// @Accept json
// @Produce json
// @Param request body types.NewsletterRequest true "Subscriber"
// @Success 200 {object} types.NewsletterResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/newsletter/subscribe [post]
func Subscribe(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.NewsletterRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		outcome, err := deps.Newsletter.Subscribe(c.Request.Context(), req.Email, req.Name)
		if err != nil {
			types.SendError(c, err, "Failed to subscribe")
			return
		}

		types.SendSuccess(c, types.NewsletterResponse{Success: true, Outcome: string(outcome)})
	}
}

// Unsubscribe turns the newsletter off for an address
// @Summary Unsubscribe from the newsletter
// @Tags forms
// @Accept json
// @Produce json
// @Param request body types.NewsletterRequest true "Subscriber"
// @Success 200 {object} types.NewsletterResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/newsletter/unsubscribe [post]
func Unsubscribe(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.NewsletterRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := deps.Newsletter.Unsubscribe(c.Request.Context(), req.Email); err != nil {
			types.SendError(c, err, "Failed to unsubscribe")
			return
		}

		types.SendSuccess(c, types.NewsletterResponse{Success: true, Outcome: "unsubscribed"})
	}
}
