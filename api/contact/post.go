package contact

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
)

// RegisterRoutes registers the contact form route
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Post(deps))
}

// Post stores a contact form submission
// @Summary Send a contact message
// @Tags forms
// @Accept json
// @Produce json
// @Param request body types.ContactRequest true "Contact form"
// @Success 201 {object} types.SubmitResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 429 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/contact [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ContactRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		msg := req.ToModel()
		if err := deps.Contact.Submit(c.Request.Context(), msg); err != nil {
			types.SendError(c, err, "Failed to send message")
			return
		}

		types.SendCreated(c, types.SubmitResponse{Success: true, ID: msg.ID})
	}
}
