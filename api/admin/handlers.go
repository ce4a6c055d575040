package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/middleware"
	"github.com/killallgit/practitioners-pod/api/types"
	apperrors "github.com/killallgit/practitioners-pod/pkg/errors"
)

// GetDashboard returns the admin overview
// @Summary Admin dashboard
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} types.DashboardResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /api/v1/admin/dashboard [get]
func GetDashboard(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendSuccess(c, types.DashboardResponse{Dashboard: deps.Admin.Dashboard(c.Request.Context())})
	}
}

// GetApplications lists guest applications
// @Summary List guest applications
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "Review status" Enums(NEW, REVIEWING, ACCEPTED, DECLINED)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (1-100)" default(20)
// @Success 200 {object} types.ApplicationsResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /api/v1/admin/applications [get]
func GetApplications(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := types.QueryInt(c, "page", 1, 1, 1<<20)
		limit := types.QueryInt(c, "limit", 20, 1, 100)

		list, total, err := deps.Applications.List(c.Request.Context(), c.Query("status"), page, limit)
		if err != nil {
			types.SendError(c, err, "Failed to fetch applications")
			return
		}

		types.SendSuccess(c, types.ApplicationsResponse{
			Applications: list,
			Pagination:   types.Pagination{Page: page, Limit: limit, Total: total},
		})
	}
}

// PutApplicationStatus moves an application to a new review status
// @Summary Update application status
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param request body types.StatusUpdateRequest true "New status"
// @Success 200 {object} models.GuestApplication
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/admin/applications/{id}/status [put]
func PutApplicationStatus(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var req types.StatusUpdateRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		app, err := deps.Applications.UpdateStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			types.SendError(c, err, "Failed to update application")
			return
		}
		types.SendSuccess(c, app)
	}
}

// GetMessages lists contact messages
// @Summary List contact messages
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "Message status" Enums(new, read, archived)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (1-100)" default(20)
// @Success 200 {object} types.MessagesResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/admin/messages [get]
func GetMessages(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := types.QueryInt(c, "page", 1, 1, 1<<20)
		limit := types.QueryInt(c, "limit", 20, 1, 100)

		list, total, err := deps.Contact.List(c.Request.Context(), c.Query("status"), page, limit)
		if err != nil {
			types.SendError(c, err, "Failed to fetch messages")
			return
		}

		types.SendSuccess(c, types.MessagesResponse{
			Messages:   list,
			Pagination: types.Pagination{Page: page, Limit: limit, Total: total},
		})
	}
}

// PostSync pulls the channel uploads from YouTube into the episode table
// @Summary Sync episodes from YouTube
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} types.SyncResponse
// @Failure 502 {object} types.ErrorResponse
// @Failure 503 {object} types.ErrorResponse
// @Router /api/v1/admin/sync [post]
func PostSync(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		result, err := deps.Episodes.SyncFromSource(ctx)
		if result != nil {
			// a failed run may still have written episodes
			middleware.InvalidatePaths(ctx, deps.Cache, middleware.SyncedPaths...)
		}
		if err != nil {
			if appErr, ok := apperrors.As(err); ok && appErr.Code == apperrors.ErrCodeNotConfigured {
				c.JSON(appErr.GetHTTPCode(), types.ErrorResponse{
					Status:  types.StatusError,
					Message: appErr.Message,
					Error:   string(appErr.Code),
				})
				return
			}
			types.SendError(c, err, "Failed to sync episodes")
			return
		}

		types.SendSuccess(c, types.SyncResponse{
			Fetched:   result.Fetched,
			Created:   result.Created,
			Updated:   result.Updated,
			Unchanged: result.Unchanged,
		})
	}
}
