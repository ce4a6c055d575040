package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	buildinfo "github.com/killallgit/practitioners-pod/pkg/version"
)

// Response is the body of GET /
type Response struct {
	buildinfo.Info
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Get handles version requests
// @Summary API version
// @Tags meta
// @Produce json
// @Success 200 {object} version.Response
// @Router / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Info:        buildinfo.Get(),
			Description: "Episodes, guests and submissions for The Practitioners Pod",
			Status:      "running",
		})
	}
}
