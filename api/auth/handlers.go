package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/practitioners-pod/api/types"
	"github.com/killallgit/practitioners-pod/internal/services/auth"
	apperrors "github.com/killallgit/practitioners-pod/pkg/errors"
)

// ClaimsKey is the gin context key holding *auth.Claims
const ClaimsKey = "claims"

// Handler guards admin routes with bearer tokens
type Handler struct {
	authService *auth.Service
}

// NewHandler creates a new auth handler
func NewHandler(authService *auth.Service) *Handler {
	return &Handler{authService: authService}
}

// MeResponse describes the authenticated admin
type MeResponse struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

// Me returns the admin identity from the token
// @Summary Get current admin
// @Description Returns the identity carried by the bearer token
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /api/v1/admin/me [get]
func (h *Handler) Me(c *gin.Context) {
	claims, ok := Claims(c)
	if !ok {
		unauthorized(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resp := MeResponse{Email: claims.Email, Role: claims.Role}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Unix()
	}
	c.JSON(http.StatusOK, resp)
}

// AuthMiddleware requires a valid admin bearer token
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			unauthorized(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := h.authService.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				unauthorized(c, http.StatusForbidden, "Access denied - admin role required")
			} else {
				unauthorized(c, http.StatusUnauthorized, "Invalid or expired token")
			}
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// Claims returns the claims stored by AuthMiddleware
func Claims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func unauthorized(c *gin.Context, status int, message string) {
	code := apperrors.ErrCodeUnauthorized
	if status == http.StatusForbidden {
		code = apperrors.ErrCodeForbidden
	}
	c.AbortWithStatusJSON(status, types.ErrorResponse{
		Status:  types.StatusError,
		Message: message,
		Error:   string(code),
	})
}
