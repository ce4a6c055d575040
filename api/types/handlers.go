package types

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/killallgit/practitioners-pod/pkg/errors"
)

// Handler utility functions to reduce duplication across handlers

// ParseUintParam extracts and parses a URL parameter as uint
// Returns the parsed value and sends error response if parsing fails
func ParseUintParam(c *gin.Context, paramName string) (uint, bool) {
	paramStr := c.Param(paramName)
	value, err := strconv.ParseUint(paramStr, 10, 32)
	if err != nil || value == 0 {
		SendBadRequest(c, "Invalid "+paramName)
		return 0, false
	}
	return uint(value), true
}

// QueryInt reads an integer query parameter, falling back to def when it is
// missing, malformed or outside [lo, hi]
func QueryInt(c *gin.Context, name string, def, lo, hi int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return def
	}
	return n
}

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target any) bool {
	UseJSONFieldNames()
	if err := c.ShouldBindJSON(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Status:  StatusError,
				Message: "Request body too large",
				Error:   string(apperrors.ErrCodeInvalidInput),
			})
			return false
		}
		field, message := ValidationMessage(err)
		resp := ErrorResponse{
			Status:  StatusError,
			Message: message,
			Error:   string(apperrors.ErrCodeValidation),
		}
		if field != "" {
			resp.Details = gin.H{"field": field}
		}
		c.JSON(http.StatusBadRequest, resp)
		return false
	}
	return true
}

// SendError maps err onto a response. AppErrors below 500 keep their message;
// everything else is logged and answered with fallback.
func SendError(c *gin.Context, err error, fallback string) {
	appErr, ok := apperrors.As(err)
	if ok && appErr.Public() {
		c.JSON(appErr.GetHTTPCode(), ErrorResponse{
			Status:  StatusError,
			Message: appErr.Message,
			Error:   string(appErr.Code),
		})
		return
	}

	status := http.StatusInternalServerError
	code := apperrors.ErrCodeInternal
	if ok {
		status, code = appErr.GetHTTPCode(), appErr.Code
	}
	slog.Error(fallback, "path", c.FullPath(), "error", err)
	c.JSON(status, ErrorResponse{
		Status:  StatusError,
		Message: fallback,
		Error:   string(code),
	})
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Status: StatusError, Message: message, Error: string(apperrors.ErrCodeInvalidInput)})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Status: StatusError, Message: message, Error: string(apperrors.ErrCodeNotFound)})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// SendCreated sends a standardized created response with data
func SendCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
