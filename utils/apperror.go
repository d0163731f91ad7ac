package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorCode string

const (
	ErrMissingField     ErrorCode = "MISSING_FIELD"
	ErrInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrInvalidFormat    ErrorCode = "INVALID_FORMAT"
	ErrValidationError  ErrorCode = "VALIDATION_ERROR"
	ErrResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	ErrResourceExists   ErrorCode = "RESOURCE_EXISTS"
	ErrDatabaseError    ErrorCode = "DATABASE_ERROR"
	ErrUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrSessionInvalid   ErrorCode = "SESSION_INVALID"
)

// AppError carries an error code and the HTTP status it should be
// reported with. Every failure in the computation pipeline surfaces
// as one of these; nothing is silently downgraded.
type AppError struct {
	Message string
	Status  int
	Code    ErrorCode
	// Data holds extra payload for errors that carry a business
	// result, e.g. the validation breakdown of a rejected plan.
	Data interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(message string, status int, code ErrorCode) *AppError {
	return &AppError{Message: message, Status: status, Code: code}
}

// RespondError writes the standard error envelope for any error.
// Unrecognized errors are reported as a storage failure, never leaked verbatim.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		body := gin.H{
			"success": false,
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		}
		if appErr.Data != nil {
			body["data"] = appErr.Data
		}
		c.JSON(appErr.Status, body)
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    ErrDatabaseError,
			"message": "Internal server error",
		},
	})
}
