package api

import (
	"errors"
	"net/http"

	"penlog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Error codes returned in APIError payloads.
const (
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeEmailExists        = "ERR_EMAIL_EXISTS"
	ErrCodeAccountNotFound    = "ERR_ACCOUNT_NOT_FOUND"
	ErrCodeAccountDeactivated = "ERR_ACCOUNT_DEACTIVATED"
	ErrCodeAlreadyConfirmed   = "ERR_ALREADY_CONFIRMED"
	ErrCodeSessionExpired     = "ERR_SESSION_EXPIRED"

	ErrCodeConflict = "ERR_CONFLICT"
)

// APIError is the unified error response body.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse writes an APIError with the given status.
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden writes a 403 response.
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// InternalError writes a 500 response.
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// InvalidPayload writes the generic 400 for unparseable request bodies.
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}

// WriteServiceError maps a service-layer error onto an HTTP response.
// Anything outside the sentinel taxonomy is treated as an unexpected
// store failure and logged.
func WriteServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		BadRequest(c, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		BadRequest(c, ErrCodeInvalidCredentials, "invalid email or password")
	case errors.Is(err, service.ErrAlreadyConfirmed):
		BadRequest(c, ErrCodeAlreadyConfirmed, "account is already confirmed")
	case errors.Is(err, service.ErrAccountNotFound):
		NotFound(c, ErrCodeAccountNotFound, "account not found")
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, ErrCodeNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateAccount):
		ErrorResponse(c, http.StatusConflict, ErrCodeEmailExists, "email already registered")
	case errors.Is(err, service.ErrAlreadyExists):
		ErrorResponse(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, service.ErrAccountDeactivated):
		ErrorResponse(c, http.StatusForbidden, ErrCodeAccountDeactivated, "account is deactivated")
	case errors.Is(err, service.ErrForbidden):
		Forbidden(c, err.Error())
	default:
		logrus.WithError(err).Error("unexpected service error")
		InternalError(c, "internal server error")
	}
}
