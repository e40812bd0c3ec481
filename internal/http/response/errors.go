package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/voyagehub/travel-bookings/internal/domain"
	"github.com/voyagehub/travel-bookings/pkg/logger"
)

// ErrorResponse is the structured JSON error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Common error codes
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeRateLimit         = "RATE_LIMIT_EXCEEDED"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeExpiredToken      = "EXPIRED_TOKEN"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeInvalidTransition = "INVALID_TRANSITION"
)

// WriteJSON writes a success payload
func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// WriteError writes a structured JSON error response
func WriteError(w http.ResponseWriter, statusCode int, message string, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errResp := ErrorResponse{
		Error: message,
		Code:  code,
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// FromError maps a service failure onto the transport. Unrecognized errors
// are reported generically so store internals never leak to clients.
func FromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
	case errors.Is(err, domain.ErrNoToken):
		WriteError(w, http.StatusUnauthorized, err.Error(), CodeUnauthorized)
	case errors.Is(err, domain.ErrTokenExpired):
		WriteError(w, http.StatusUnauthorized, err.Error(), CodeExpiredToken)
	case errors.Is(err, domain.ErrInvalidToken):
		WriteError(w, http.StatusUnauthorized, err.Error(), CodeInvalidToken)
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, err.Error(), CodeUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		WriteError(w, http.StatusForbidden, err.Error(), CodeForbidden)
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), CodeNotFound)
	case errors.Is(err, domain.ErrEmailTaken):
		WriteError(w, http.StatusConflict, err.Error(), CodeEmailExists)
	case errors.Is(err, domain.ErrInvalidTransition):
		WriteError(w, http.StatusConflict, err.Error(), CodeInvalidTransition)
	default:
		WriteError(w, http.StatusInternalServerError, "internal server error", CodeInternalError)
	}
}

// Convenience helpers
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message, CodeForbidden)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimit)
}
