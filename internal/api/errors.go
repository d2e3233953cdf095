package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Amecrec/ADIA/internal/api/shared"
	"github.com/Amecrec/ADIA/internal/domain"
	"github.com/Amecrec/ADIA/internal/generation"
	"github.com/Amecrec/ADIA/internal/service"
	"github.com/Amecrec/ADIA/internal/service/auth"
	"github.com/Amecrec/ADIA/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors. A cross-owner access surfaces as not-found, so it
	// lands here too and never reveals that the record exists.
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrMaterialNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, generation.ErrInvalidRequest),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrEmptyBundle),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Upstream provider failures
	case errors.Is(err, generation.ErrProviderTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrProviderUnavailable),
		errors.Is(err, generation.ErrProviderRejected):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrMaterialNotFound):
		return "Material not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, service.ErrEmptyBundle):
		return "Bundle has no primary document"

	case errors.Is(err, generation.ErrInvalidRequest):
		// Validation reasons are stable rule identifiers, safe to expose.
		var vErr *generation.ValidationError
		if errors.As(err, &vErr) {
			return "Invalid generation request: " + strings.Join(vErr.Reasons, "; ")
		}
		return "Invalid generation request"

	case errors.Is(err, generation.ErrProviderTimeout):
		return "Generation timed out"

	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrProviderUnavailable),
		errors.Is(err, generation.ErrProviderRejected):
		return "Material generation failed"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and safe message and
// writes the response, logging the underlying error. An empty userMessage
// falls back to the mapped safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// SanitizeValidationError turns a struct-tag validation error into a
// user-friendly message without exposing internals.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
