package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Madina2067/LinguaLink/internal/apperrors"
	"github.com/Madina2067/LinguaLink/pkg/logger"
)

// RespondJSON writes v as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Log.WithError(err).Error("Failed to encode response body")
		}
	}
}

// RespondError maps a service error to its HTTP status. Errors outside the
// taxonomy are logged and surfaced as a generic 500 without internal detail.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Log.WithError(err).Error("Unexpected error")
		message = "internal server error"
	}
	RespondJSON(w, status, map[string]string{"message": message})
}

// StatusForError resolves the HTTP status for a service error.
func StatusForError(err error) int {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		authErr       *apperrors.AuthorizationError
		conflictErr   *apperrors.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &authErr):
		return http.StatusForbidden
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
