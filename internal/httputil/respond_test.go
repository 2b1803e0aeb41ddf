package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Madina2067/LinguaLink/internal/apperrors"
	"github.com/Madina2067/LinguaLink/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.Validation("bad input"), http.StatusBadRequest},
		{apperrors.NotFound("missing"), http.StatusNotFound},
		{apperrors.Authorization("not yours"), http.StatusForbidden},
		{apperrors.Conflict("duplicate"), http.StatusConflict},
		{errors.New("storage exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusForError(tc.err), tc.err.Error())
	}
}

func TestRespondError_HidesInternalDetail(t *testing.T) {
	logger.InitLogger()

	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("connection string leaked"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection string")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestRespondError_SurfacesUserFacingMessage(t *testing.T) {
	logger.InitLogger()

	rec := httptest.NewRecorder()
	RespondError(rec, apperrors.Conflict("friend request already exists"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "friend request already exists")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
