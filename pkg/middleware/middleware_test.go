package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtutil "github.com/Madina2067/LinguaLink/pkg/jwt"
	"github.com/Madina2067/LinguaLink/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authProtected(t *testing.T, secret string) http.Handler {
	t.Helper()
	logger.InitLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetUserFromContext(r.Context())
		require.NotNil(t, claims)
		w.Write([]byte(claims.UserID))
	})
	return AuthMiddleware(secret)(next)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, err := jwtutil.GenerateToken("user-1", "a@b.co", "secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	authProtected(t, "secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	authProtected(t, "secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "token-without-bearer-prefix")
	rec := httptest.NewRecorder()

	authProtected(t, "secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token, err := jwtutil.GenerateToken("user-1", "a@b.co", "other", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	authProtected(t, "secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(RequestIDContextKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RequestIDMiddleware(next).ServeHTTP(rec, req)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddleware_PropagatesClientID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-id-1")
	rec := httptest.NewRecorder()
	RequestIDMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, "client-id-1", rec.Header().Get("X-Request-ID"))
}
