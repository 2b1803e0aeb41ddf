package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Madina2067/LinguaLink/internal/config"
	"github.com/Madina2067/LinguaLink/internal/httputil"
	"github.com/Madina2067/LinguaLink/internal/services"
	jwtutil "github.com/Madina2067/LinguaLink/pkg/jwt"
	"github.com/Madina2067/LinguaLink/pkg/logger"
	"github.com/Madina2067/LinguaLink/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHandler manages signup, login and onboarding endpoints.
type AuthHandler struct {
	Service *services.UserService
	Config  *config.Config
}

func NewAuthHandler(service *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Service: service, Config: cfg}
}

// SignupHandler registers a user and returns a session token.
func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var input services.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		logger.Log.WithError(err).Warn("Failed to decode signup request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.Signup(r.Context(), input)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to generate token after signup")
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// LoginHandler authenticates a user and returns a session token.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		logger.Log.WithError(err).Warn("Failed to decode login request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.Authenticate(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		// Bad credentials answer 401, not the taxonomy's 403.
		logger.Log.WithField("email", credentials.Email).Warn("Authentication failed")
		httputil.RespondJSON(w, http.StatusUnauthorized, map[string]string{"message": err.Error()})
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to generate token")
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// LogoutHandler acknowledges logout. Sessions are stateless JWTs; the
// client discards the token.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// OnboardHandler completes the authenticated user's profile.
func (h *AuthHandler) OnboardHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var input services.OnboardInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		logger.Log.WithError(err).Warn("Failed to decode onboarding request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.Onboard(r.Context(), userID, input)
	if err != nil {
		logger.Log.WithField("userID", claims.UserID).WithError(err).Warn("Onboarding failed")
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// MeHandler returns the authenticated user's profile.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Service.GetUser(r.Context(), claims.UserID)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}
