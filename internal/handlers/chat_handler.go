package handlers

import (
	"net/http"

	"github.com/Madina2067/LinguaLink/internal/httputil"
	"github.com/Madina2067/LinguaLink/internal/services"
	"github.com/Madina2067/LinguaLink/pkg/chattoken"
	"github.com/Madina2067/LinguaLink/pkg/logger"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatHandler serves the chat-provider token and conversation history.
type ChatHandler struct {
	Service *services.ChatService
	Tokens  *chattoken.Issuer
}

func NewChatHandler(service *services.ChatService, tokens *chattoken.Issuer) *ChatHandler {
	return &ChatHandler{Service: service, Tokens: tokens}
}

// ChatTokenHandler issues a provider token for the authenticated user.
func (h *ChatHandler) ChatTokenHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	token, err := h.Tokens.IssueToken(userID.Hex())
	if err != nil {
		logger.Log.WithField("userID", userID.Hex()).WithError(err).Error("Failed to issue chat token")
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"token":  token,
		"apiKey": h.Tokens.APIKey(),
	})
}

// ChatHistoryHandler returns the conversation with the friend in the path.
func (h *ChatHandler) ChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	friendID, err := primitive.ObjectIDFromHex(mux.Vars(r)["friendId"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	messages, err := h.Service.GetHistory(r.Context(), userID, friendID)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, messages)
}
