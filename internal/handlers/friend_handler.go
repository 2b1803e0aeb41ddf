package handlers

import (
	"net/http"

	"github.com/Madina2067/LinguaLink/internal/httputil"
	"github.com/Madina2067/LinguaLink/internal/services"
	"github.com/Madina2067/LinguaLink/pkg/logger"
	"github.com/Madina2067/LinguaLink/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendHandler manages HTTP endpoints for the friend-request lifecycle
// and recommendations.
type FriendHandler struct {
	Friends         *services.FriendService
	Users           *services.UserService
	Recommendations *services.RecommendationService
}

func NewFriendHandler(friends *services.FriendService, users *services.UserService, recommendations *services.RecommendationService) *FriendHandler {
	return &FriendHandler{
		Friends:         friends,
		Users:           users,
		Recommendations: recommendations,
	}
}

// actorID extracts the authenticated user's id, or writes 401.
func actorID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return primitive.NilObjectID, false
	}
	return id, true
}

// RecommendedUsersHandler returns the tiered partner suggestions.
func (h *FriendHandler) RecommendedUsersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	user, err := h.Users.GetUser(r.Context(), userID.Hex())
	if err != nil {
		httputil.RespondError(w, err)
		return
	}

	recommended, err := h.Recommendations.Recommend(r.Context(), user)
	if err != nil {
		logger.Log.WithField("userID", userID.Hex()).WithError(err).Error("Failed to compute recommendations")
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, recommended)
}

// MyFriendsHandler returns the authenticated user's friends.
func (h *FriendHandler) MyFriendsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	friends, err := h.Friends.Friends(r.Context(), userID)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, friends)
}

// SendFriendRequestHandler sends a request to the user in the path.
func (h *FriendHandler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	senderID, ok := actorID(w, r)
	if !ok {
		return
	}

	recipientID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	request, err := h.Friends.SendRequest(r.Context(), senderID, recipientID)
	if err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"sender":    senderID.Hex(),
			"recipient": recipientID.Hex(),
		}).WithError(err).Warn("Failed to send friend request")
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, request)
}

// AcceptFriendRequestHandler accepts the request in the path.
func (h *FriendHandler) AcceptFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	requestID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}

	request, err := h.Friends.AcceptRequest(r.Context(), requestID, userID)
	if err != nil {
		logger.Log.WithField("requestID", requestID.Hex()).WithError(err).Warn("Failed to accept friend request")
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, request)
}

// RejectFriendRequestHandler rejects (deletes) the request in the path.
func (h *FriendHandler) RejectFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	requestID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}

	if err := h.Friends.RejectRequest(r.Context(), requestID, userID); err != nil {
		logger.Log.WithField("requestID", requestID.Hex()).WithError(err).Warn("Failed to reject friend request")
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "friend request rejected"})
}

// FriendRequestsHandler returns incoming pending requests together with
// acceptance notices for requests the user sent.
func (h *FriendHandler) FriendRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	incoming, err := h.Friends.ListIncoming(r.Context(), userID)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}

	accepted, err := h.Friends.ListAccepted(r.Context(), userID)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"incomingRequests": incoming,
		"acceptedRequests": accepted,
	})
}

// OutgoingRequestsHandler returns pending requests the user has sent.
func (h *FriendHandler) OutgoingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	outgoing, err := h.Friends.ListOutgoing(r.Context(), userID)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, outgoing)
}

// RemoveFriendHandler unfriends the user in the path.
func (h *FriendHandler) RemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	friendID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	if err := h.Friends.RemoveFriend(r.Context(), userID, friendID); err != nil {
		httputil.RespondError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "friend removed"})
}
