package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/Madina2067/LinguaLink/internal/models"
	"github.com/Madina2067/LinguaLink/internal/services"
	jwtutil "github.com/Madina2067/LinguaLink/pkg/jwt"
	"github.com/Madina2067/LinguaLink/pkg/logger"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WSMessage is the wire format of the in-house websocket relay. The relay
// carries text and typing indicators between friends; calls and rich media
// go through the external provider.
type WSMessage struct {
	Type       string `json:"type"` // "text", "typing", "status"
	ReceiverID string `json:"receiver_id"`
	SenderID   string `json:"sender_id,omitempty"`
	Text       string `json:"text,omitempty"`
	Typing     bool   `json:"typing,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// WSChatHandler relays messages between connected clients and persists
// text messages through the chat service.
type WSChatHandler struct {
	Service   *services.ChatService
	JWTSecret string

	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewWSChatHandler(service *services.ChatService, jwtSecret string) *WSChatHandler {
	return &WSChatHandler{
		Service:   service,
		JWTSecret: jwtSecret,
		clients:   make(map[string]*websocket.Conn),
	}
}

func (h *WSChatHandler) broadcastStatus(userID, status string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conn := range h.clients {
		_ = conn.WriteJSON(map[string]interface{}{
			"type":   "status",
			"userId": userID,
			"status": status, // "online" or "offline"
		})
	}
}

// ServeWS upgrades the connection. Browsers cannot set headers on
// websocket dials, so the session token arrives as a query parameter.
func (h *WSChatHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		logger.Log.WithError(err).Warn("WebSocket auth failed")
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[userID] = conn
	h.mu.Unlock()
	h.broadcastStatus(userID, "online")
	logger.Log.WithField("userID", userID).Info("WebSocket connected")

	defer func() {
		h.mu.Lock()
		delete(h.clients, userID)
		h.mu.Unlock()
		h.broadcastStatus(userID, "offline")
		conn.Close()
		logger.Log.WithField("userID", userID).Info("WebSocket disconnected")
	}()

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break // client disconnected
		}

		switch msg.Type {
		case "typing":
			h.mu.Lock()
			if receiverConn, ok := h.clients[msg.ReceiverID]; ok {
				_ = receiverConn.WriteJSON(map[string]interface{}{
					"type":      "typing",
					"sender_id": userID,
					"typing":    msg.Typing,
				})
			}
			h.mu.Unlock()

		case "", "text":
			senderObjID, err := primitive.ObjectIDFromHex(userID)
			if err != nil {
				continue
			}
			receiverObjID, err := primitive.ObjectIDFromHex(msg.ReceiverID)
			if err != nil {
				continue
			}

			newMsg := &models.Message{
				SenderID:   senderObjID,
				ReceiverID: receiverObjID,
				Type:       "text",
				Text:       msg.Text,
			}
			saved, err := h.Service.SaveMessage(r.Context(), newMsg)
			if err != nil {
				// non-friends or storage failure: tell only the sender
				_ = conn.WriteJSON(map[string]interface{}{
					"type":    "error",
					"message": err.Error(),
				})
				continue
			}

			response := map[string]interface{}{
				"type":        "text",
				"id":          saved.ID.Hex(),
				"sender_id":   userID,
				"receiver_id": msg.ReceiverID,
				"text":        msg.Text,
				"created_at":  saved.CreatedAt.Format(time.RFC3339),
			}
			h.mu.Lock()
			if receiverConn, ok := h.clients[msg.ReceiverID]; ok {
				_ = receiverConn.WriteJSON(response)
			}
			_ = conn.WriteJSON(response)
			h.mu.Unlock()
		}
	}
}
