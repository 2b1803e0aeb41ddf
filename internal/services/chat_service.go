package services

import (
	"context"

	"github.com/Madina2067/LinguaLink/internal/apperrors"
	"github.com/Madina2067/LinguaLink/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatService persists direct messages and serves conversation history.
// Messaging transport itself belongs to the external chat provider; this
// is the in-house history kept alongside it.
type ChatService struct {
	messages MessageStore
	users    UserStore
}

func NewChatService(messages MessageStore, users UserStore) *ChatService {
	return &ChatService{messages: messages, users: users}
}

// SaveMessage persists a message after checking the two users are friends.
func (s *ChatService) SaveMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	if err := s.requireFriendship(ctx, msg.SenderID, msg.ReceiverID); err != nil {
		return nil, err
	}
	return s.messages.SaveMessage(ctx, msg)
}

// GetHistory returns the ordered conversation between a user and a friend.
func (s *ChatService) GetHistory(ctx context.Context, userID, friendID primitive.ObjectID) ([]models.Message, error) {
	if err := s.requireFriendship(ctx, userID, friendID); err != nil {
		return nil, err
	}
	return s.messages.GetConversation(ctx, userID, friendID)
}

func (s *ChatService) requireFriendship(ctx context.Context, userID, otherID primitive.ObjectID) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasFriend(otherID) {
		return apperrors.Authorization("you can only chat with your friends")
	}
	return nil
}
