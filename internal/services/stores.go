package services

import (
	"context"

	"github.com/Madina2067/LinguaLink/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store interfaces consumed by the services. The repository package
// implements them against MongoDB; tests substitute in-memory fakes.

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.User, error)
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	RemoveFriendEdge(ctx context.Context, userID, friendID primitive.ObjectID) error
	FindByAnyInterest(ctx context.Context, interests []string, exclude []primitive.ObjectID) ([]models.User, error)
	FindByLanguageOrLocation(ctx context.Context, language, location string, exclude []primitive.ObjectID) ([]models.User, error)
	FindExcluding(ctx context.Context, exclude []primitive.ObjectID) ([]models.User, error)
}

type FriendRequestStore interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error)
	GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error)
	GetRequestByPair(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error)
	UpdateRequestStatus(ctx context.Context, id primitive.ObjectID, status string) error
	DeleteRequest(ctx context.Context, id primitive.ObjectID) error
	GetRequestsByRecipientAndStatus(ctx context.Context, recipientID primitive.ObjectID, status string) ([]models.FriendRequest, error)
	GetRequestsBySenderAndStatus(ctx context.Context, senderID primitive.ObjectID, status string) ([]models.FriendRequest, error)
}

type MessageStore interface {
	SaveMessage(ctx context.Context, msg *models.Message) (*models.Message, error)
	GetConversation(ctx context.Context, userID, friendID primitive.ObjectID) ([]models.Message, error)
}
