package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Madina2067/LinguaLink/internal/apperrors"
	"github.com/Madina2067/LinguaLink/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FriendRequestRepository handles the friend_requests collection.
type FriendRequestRepository struct {
	collection *mongo.Collection
}

func NewFriendRequestRepository(db *mongo.Database) *FriendRequestRepository {
	return &FriendRequestRepository{
		collection: db.Collection("friend_requests"),
	}
}

// CreateRequest inserts a pending request. The unique index on pair_key
// turns a concurrent duplicate into a ConflictError instead of a second
// live request.
func (r *FriendRequestRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	req.Status = models.RequestStatusPending
	req.PairKey = models.PairKey(req.SenderID, req.RecipientID)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("friend request already exists")
		}
		return nil, fmt.Errorf("failed to create friend request: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	req.ID = insertedID

	return req, nil
}

// GetRequestByID fetches a request by id.
func (r *FriendRequestRepository) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("friend request not found")
		}
		return nil, fmt.Errorf("failed to find friend request: %v", err)
	}
	return &request, nil
}

// GetRequestByPair returns the live request between two users in either
// direction, or nil when none exists.
func (r *FriendRequestRepository) GetRequestByPair(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.collection.FindOne(ctx, bson.M{"pair_key": models.PairKey(a, b)}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find friend request by pair: %v", err)
	}
	return &request, nil
}

// UpdateRequestStatus sets the status of a request.
func (r *FriendRequestRepository) UpdateRequestStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update request status: %v", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("friend request not found")
	}
	return nil
}

// DeleteRequest removes a request entirely. Rejection deletes rather than
// marking, so the pair can exchange a fresh request later.
func (r *FriendRequestRepository) DeleteRequest(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete friend request: %v", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("friend request not found")
	}
	return nil
}

// GetRequestsByRecipientAndStatus lists requests addressed to a user.
func (r *FriendRequestRepository) GetRequestsByRecipientAndStatus(ctx context.Context, recipientID primitive.ObjectID, status string) ([]models.FriendRequest, error) {
	return r.findRequests(ctx, bson.M{"recipient_id": recipientID, "status": status})
}

// GetRequestsBySenderAndStatus lists requests a user has sent.
func (r *FriendRequestRepository) GetRequestsBySenderAndStatus(ctx context.Context, senderID primitive.ObjectID, status string) ([]models.FriendRequest, error) {
	return r.findRequests(ctx, bson.M{"sender_id": senderID, "status": status})
}

func (r *FriendRequestRepository) findRequests(ctx context.Context, filter bson.M) ([]models.FriendRequest, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find friend requests: %v", err)
	}
	defer cursor.Close(ctx)

	var requests []models.FriendRequest
	for cursor.Next(ctx) {
		var req models.FriendRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}
