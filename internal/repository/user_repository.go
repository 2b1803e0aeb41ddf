package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Madina2067/LinguaLink/internal/apperrors"
	"github.com/Madina2067/LinguaLink/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("user already exists with this email")
		}
		logrus.WithError(err).Error("Failed to insert user into database")
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	user.ID = insertedID

	logrus.WithField("userID", user.ID.Hex()).Info("User inserted successfully")
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to find user by id: %v", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to find user by email: %v", err)
	}
	return &user, nil
}

// GetUsersByIDs fetches user documents for a list of ObjectIDs.
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by IDs: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// UpdateUser applies a partial update to a user document.
func (r *UserRepository) UpdateUser(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.User, error) {
	update["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"error":  err,
		}).Error("Failed to update user")
		return nil, fmt.Errorf("failed to update user: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.NotFound("user not found")
	}

	return r.GetUserByID(ctx, id)
}

// AddFriend adds friendID to userID's friends set.
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"friends": friendID}}, // avoid duplicates
	)
	if err != nil {
		return fmt.Errorf("failed to add friend: %v", err)
	}
	return nil
}

// RemoveFriendEdge removes friendID from userID's friends set. Symmetric
// removal is the service's job; the single-sided primitive keeps the
// compensation path on accept usable.
func (r *UserRepository) RemoveFriendEdge(ctx context.Context, userID, friendID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"friends": friendID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove friend from user %s: %v", userID.Hex(), err)
	}
	return nil
}

// FindByAnyInterest returns users sharing at least one interest tag,
// excluding the given ids, in directory order.
func (r *UserRepository) FindByAnyInterest(ctx context.Context, interests []string, exclude []primitive.ObjectID) ([]models.User, error) {
	if len(interests) == 0 {
		return []models.User{}, nil
	}

	filter := bson.M{
		"_id":       bson.M{"$nin": exclude},
		"interests": bson.M{"$in": interests},
	}
	return r.findUsers(ctx, filter)
}

// FindByLanguageOrLocation returns users matching the native language or
// the location, excluding the given ids, in directory order.
func (r *UserRepository) FindByLanguageOrLocation(ctx context.Context, language, location string, exclude []primitive.ObjectID) ([]models.User, error) {
	filter := bson.M{
		"_id": bson.M{"$nin": exclude},
		"$or": []bson.M{
			{"native_language": language},
			{"location": location},
		},
	}
	return r.findUsers(ctx, filter)
}

// FindExcluding returns all users except the given ids, in directory order.
func (r *UserRepository) FindExcluding(ctx context.Context, exclude []primitive.ObjectID) ([]models.User, error) {
	return r.findUsers(ctx, bson.M{"_id": bson.M{"$nin": exclude}})
}

func (r *UserRepository) findUsers(ctx context.Context, filter bson.M) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %v", err)
		}
		users = append(users, user)
	}

	return users, nil
}
