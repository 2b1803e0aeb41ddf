package services

import (
	"context"
	"fmt"

	"github.com/Madina2067/LinguaLink/internal/apperrors"
	"github.com/Madina2067/LinguaLink/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserStore keeps users in insertion order, which stands in for the
// directory order MongoDB returns for unsorted finds.
type fakeUserStore struct {
	users []*models.User

	// failAddFriendFor makes AddFriend fail when called for this user id,
	// to exercise the accept compensation path.
	failAddFriendFor primitive.ObjectID
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		s.users = append(s.users, u)
	}
	return s
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, apperrors.Conflict("user already exists with this email")
		}
	}
	user.ID = primitive.NewObjectID()
	s.users = append(s.users, user)
	return user, nil
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (s *fakeUserStore) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.User
	for _, u := range s.users {
		if wanted[u.ID] {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) UpdateUser(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for key, value := range update {
		switch key {
		case "name":
			user.Name = value.(string)
		case "bio":
			user.Bio = value.(string)
		case "profile_pic":
			user.ProfilePic = value.(string)
		case "native_language":
			user.NativeLanguage = value.(string)
		case "location":
			user.Location = value.(string)
		case "interests":
			user.Interests = value.([]string)
		case "is_onboarded":
			user.IsOnboarded = value.(bool)
		}
	}
	return user, nil
}

func (s *fakeUserStore) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	if userID == s.failAddFriendFor {
		return fmt.Errorf("storage unavailable")
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasFriend(friendID) {
		user.Friends = append(user.Friends, friendID)
	}
	return nil
}

func (s *fakeUserStore) RemoveFriendEdge(ctx context.Context, userID, friendID primitive.ObjectID) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	kept := user.Friends[:0]
	for _, f := range user.Friends {
		if f != friendID {
			kept = append(kept, f)
		}
	}
	user.Friends = kept
	return nil
}

func (s *fakeUserStore) FindByAnyInterest(_ context.Context, interests []string, exclude []primitive.ObjectID) ([]models.User, error) {
	if len(interests) == 0 {
		return []models.User{}, nil
	}
	tags := make(map[string]bool, len(interests))
	for _, t := range interests {
		tags[t] = true
	}
	var out []models.User
	for _, u := range s.users {
		if containsID(exclude, u.ID) {
			continue
		}
		for _, t := range u.Interests {
			if tags[t] {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeUserStore) FindByLanguageOrLocation(_ context.Context, language, location string, exclude []primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		if containsID(exclude, u.ID) {
			continue
		}
		if u.NativeLanguage == language || u.Location == location {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) FindExcluding(_ context.Context, exclude []primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		if !containsID(exclude, u.ID) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// fakeRequestStore mirrors the friend_requests collection, including the
// unique pair_key constraint.
type fakeRequestStore struct {
	requests []*models.FriendRequest
}

func (s *fakeRequestStore) CreateRequest(_ context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	key := models.PairKey(req.SenderID, req.RecipientID)
	for _, r := range s.requests {
		if r.PairKey == key {
			return nil, apperrors.Conflict("friend request already exists")
		}
	}
	req.ID = primitive.NewObjectID()
	req.Status = models.RequestStatusPending
	req.PairKey = key
	s.requests = append(s.requests, req)
	return req, nil
}

func (s *fakeRequestStore) GetRequestByID(_ context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	for _, r := range s.requests {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("friend request not found")
}

func (s *fakeRequestStore) GetRequestByPair(_ context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	key := models.PairKey(a, b)
	for _, r := range s.requests {
		if r.PairKey == key {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeRequestStore) UpdateRequestStatus(_ context.Context, id primitive.ObjectID, status string) error {
	for _, r := range s.requests {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return apperrors.NotFound("friend request not found")
}

func (s *fakeRequestStore) DeleteRequest(_ context.Context, id primitive.ObjectID) error {
	for i, r := range s.requests {
		if r.ID == id {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("friend request not found")
}

func (s *fakeRequestStore) GetRequestsByRecipientAndStatus(_ context.Context, recipientID primitive.ObjectID, status string) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, r := range s.requests {
		if r.RecipientID == recipientID && r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeRequestStore) GetRequestsBySenderAndStatus(_ context.Context, senderID primitive.ObjectID, status string) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, r := range s.requests {
		if r.SenderID == senderID && r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

// fakeMessageStore backs the chat service tests.
type fakeMessageStore struct {
	messages []*models.Message
}

func (s *fakeMessageStore) SaveMessage(_ context.Context, msg *models.Message) (*models.Message, error) {
	msg.ID = primitive.NewObjectID()
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *fakeMessageStore) GetConversation(_ context.Context, userID, friendID primitive.ObjectID) ([]models.Message, error) {
	var out []models.Message
	for _, m := range s.messages {
		if (m.SenderID == userID && m.ReceiverID == friendID) ||
			(m.SenderID == friendID && m.ReceiverID == userID) {
			out = append(out, *m)
		}
	}
	return out, nil
}
