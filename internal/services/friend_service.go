package services

import (
	"context"

	"github.com/Madina2067/LinguaLink/internal/apperrors"
	"github.com/Madina2067/LinguaLink/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendService implements the friend-request lifecycle. Every operation
// takes the acting user's id explicitly; nothing here reads ambient state.
type FriendService struct {
	requests FriendRequestStore
	users    UserStore
}

func NewFriendService(requests FriendRequestStore, users UserStore) *FriendService {
	return &FriendService{
		requests: requests,
		users:    users,
	}
}

// SendRequest creates a pending friend request from sender to recipient.
func (s *FriendService) SendRequest(ctx context.Context, senderID, recipientID primitive.ObjectID) (*models.FriendRequest, error) {
	if recipientID.IsZero() {
		return nil, apperrors.Validation("recipient id is required")
	}
	if senderID == recipientID {
		return nil, apperrors.Validation("cannot send a friend request to yourself")
	}

	recipient, err := s.users.GetUserByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	if recipient.HasFriend(senderID) {
		return nil, apperrors.Conflict("you are already friends with this user")
	}

	// Checked in both directions through the canonical pair key. The
	// unique index on pair_key closes the remaining read-then-write race.
	existing, err := s.requests.GetRequestByPair(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("friend request already exists between you and this user")
	}

	request := &models.FriendRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
	}
	created, err := s.requests.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"requestID": created.ID.Hex(),
		"sender":    senderID.Hex(),
		"recipient": recipientID.Hex(),
	}).Info("Friend request sent")
	return created, nil
}

// AcceptRequest marks a request accepted and links both users. Only the
// recipient may accept. The two-sided friends mutation is not atomic in
// Mongo without a replica set, so a failure on the second side rolls back
// the first and resets the request to pending.
func (s *FriendService) AcceptRequest(ctx context.Context, requestID, actorID primitive.ObjectID) (*models.FriendRequest, error) {
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.RecipientID != actorID {
		return nil, apperrors.Authorization("you can only accept requests sent to you")
	}
	if request.Status != models.RequestStatusPending {
		return nil, apperrors.Conflict("friend request has already been responded to")
	}

	if err := s.requests.UpdateRequestStatus(ctx, requestID, models.RequestStatusAccepted); err != nil {
		return nil, err
	}

	if err := s.users.AddFriend(ctx, request.RecipientID, request.SenderID); err != nil {
		s.revertAccept(ctx, request, false)
		return nil, err
	}
	if err := s.users.AddFriend(ctx, request.SenderID, request.RecipientID); err != nil {
		s.revertAccept(ctx, request, true)
		return nil, err
	}

	request.Status = models.RequestStatusAccepted
	logrus.WithFields(logrus.Fields{
		"requestID": requestID.Hex(),
		"sender":    request.SenderID.Hex(),
		"recipient": request.RecipientID.Hex(),
	}).Info("Friend request accepted")
	return request, nil
}

// revertAccept compensates a half-applied accept: undoes the recipient-side
// edge when it was written, then resets the request to pending so the
// recipient can retry. $pull and the status reset are idempotent, so a
// repeated compensation is harmless.
func (s *FriendService) revertAccept(ctx context.Context, request *models.FriendRequest, edgeWritten bool) {
	if edgeWritten {
		if err := s.users.RemoveFriendEdge(ctx, request.RecipientID, request.SenderID); err != nil {
			logrus.WithFields(logrus.Fields{
				"requestID": request.ID.Hex(),
				"error":     err,
			}).Error("Compensation failed: friendship edge left one-sided")
		}
	}
	if err := s.requests.UpdateRequestStatus(ctx, request.ID, models.RequestStatusPending); err != nil {
		logrus.WithFields(logrus.Fields{
			"requestID": request.ID.Hex(),
			"error":     err,
		}).Error("Compensation failed: request left in accepted state")
	}
}

// RejectRequest deletes a pending request entirely, permitting a fresh
// request between the pair later. Only the recipient may reject.
func (s *FriendService) RejectRequest(ctx context.Context, requestID, actorID primitive.ObjectID) error {
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.RecipientID != actorID {
		return apperrors.Authorization("you can only reject requests sent to you")
	}

	if err := s.requests.DeleteRequest(ctx, requestID); err != nil {
		return err
	}

	logrus.WithField("requestID", requestID.Hex()).Info("Friend request rejected")
	return nil
}

// ListIncoming returns pending requests addressed to the user, each with
// the sender's profile attached.
func (s *FriendService) ListIncoming(ctx context.Context, userID primitive.ObjectID) ([]models.IncomingRequest, error) {
	requests, err := s.requests.GetRequestsByRecipientAndStatus(ctx, userID, models.RequestStatusPending)
	if err != nil {
		return nil, err
	}

	summaries, err := s.summariesFor(ctx, requests, func(r models.FriendRequest) primitive.ObjectID {
		return r.SenderID
	})
	if err != nil {
		return nil, err
	}

	incoming := make([]models.IncomingRequest, 0, len(requests))
	for _, req := range requests {
		incoming = append(incoming, models.IncomingRequest{
			FriendRequest: req,
			Sender:        summaries[req.SenderID],
		})
	}
	return incoming, nil
}

// ListOutgoing returns pending requests the user has sent, each with the
// recipient's profile attached.
func (s *FriendService) ListOutgoing(ctx context.Context, userID primitive.ObjectID) ([]models.OutgoingRequest, error) {
	return s.listSent(ctx, userID, models.RequestStatusPending)
}

// ListAccepted returns accepted requests the user sent. Acceptance notices
// are sender-side only: the recipient already acted, the sender is the one
// being told about the new connection.
func (s *FriendService) ListAccepted(ctx context.Context, userID primitive.ObjectID) ([]models.OutgoingRequest, error) {
	return s.listSent(ctx, userID, models.RequestStatusAccepted)
}

func (s *FriendService) listSent(ctx context.Context, userID primitive.ObjectID, status string) ([]models.OutgoingRequest, error) {
	requests, err := s.requests.GetRequestsBySenderAndStatus(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	summaries, err := s.summariesFor(ctx, requests, func(r models.FriendRequest) primitive.ObjectID {
		return r.RecipientID
	})
	if err != nil {
		return nil, err
	}

	outgoing := make([]models.OutgoingRequest, 0, len(requests))
	for _, req := range requests {
		outgoing = append(outgoing, models.OutgoingRequest{
			FriendRequest: req,
			Recipient:     summaries[req.RecipientID],
		})
	}
	return outgoing, nil
}

func (s *FriendService) summariesFor(ctx context.Context, requests []models.FriendRequest, pick func(models.FriendRequest) primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	ids := make([]primitive.ObjectID, 0, len(requests))
	seen := make(map[primitive.ObjectID]bool, len(requests))
	for _, req := range requests {
		id := pick(req)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make(map[primitive.ObjectID]models.UserSummary, len(users))
	for i := range users {
		summaries[users[i].ID] = users[i].Summary()
	}
	return summaries, nil
}

// Friends returns the profiles of the user's current friends.
func (s *FriendService) Friends(ctx context.Context, userID primitive.ObjectID) ([]models.UserSummary, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends, err := s.users.GetUsersByIDs(ctx, user.Friends)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(friends))
	for i := range friends {
		summaries = append(summaries, friends[i].Summary())
	}
	return summaries, nil
}

// RemoveFriend unlinks two users on both sides and clears the accepted
// request record for the pair, so either side can send a new request later.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasFriend(friendID) {
		return apperrors.NotFound("this user is not in your friends list")
	}

	if err := s.users.RemoveFriendEdge(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.users.RemoveFriendEdge(ctx, friendID, userID); err != nil {
		return err
	}

	existing, err := s.requests.GetRequestByPair(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := s.requests.DeleteRequest(ctx, existing.ID); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"user":   userID.Hex(),
		"friend": friendID.Hex(),
	}).Info("Friendship removed")
	return nil
}
