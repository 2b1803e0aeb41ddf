package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friend request lifecycle: a request is created pending, and either
// becomes accepted (terminal) or is deleted on rejection so the pair can
// try again later. There is never more than one live request per pair.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
)

type FriendRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	RecipientID primitive.ObjectID `bson:"recipient_id" json:"recipient_id"`
	// PairKey is the canonical unordered-pair key, unique-indexed so that
	// concurrent duplicate sends fail at the storage layer.
	PairKey   string    `bson:"pair_key" json:"-"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PairKey canonicalizes an unordered user pair into "<lo>:<hi>" so both
// orderings of the same pair map to the same key.
func PairKey(a, b primitive.ObjectID) string {
	lo, hi := a.Hex(), b.Hex()
	if strings.Compare(lo, hi) > 0 {
		lo, hi = hi, lo
	}
	return lo + ":" + hi
}

// IncomingRequest is a pending request seen from the recipient's side,
// with the sender's profile attached.
type IncomingRequest struct {
	FriendRequest
	Sender UserSummary `json:"sender"`
}

// OutgoingRequest is a request seen from the sender's side, with the
// recipient's profile attached. Used both for pending outgoing requests
// and for acceptance notices.
type OutgoingRequest struct {
	FriendRequest
	Recipient UserSummary `json:"recipient"`
}
