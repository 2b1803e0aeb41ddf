package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a member of the language-exchange community.
// The friends field is a symmetric relation: whenever A appears in
// B.Friends, B must appear in A.Friends.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Email          string               `bson:"email" json:"email"`
	HashedPassword string               `bson:"hashed_password" json:"-"`
	Bio            string               `bson:"bio" json:"bio"`
	ProfilePic     string               `bson:"profile_pic" json:"profilePic"`
	NativeLanguage string               `bson:"native_language" json:"nativeLanguage"`
	Location       string               `bson:"location" json:"location"`
	Interests      []string             `bson:"interests" json:"interests"`
	IsOnboarded    bool                 `bson:"is_onboarded" json:"isOnboarded"`
	Friends        []primitive.ObjectID `bson:"friends,omitempty" json:"friends,omitempty"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
}

// UserSummary is the projection embedded in friend-request listings and
// friends lists. It never carries credentials.
type UserSummary struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	ProfilePic     string             `json:"profilePic"`
	Bio            string             `json:"bio,omitempty"`
	NativeLanguage string             `json:"nativeLanguage"`
	Location       string             `json:"location"`
	Interests      []string           `json:"interests,omitempty"`
}

// Summary projects a full user document down to its public fields.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Name:           u.Name,
		ProfilePic:     u.ProfilePic,
		Bio:            u.Bio,
		NativeLanguage: u.NativeLanguage,
		Location:       u.Location,
		Interests:      u.Interests,
	}
}

// HasFriend reports whether id is already in the user's friends set.
func (u *User) HasFriend(id primitive.ObjectID) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}
