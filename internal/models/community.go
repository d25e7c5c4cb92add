package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Community represents a named group stored in MongoDB. Members and admins
// reference users; Messages holds the ordered ids of community messages.
type Community struct {
	ID          primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Admins      []string             `json:"admins" bson:"admins"`
	Members     []string             `json:"members" bson:"members"`
	Messages    []primitive.ObjectID `json:"messages" bson:"messages"`
	Invitations []Invitation         `json:"invitations" bson:"invitations"`
	CreatedAt   time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" bson:"updated_at"`
}

// Invitation is a pending or accepted membership invitation. Display fields
// are denormalized at invite time. An invitation is accepted at most once.
type Invitation struct {
	SenderID               string `json:"sender_id" bson:"sender_id"`
	ReceiverID             string `json:"receiver_id" bson:"receiver_id"`
	Accepted               bool   `json:"accepted" bson:"accepted"`
	SenderName             string `json:"sender_name,omitempty" bson:"sender_name,omitempty"`
	SenderProfilePicture   string `json:"sender_profile_picture,omitempty" bson:"sender_profile_picture,omitempty"`
	ReceiverName           string `json:"receiver_name,omitempty" bson:"receiver_name,omitempty"`
	ReceiverProfilePicture string `json:"receiver_profile_picture,omitempty" bson:"receiver_profile_picture,omitempty"`
}

// HasMember reports whether the given user id belongs to the community.
func (c *Community) HasMember(userID string) bool {
	for _, id := range c.Members {
		if id == userID {
			return true
		}
	}
	for _, id := range c.Admins {
		if id == userID {
			return true
		}
	}
	return false
}

// CreateCommunityRequest defines the request body for creating a community.
type CreateCommunityRequest struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
}

// InviteMemberRequest defines the request body for inviting a user.
type InviteMemberRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
}
