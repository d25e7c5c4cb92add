package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message types. A chat message addresses a user; a community message
// addresses a community (ReceiverID holds the community id).
const (
	MessageTypeChat      = "chat"
	MessageTypeCommunity = "community"
)

// MessageStatusSent is the status a message carries once persisted.
const MessageStatusSent = "sent"

// Message represents a direct or community message stored in MongoDB.
// Immutable once sent except for the one-way IsRead transition.
type Message struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SenderID   string             `json:"sender_id" bson:"sender_id"`
	ReceiverID string             `json:"receiver_id" bson:"receiver_id"`
	Content    string             `json:"content" bson:"content"`
	PhotoURL   string             `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	VideoURL   string             `json:"video_url,omitempty" bson:"video_url,omitempty"`
	Type       string             `json:"type" bson:"type"`
	Status     string             `json:"status,omitempty" bson:"status,omitempty"`
	IsRead     bool               `json:"is_read" bson:"is_read"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp"`
}

// EnrichedMessage is a message joined with the sender's display fields at
// read time. The display fields are not stored on the message document.
type EnrichedMessage struct {
	Message
	SenderName           string `json:"sender_name"`
	SenderProfilePicture string `json:"sender_profile_picture,omitempty"`
}

// ContactMessage is the most recent chat message exchanged with one
// counterparty, joined with the counterparty's display fields.
type ContactMessage struct {
	Message
	ContactID             string `json:"contact_id"`
	ContactName           string `json:"contact_name"`
	ContactProfilePicture string `json:"contact_profile_picture,omitempty"`
}

// SendMessageRequest defines the form fields for sending a direct message.
// An optional "media" file part may accompany it.
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" form:"receiver_id" validate:"required"`
	Content    string `json:"content" form:"content" validate:"required,min=1,max=5000"`
}

// SendCommunityMessageRequest defines the form fields for a community message.
type SendCommunityMessageRequest struct {
	CommunityID string `json:"community_id" form:"community_id" validate:"required"`
	Content     string `json:"content" form:"content" validate:"required,min=1,max=5000"`
}
