package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account stored in MongoDB. The set-valued fields
// (blocked users, saved posts, followers, subscribers) are only ever
// mutated with $addToSet/$pull so they never hold duplicates.
type User struct {
	ID             primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string               `json:"name" bson:"name"`
	Email          string               `json:"email" bson:"email"`
	Password       string               `json:"-" bson:"password,omitempty"`
	FirebaseUID    string               `json:"firebase_uid,omitempty" bson:"firebase_uid,omitempty"`
	ProfilePicture string               `json:"profile_picture,omitempty" bson:"profile_picture,omitempty"`
	BlockedUsers   []string             `json:"blocked_users" bson:"blocked_users"`
	SavedPosts     []string             `json:"saved_posts" bson:"saved_posts"`
	Inbox          []primitive.ObjectID `json:"inbox" bson:"inbox"`
	Followers      []string             `json:"followers" bson:"followers"`
	Subscribers    []string             `json:"subscribers" bson:"subscribers"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
}

// HasBlocked reports whether the user's block list contains the given id.
func (u *User) HasBlocked(userID string) bool {
	for _, id := range u.BlockedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// HasSaved reports whether the user's saved list contains the given post id.
func (u *User) HasSaved(postID string) bool {
	for _, id := range u.SavedPosts {
		if id == postID {
			return true
		}
	}
	return false
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name           string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	ProfilePicture string `json:"profile_picture,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
