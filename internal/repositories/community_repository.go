package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/rakib404/socialink/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrCommunityNotFound is returned when a community document is absent.
var ErrCommunityNotFound = fmt.Errorf("community not found")

// ErrInvitationNotFound is returned when no pending invitation matches.
var ErrInvitationNotFound = fmt.Errorf("invitation not found")

// CommunityRepository defines the interface for community data operations
type CommunityRepository interface {
	CreateCommunity(ctx context.Context, community *models.Community) error
	GetCommunityByID(ctx context.Context, id string) (*models.Community, error)
	GetCommunityByName(ctx context.Context, name string) (*models.Community, error)
	PushMessage(ctx context.Context, communityID string, messageID primitive.ObjectID) error
	AddInvitation(ctx context.Context, communityID string, invitation models.Invitation) error
	AcceptInvitation(ctx context.Context, communityID, receiverID string) error
}

// MongoCommunityRepository implements CommunityRepository for MongoDB
type MongoCommunityRepository struct {
	collection *mongo.Collection
}

// NewMongoCommunityRepository creates a new MongoCommunityRepository
func NewMongoCommunityRepository(db *mongo.Database) *MongoCommunityRepository {
	return &MongoCommunityRepository{collection: db.Collection("communities")}
}

// CreateCommunity creates a new community in MongoDB
func (r *MongoCommunityRepository) CreateCommunity(ctx context.Context, community *models.Community) error {
	community.ID = primitive.NewObjectID()
	community.CreatedAt = time.Now()
	community.UpdatedAt = time.Now()
	if community.Admins == nil {
		community.Admins = []string{}
	}
	if community.Members == nil {
		community.Members = []string{}
	}
	if community.Messages == nil {
		community.Messages = []primitive.ObjectID{}
	}
	if community.Invitations == nil {
		community.Invitations = []models.Invitation{}
	}
	_, err := r.collection.InsertOne(ctx, community)
	return err
}

// GetCommunityByID retrieves a community by hex id from MongoDB
func (r *MongoCommunityRepository) GetCommunityByID(ctx context.Context, id string) (*models.Community, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid community ID format: %w", err)
	}

	var community models.Community
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&community)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}
	return &community, nil
}

// GetCommunityByName retrieves a community by its unique name.
func (r *MongoCommunityRepository) GetCommunityByName(ctx context.Context, name string) (*models.Community, error) {
	var community models.Community
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&community)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}
	return &community, nil
}

// PushMessage appends a message reference to the community's message list.
func (r *MongoCommunityRepository) PushMessage(ctx context.Context, communityID string, messageID primitive.ObjectID) error {
	objID, err := primitive.ObjectIDFromHex(communityID)
	if err != nil {
		return fmt.Errorf("invalid community ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$push": bson.M{"messages": messageID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCommunityNotFound
	}
	return nil
}

// AddInvitation appends a pending invitation to the community.
func (r *MongoCommunityRepository) AddInvitation(ctx context.Context, communityID string, invitation models.Invitation) error {
	objID, err := primitive.ObjectIDFromHex(communityID)
	if err != nil {
		return fmt.Errorf("invalid community ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$push": bson.M{"invitations": invitation},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCommunityNotFound
	}
	return nil
}

// AcceptInvitation marks the receiver's pending invitation accepted and adds
// the receiver to the member set. The filter matches only a not-yet-accepted
// invitation, so a second accept finds nothing to update.
func (r *MongoCommunityRepository) AcceptInvitation(ctx context.Context, communityID, receiverID string) error {
	objID, err := primitive.ObjectIDFromHex(communityID)
	if err != nil {
		return fmt.Errorf("invalid community ID format: %w", err)
	}

	filter := bson.M{
		"_id": objID,
		"invitations": bson.M{
			"$elemMatch": bson.M{"receiver_id": receiverID, "accepted": false},
		},
	}
	update := bson.M{
		"$set":      bson.M{"invitations.$.accepted": true, "updated_at": time.Now()},
		"$addToSet": bson.M{"members": receiverID},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrInvitationNotFound
	}
	return nil
}
