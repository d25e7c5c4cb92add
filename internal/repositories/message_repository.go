package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/rakib404/socialink/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrMessageNotFound is returned when a message document is absent.
var ErrMessageNotFound = fmt.Errorf("message not found")

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessageByID(ctx context.Context, id string) (*models.Message, error)
	MarkMessageRead(ctx context.Context, id string) error
	GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error)
	GetCommunityMessages(ctx context.Context, communityID string) ([]models.Message, error)
	GetChatMessagesForUser(ctx context.Context, userID string) ([]models.Message, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// CreateMessage persists a message in MongoDB
func (r *MongoMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// GetMessageByID retrieves a message by hex id from MongoDB
func (r *MongoMessageRepository) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid message ID format: %w", err)
	}

	var message models.Message
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// MarkMessageRead sets is_read to true. The transition is one-way.
func (r *MongoMessageRepository) MarkMessageRead(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid message ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// GetConversation retrieves all chat messages between two users in either
// direction, ordered by timestamp ascending.
func (r *MongoMessageRepository) GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	filter := bson.M{
		"type": models.MessageTypeChat,
		"$or": []bson.M{
			{"sender_id": userID, "receiver_id": otherID},
			{"sender_id": otherID, "receiver_id": userID},
		},
	}
	return r.find(ctx, filter, 1)
}

// GetCommunityMessages retrieves all community messages for one community,
// ordered by timestamp ascending.
func (r *MongoMessageRepository) GetCommunityMessages(ctx context.Context, communityID string) ([]models.Message, error) {
	filter := bson.M{"receiver_id": communityID, "type": models.MessageTypeCommunity}
	return r.find(ctx, filter, 1)
}

// GetChatMessagesForUser retrieves all chat messages the user sent or
// received, ordered by timestamp descending (latest first).
func (r *MongoMessageRepository) GetChatMessagesForUser(ctx context.Context, userID string) ([]models.Message, error) {
	filter := bson.M{
		"type": models.MessageTypeChat,
		"$or": []bson.M{
			{"sender_id": userID},
			{"receiver_id": userID},
		},
	}
	return r.find(ctx, filter, -1)
}

func (r *MongoMessageRepository) find(ctx context.Context, filter bson.M, order int) ([]models.Message, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: order}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
