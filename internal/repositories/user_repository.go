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

// ErrUserNotFound is returned when a user document is absent.
var ErrUserNotFound = fmt.Errorf("user not found")

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, name, profilePicture string) error
	AddSavedPost(ctx context.Context, userID, postID string) error
	RemoveSavedPost(ctx context.Context, userID, postID string) error
	PushInbox(ctx context.Context, userID string, messageID primitive.ObjectID) error
	BlockUser(ctx context.Context, userID, blockedID string) error
	UnblockUser(ctx context.Context, userID, blockedID string) error
	AddFollower(ctx context.Context, userID, followerID string) error
	RemoveFollower(ctx context.Context, userID, followerID string) error
	AddSubscriber(ctx context.Context, userID, subscriberID string) error
	RemoveSubscriber(ctx context.Context, userID, subscriberID string) error
	GetAudienceIDs(ctx context.Context, userID string) ([]string, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser creates a new user in MongoDB
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if user.BlockedUsers == nil {
		user.BlockedUsers = []string{}
	}
	if user.SavedPosts == nil {
		user.SavedPosts = []string{}
	}
	if user.Inbox == nil {
		user.Inbox = []primitive.ObjectID{}
	}
	if user.Followers == nil {
		user.Followers = []string{}
	}
	if user.Subscribers == nil {
		user.Subscribers = []string{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// GetUserByID retrieves a user by hex id from MongoDB
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email from MongoDB
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from MongoDB
func (r *MongoUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"firebase_uid": firebaseUID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs retrieves a batch of users by hex id. Unknown ids are skipped.
func (r *MongoUserRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}

	var users []models.User
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile updates the mutable profile fields of a user.
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, name, profilePicture string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}

	set := bson.M{"updated_at": time.Now()}
	if name != "" {
		set["name"] = name
	}
	if profilePicture != "" {
		set["profile_picture"] = profilePicture
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) updateSet(ctx context.Context, userID string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AddSavedPost adds a post id to the user's saved set.
func (r *MongoUserRepository) AddSavedPost(ctx context.Context, userID, postID string) error {
	return r.updateSet(ctx, userID, bson.M{"$addToSet": bson.M{"saved_posts": postID}})
}

// RemoveSavedPost removes a post id from the user's saved set.
func (r *MongoUserRepository) RemoveSavedPost(ctx context.Context, userID, postID string) error {
	return r.updateSet(ctx, userID, bson.M{"$pull": bson.M{"saved_posts": postID}})
}

// PushInbox appends a message reference to the user's inbox.
func (r *MongoUserRepository) PushInbox(ctx context.Context, userID string, messageID primitive.ObjectID) error {
	return r.updateSet(ctx, userID, bson.M{"$push": bson.M{"inbox": messageID}})
}

// BlockUser adds a user id to the caller's block set.
func (r *MongoUserRepository) BlockUser(ctx context.Context, userID, blockedID string) error {
	return r.updateSet(ctx, userID, bson.M{"$addToSet": bson.M{"blocked_users": blockedID}})
}

// UnblockUser removes a user id from the caller's block set.
func (r *MongoUserRepository) UnblockUser(ctx context.Context, userID, blockedID string) error {
	return r.updateSet(ctx, userID, bson.M{"$pull": bson.M{"blocked_users": blockedID}})
}

// AddFollower adds a follower to the target user's followers set.
func (r *MongoUserRepository) AddFollower(ctx context.Context, userID, followerID string) error {
	return r.updateSet(ctx, userID, bson.M{"$addToSet": bson.M{"followers": followerID}})
}

// RemoveFollower removes a follower from the target user's followers set.
func (r *MongoUserRepository) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return r.updateSet(ctx, userID, bson.M{"$pull": bson.M{"followers": followerID}})
}

// AddSubscriber adds a subscriber to the target user's subscribers set.
func (r *MongoUserRepository) AddSubscriber(ctx context.Context, userID, subscriberID string) error {
	return r.updateSet(ctx, userID, bson.M{"$addToSet": bson.M{"subscribers": subscriberID}})
}

// RemoveSubscriber removes a subscriber from the target user's subscribers set.
func (r *MongoUserRepository) RemoveSubscriber(ctx context.Context, userID, subscriberID string) error {
	return r.updateSet(ctx, userID, bson.M{"$pull": bson.M{"subscribers": subscriberID}})
}

// GetAudienceIDs returns the distinct union of the user's followers and
// subscribers, used as the fan-out recipient set.
func (r *MongoUserRepository) GetAudienceIDs(ctx context.Context, userID string) ([]string, error) {
	user, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(user.Followers)+len(user.Subscribers))
	ids := make([]string, 0, len(user.Followers)+len(user.Subscribers))
	for _, id := range append(append([]string{}, user.Followers...), user.Subscribers...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
