package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rakib404/socialink/backend/internal/models"
	"github.com/rakib404/socialink/backend/internal/repositories"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

// fakeUserRepo is an in-memory repositories.UserRepository.
type fakeUserRepo struct {
	users map[string]*models.User
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) addUser(name string) *models.User {
	u := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        name + "@example.com",
		BlockedUsers: []string{},
		SavedPosts:   []string{},
		Inbox:        []primitive.ObjectID{},
		Followers:    []string{},
		Subscribers:  []string{},
	}
	f.users[u.ID.Hex()] = u
	return u
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	f.users[user.ID.Hex()] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	for _, u := range f.users {
		if u.FirebaseUID == uid {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id, name, profilePicture string) error {
	u, ok := f.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if name != "" {
		u.Name = name
	}
	if profilePicture != "" {
		u.ProfilePicture = profilePicture
	}
	return nil
}

func addToSet(set []string, v string) []string {
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}

func pull(set []string, v string) []string {
	out := set[:0]
	for _, s := range set {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeUserRepo) AddSavedPost(ctx context.Context, userID, postID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.SavedPosts = addToSet(u.SavedPosts, postID)
	return nil
}

func (f *fakeUserRepo) RemoveSavedPost(ctx context.Context, userID, postID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.SavedPosts = pull(u.SavedPosts, postID)
	return nil
}

func (f *fakeUserRepo) PushInbox(ctx context.Context, userID string, messageID primitive.ObjectID) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Inbox = append(u.Inbox, messageID)
	return nil
}

func (f *fakeUserRepo) BlockUser(ctx context.Context, userID, blockedID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.BlockedUsers = addToSet(u.BlockedUsers, blockedID)
	return nil
}

func (f *fakeUserRepo) UnblockUser(ctx context.Context, userID, blockedID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.BlockedUsers = pull(u.BlockedUsers, blockedID)
	return nil
}

func (f *fakeUserRepo) AddFollower(ctx context.Context, userID, followerID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Followers = addToSet(u.Followers, followerID)
	return nil
}

func (f *fakeUserRepo) RemoveFollower(ctx context.Context, userID, followerID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Followers = pull(u.Followers, followerID)
	return nil
}

func (f *fakeUserRepo) AddSubscriber(ctx context.Context, userID, subscriberID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Subscribers = addToSet(u.Subscribers, subscriberID)
	return nil
}

func (f *fakeUserRepo) RemoveSubscriber(ctx context.Context, userID, subscriberID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Subscribers = pull(u.Subscribers, subscriberID)
	return nil
}

func (f *fakeUserRepo) GetAudienceIDs(ctx context.Context, userID string) ([]string, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	seen := make(map[string]struct{})
	var ids []string
	for _, id := range append(append([]string{}, u.Followers...), u.Subscribers...) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// fakePostRepo is an in-memory repositories.PostRepository.
type fakePostRepo struct {
	posts map[string]*models.Post
}

var _ repositories.PostRepository = (*fakePostRepo)(nil)

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post)}
}

func (f *fakePostRepo) addPost(ownerID, content string) *models.Post {
	p := &models.Post{
		ID:       primitive.NewObjectID(),
		UserID:   ownerID,
		Content:  content,
		Likes:    []string{},
		Dislikes: []string{},
	}
	f.posts[p.ID.Hex()] = p
	return p
}

func (f *fakePostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Dislikes == nil {
		post.Dislikes = []string{}
	}
	f.posts[post.ID.Hex()] = post
	return nil
}

func (f *fakePostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePostRepo) GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.posts {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) GetRandomPosts(ctx context.Context, size int) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.posts {
		if len(out) == size {
			break
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePostRepo) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	existing, ok := f.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	existing.Content = post.Content
	existing.ImageURLs = post.ImageURLs
	existing.VideoURLs = post.VideoURLs
	return nil
}

func (f *fakePostRepo) DeletePost(ctx context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) SetLike(ctx context.Context, postID, userID string) error {
	p, ok := f.posts[postID]
	if !ok {
		return repositories.ErrPostNotFound
	}
	p.Dislikes = pull(p.Dislikes, userID)
	p.Likes = addToSet(p.Likes, userID)
	return nil
}

func (f *fakePostRepo) SetDislike(ctx context.Context, postID, userID string) error {
	p, ok := f.posts[postID]
	if !ok {
		return repositories.ErrPostNotFound
	}
	p.Likes = pull(p.Likes, userID)
	p.Dislikes = addToSet(p.Dislikes, userID)
	return nil
}

// fakeMessageRepo is an in-memory repositories.MessageRepository.
type fakeMessageRepo struct {
	messages []*models.Message
}

var _ repositories.MessageRepository = (*fakeMessageRepo)(nil)

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (f *fakeMessageRepo) CreateMessage(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	copied := *message
	f.messages = append(f.messages, &copied)
	return nil
}

func (f *fakeMessageRepo) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	for _, m := range f.messages {
		if m.ID.Hex() == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, repositories.ErrMessageNotFound
}

func (f *fakeMessageRepo) MarkMessageRead(ctx context.Context, id string) error {
	for _, m := range f.messages {
		if m.ID.Hex() == id {
			m.IsRead = true
			return nil
		}
	}
	return repositories.ErrMessageNotFound
}

func (f *fakeMessageRepo) GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.Type != models.MessageTypeChat {
			continue
		}
		if (m.SenderID == userID && m.ReceiverID == otherID) || (m.SenderID == otherID && m.ReceiverID == userID) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeMessageRepo) GetCommunityMessages(ctx context.Context, communityID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.Type == models.MessageTypeCommunity && m.ReceiverID == communityID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeMessageRepo) GetChatMessagesForUser(ctx context.Context, userID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.Type != models.MessageTypeChat {
			continue
		}
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// fakeCommunityRepo is an in-memory repositories.CommunityRepository.
type fakeCommunityRepo struct {
	communities map[string]*models.Community
}

var _ repositories.CommunityRepository = (*fakeCommunityRepo)(nil)

func newFakeCommunityRepo() *fakeCommunityRepo {
	return &fakeCommunityRepo{communities: make(map[string]*models.Community)}
}

func (f *fakeCommunityRepo) addCommunity(name string, memberIDs ...string) *models.Community {
	c := &models.Community{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Admins:      []string{},
		Members:     append([]string{}, memberIDs...),
		Messages:    []primitive.ObjectID{},
		Invitations: []models.Invitation{},
	}
	f.communities[c.ID.Hex()] = c
	return c
}

func (f *fakeCommunityRepo) CreateCommunity(ctx context.Context, community *models.Community) error {
	community.ID = primitive.NewObjectID()
	copied := *community
	f.communities[community.ID.Hex()] = &copied
	return nil
}

func (f *fakeCommunityRepo) GetCommunityByID(ctx context.Context, id string) (*models.Community, error) {
	c, ok := f.communities[id]
	if !ok {
		return nil, repositories.ErrCommunityNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCommunityRepo) GetCommunityByName(ctx context.Context, name string) (*models.Community, error) {
	for _, c := range f.communities {
		if c.Name == name {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repositories.ErrCommunityNotFound
}

func (f *fakeCommunityRepo) PushMessage(ctx context.Context, communityID string, messageID primitive.ObjectID) error {
	c, ok := f.communities[communityID]
	if !ok {
		return repositories.ErrCommunityNotFound
	}
	c.Messages = append(c.Messages, messageID)
	return nil
}

func (f *fakeCommunityRepo) AddInvitation(ctx context.Context, communityID string, invitation models.Invitation) error {
	c, ok := f.communities[communityID]
	if !ok {
		return repositories.ErrCommunityNotFound
	}
	c.Invitations = append(c.Invitations, invitation)
	return nil
}

func (f *fakeCommunityRepo) AcceptInvitation(ctx context.Context, communityID, receiverID string) error {
	c, ok := f.communities[communityID]
	if !ok {
		return repositories.ErrCommunityNotFound
	}
	for i := range c.Invitations {
		if c.Invitations[i].ReceiverID == receiverID && !c.Invitations[i].Accepted {
			c.Invitations[i].Accepted = true
			c.Members = addToSet(c.Members, receiverID)
			return nil
		}
	}
	return repositories.ErrInvitationNotFound
}

// fakeNotificationRepo is an in-memory repositories.NotificationRepository.
// failFor simulates a per-recipient write failure.
type fakeNotificationRepo struct {
	created []models.Notification
	failFor map[string]bool
}

var _ repositories.NotificationRepository = (*fakeNotificationRepo)(nil)

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{failFor: make(map[string]bool)}
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	if f.failFor[n.RecipientID] {
		return fmt.Errorf("write failed for %s", n.RecipientID)
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) forRecipient(recipientID string) []models.Notification {
	var out []models.Notification
	for _, n := range f.created {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}

func (f *fakeNotificationRepo) GetByRecipientID(recipientID string, page, limit int) ([]models.Notification, int64, error) {
	out := f.forRecipient(recipientID)
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) GetUnreadCount(recipientID string) (int64, error) {
	var count int64
	for _, n := range f.forRecipient(recipientID) {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(recipientID string) error {
	for i := range f.created {
		if f.created[i].RecipientID == recipientID {
			f.created[i].IsRead = true
		}
	}
	return nil
}

// fakeHistoryRepo is an in-memory repositories.HistoryRepository.
type fakeHistoryRepo struct {
	entries []models.History
}

var _ repositories.HistoryRepository = (*fakeHistoryRepo)(nil)

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{}
}

func (f *fakeHistoryRepo) Append(userID, action string) error {
	f.entries = append(f.entries, models.History{UserID: userID, Action: action})
	return nil
}

func (f *fakeHistoryRepo) GetByUserID(userID string, limit int) ([]models.History, error) {
	var out []models.History
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
