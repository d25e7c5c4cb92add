package services

import (
	"context"
	"testing"
	"time"

	"github.com/rakib404/socialink/backend/internal/apperrors"
	"github.com/rakib404/socialink/backend/internal/models"
	"github.com/rakib404/socialink/backend/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messagingFixture struct {
	users         *fakeUserRepo
	messages      *fakeMessageRepo
	communities   *fakeCommunityRepo
	history       *fakeHistoryRepo
	notifications *fakeNotificationRepo
	svc           *MessagingService
}

func newMessagingFixture(mediaStrict bool) *messagingFixture {
	users := newFakeUserRepo()
	messages := newFakeMessageRepo()
	communities := newFakeCommunityRepo()
	history := newFakeHistoryRepo()
	notifications := newFakeNotificationRepo()
	log := testLogger()
	svc := NewMessagingService(
		messages, users, communities, history,
		NewBlockPolicy(users, log),
		NewFanout(users, notifications, log),
		log, mediaStrict,
	)
	return &messagingFixture{
		users:         users,
		messages:      messages,
		communities:   communities,
		history:       history,
		notifications: notifications,
		svc:           svc,
	}
}

func TestSendDirectPersistsAndDelivers(t *testing.T) {
	f := newMessagingFixture(false)
	sender := f.users.addUser("carol")
	receiver := f.users.addUser("dave")
	ctx := context.Background()

	msg, err := f.svc.SendDirect(ctx, sender.ID.Hex(), receiver.ID.Hex(), "hey", nil)
	require.NoError(t, err)
	require.False(t, msg.ID.IsZero())
	assert.Equal(t, models.MessageTypeChat, msg.Type)
	assert.Equal(t, models.MessageStatusSent, msg.Status)
	assert.False(t, msg.IsRead)

	inboxed, err := f.users.GetUserByID(ctx, receiver.ID.Hex())
	require.NoError(t, err)
	require.Len(t, inboxed.Inbox, 1)
	assert.Equal(t, msg.ID, inboxed.Inbox[0])

	require.Len(t, f.history.entries, 1)
	assert.Equal(t, sender.ID.Hex(), f.history.entries[0].UserID)
	assert.Equal(t, "Sent a message to user dave", f.history.entries[0].Action)

	notes := f.notifications.forRecipient(receiver.ID.Hex())
	require.Len(t, notes, 1)
	assert.Equal(t, `carol sent you a message: "hey"`, notes[0].Message)
}

func TestSendDirectToBlockedReceiverIsForbidden(t *testing.T) {
	f := newMessagingFixture(false)
	sender := f.users.addUser("carol")
	receiver := f.users.addUser("dave")
	ctx := context.Background()

	require.NoError(t, f.users.BlockUser(ctx, sender.ID.Hex(), receiver.ID.Hex()))

	_, err := f.svc.SendDirect(ctx, sender.ID.Hex(), receiver.ID.Hex(), "hey", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	assert.Empty(t, f.messages.messages, "a blocked send must not persist anything")
}

func TestSendDirectUnknownReceiverIsNotFound(t *testing.T) {
	f := newMessagingFixture(false)
	sender := f.users.addUser("carol")

	_, err := f.svc.SendDirect(context.Background(), sender.ID.Hex(), "64f000000000000000000000", "hey", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestSendDirectClassifiesMedia(t *testing.T) {
	f := newMessagingFixture(false)
	sender := f.users.addUser("carol")
	receiver := f.users.addUser("dave")
	ctx := context.Background()

	photo, err := f.svc.SendDirect(ctx, sender.ID.Hex(), receiver.ID.Hex(), "pic",
		&storage.StoredMedia{Path: "uploads/a.jpg", Kind: storage.MediaPhoto})
	require.NoError(t, err)
	assert.Equal(t, "uploads/a.jpg", photo.PhotoURL)
	assert.Empty(t, photo.VideoURL)

	video, err := f.svc.SendDirect(ctx, sender.ID.Hex(), receiver.ID.Hex(), "clip",
		&storage.StoredMedia{Path: "uploads/b.mp4", Kind: storage.MediaVideo})
	require.NoError(t, err)
	assert.Equal(t, "uploads/b.mp4", video.VideoURL)
	assert.Empty(t, video.PhotoURL)
}

func TestSendDirectUnknownMediaLenientDrops(t *testing.T) {
	f := newMessagingFixture(false)
	sender := f.users.addUser("carol")
	receiver := f.users.addUser("dave")

	msg, err := f.svc.SendDirect(context.Background(), sender.ID.Hex(), receiver.ID.Hex(), "doc",
		&storage.StoredMedia{Path: "uploads/c.pdf", Kind: storage.MediaUnknown})
	require.NoError(t, err)
	assert.Empty(t, msg.PhotoURL)
	assert.Empty(t, msg.VideoURL)
}

func TestSendDirectUnknownMediaStrictRejects(t *testing.T) {
	f := newMessagingFixture(true)
	sender := f.users.addUser("carol")
	receiver := f.users.addUser("dave")

	_, err := f.svc.SendDirect(context.Background(), sender.ID.Hex(), receiver.ID.Hex(), "doc",
		&storage.StoredMedia{Path: "uploads/c.pdf", Kind: storage.MediaUnknown})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	assert.Empty(t, f.messages.messages)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	f := newMessagingFixture(false)
	sender := f.users.addUser("carol")
	receiver := f.users.addUser("dave")
	ctx := context.Background()

	msg, err := f.svc.SendDirect(ctx, sender.ID.Hex(), receiver.ID.Hex(), "hey", nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.MarkRead(ctx, msg.ID.Hex()))
	require.NoError(t, f.svc.MarkRead(ctx, msg.ID.Hex()))

	got, err := f.messages.GetMessageByID(ctx, msg.ID.Hex())
	require.NoError(t, err)
	assert.True(t, got.IsRead)

	// Only the first transition appends an audit line; the send adds one too.
	var readLines int
	for _, e := range f.history.entries {
		if e.Action == "isRead_message" {
			readLines++
		}
	}
	assert.Equal(t, 1, readLines)
}

func TestMarkReadUnknownMessageIsNotFound(t *testing.T) {
	f := newMessagingFixture(false)

	err := f.svc.MarkRead(context.Background(), "64f000000000000000000000")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestConversationOrdersAscendingBothDirections(t *testing.T) {
	f := newMessagingFixture(false)
	a := f.users.addUser("carol")
	b := f.users.addUser("dave")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seed := func(senderID, receiverID, content string, at time.Time) {
		require.NoError(t, f.messages.CreateMessage(ctx, &models.Message{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Content:    content,
			Type:       models.MessageTypeChat,
			Timestamp:  at,
		}))
	}
	seed(b.ID.Hex(), a.ID.Hex(), "second", base.Add(time.Minute))
	seed(a.ID.Hex(), b.ID.Hex(), "first", base)
	seed(a.ID.Hex(), b.ID.Hex(), "third", base.Add(2*time.Minute))

	got, err := f.svc.Conversation(ctx, a.ID.Hex(), b.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "second", got[1].Content)
	assert.Equal(t, "third", got[2].Content)
	assert.Equal(t, "dave", got[1].SenderName)
}

func TestConversationEnrichesUnknownSender(t *testing.T) {
	f := newMessagingFixture(false)
	a := f.users.addUser("carol")
	ctx := context.Background()

	require.NoError(t, f.messages.CreateMessage(ctx, &models.Message{
		SenderID:   "64f000000000000000000000",
		ReceiverID: a.ID.Hex(),
		Content:    "hello",
		Type:       models.MessageTypeChat,
	}))

	got, err := f.svc.Conversation(ctx, a.ID.Hex(), "64f000000000000000000000")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Unknown Sender", got[0].SenderName)
}

func TestContactsKeepsLatestMessagePerCounterparty(t *testing.T) {
	f := newMessagingFixture(false)
	me := f.users.addUser("carol")
	dave := f.users.addUser("dave")
	erin := f.users.addUser("erin")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seed := func(senderID, receiverID, content string, at time.Time) {
		require.NoError(t, f.messages.CreateMessage(ctx, &models.Message{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Content:    content,
			Type:       models.MessageTypeChat,
			Timestamp:  at,
		}))
	}
	seed(me.ID.Hex(), dave.ID.Hex(), "dave old", base)
	seed(dave.ID.Hex(), me.ID.Hex(), "dave latest", base.Add(2*time.Minute))
	seed(erin.ID.Hex(), me.ID.Hex(), "erin only", base.Add(time.Minute))

	got, err := f.svc.Contacts(ctx, me.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Descending by latest message: dave first, then erin.
	assert.Equal(t, dave.ID.Hex(), got[0].ContactID)
	assert.Equal(t, "dave latest", got[0].Content)
	assert.Equal(t, "dave", got[0].ContactName)
	assert.Equal(t, erin.ID.Hex(), got[1].ContactID)
	assert.Equal(t, "erin only", got[1].Content)
}

func TestContactsUnknownCounterpartyFallback(t *testing.T) {
	f := newMessagingFixture(false)
	me := f.users.addUser("carol")
	ctx := context.Background()

	require.NoError(t, f.messages.CreateMessage(ctx, &models.Message{
		SenderID:   me.ID.Hex(),
		ReceiverID: "64f000000000000000000000",
		Content:    "hello",
		Type:       models.MessageTypeChat,
	}))

	got, err := f.svc.Contacts(ctx, me.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Unknown Receiver", got[0].ContactName)
}

func TestSendCommunityPersistsAndLinks(t *testing.T) {
	f := newMessagingFixture(false)
	sender := f.users.addUser("carol")
	community := f.communities.addCommunity("gophers", sender.ID.Hex())
	ctx := context.Background()

	msg, err := f.svc.SendCommunity(ctx, sender.ID.Hex(), community.ID.Hex(), "hello all", nil)
	require.NoError(t, err)
	assert.Equal(t, models.MessageTypeCommunity, msg.Type)
	assert.Equal(t, community.ID.Hex(), msg.ReceiverID)

	linked, err := f.communities.GetCommunityByID(ctx, community.ID.Hex())
	require.NoError(t, err)
	require.Len(t, linked.Messages, 1)
	assert.Equal(t, msg.ID, linked.Messages[0])
}

func TestSendCommunityMissingFieldsIsBadRequest(t *testing.T) {
	f := newMessagingFixture(false)
	sender := f.users.addUser("carol")

	_, err := f.svc.SendCommunity(context.Background(), sender.ID.Hex(), "", "hello", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
}

func TestGroupConversationReturnsCommunityMessages(t *testing.T) {
	f := newMessagingFixture(false)
	sender := f.users.addUser("carol")
	community := f.communities.addCommunity("gophers", sender.ID.Hex())
	ctx := context.Background()

	_, err := f.svc.SendCommunity(ctx, sender.ID.Hex(), community.ID.Hex(), "one", nil)
	require.NoError(t, err)
	_, err = f.svc.SendCommunity(ctx, sender.ID.Hex(), community.ID.Hex(), "two", nil)
	require.NoError(t, err)

	got, err := f.svc.GroupConversation(ctx, community.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "carol", got[0].SenderName)
}
