package services

import (
	"context"
	"fmt"

	"github.com/rakib404/socialink/backend/internal/apperrors"
	"github.com/rakib404/socialink/backend/internal/models"
	"github.com/rakib404/socialink/backend/internal/repositories"
	"github.com/rakib404/socialink/backend/pkg/storage"
	"github.com/sirupsen/logrus"
)

// MessagingService implements direct and community messaging: existence and
// block checks, media classification, persistence, inbox/community list
// updates, audit history and receiver notification.
type MessagingService struct {
	messages    repositories.MessageRepository
	users       repositories.UserRepository
	communities repositories.CommunityRepository
	history     repositories.HistoryRepository
	blocks      *BlockPolicy
	fanout      *Fanout
	log         *logrus.Logger
	mediaStrict bool
}

// NewMessagingService creates a MessagingService. When mediaStrict is true
// an attachment with an unrecognized extension rejects the send; otherwise
// it is silently dropped.
func NewMessagingService(
	messages repositories.MessageRepository,
	users repositories.UserRepository,
	communities repositories.CommunityRepository,
	history repositories.HistoryRepository,
	blocks *BlockPolicy,
	fanout *Fanout,
	log *logrus.Logger,
	mediaStrict bool,
) *MessagingService {
	return &MessagingService{
		messages:    messages,
		users:       users,
		communities: communities,
		history:     history,
		blocks:      blocks,
		fanout:      fanout,
		log:         log,
		mediaStrict: mediaStrict,
	}
}

// SendDirect validates sender and receiver, applies the block policy,
// persists the message, pushes it onto the receiver's inbox, appends an
// audit line and notifies the receiver.
func (s *MessagingService) SendDirect(ctx context.Context, senderID, receiverID, content string, media *storage.StoredMedia) (*models.Message, error) {
	sender, err := s.users.GetUserByID(ctx, senderID)
	if err != nil {
		return nil, apperrors.NotFound("sender not found")
	}
	receiver, err := s.users.GetUserByID(ctx, receiverID)
	if err != nil {
		return nil, apperrors.NotFound("receiver not found")
	}

	if s.blocks.IsBlocked(ctx, senderID, receiverID) {
		return nil, apperrors.Forbidden("cannot send messages to blocked users")
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Type:       models.MessageTypeChat,
		Status:     models.MessageStatusSent,
	}
	if err := s.applyMedia(message, media); err != nil {
		return nil, err
	}

	if err := s.messages.CreateMessage(ctx, message); err != nil {
		return nil, apperrors.Upstream("failed to save message: %v", err)
	}

	if err := s.users.PushInbox(ctx, receiverID, message.ID); err != nil {
		// The message is already durable; a failed inbox push leaves the
		// receiver without a delivery reference.
		return nil, apperrors.Upstream("failed to update receiver inbox: %v", err)
	}

	if err := s.history.Append(senderID, fmt.Sprintf("Sent a message to user %s", receiver.Name)); err != nil {
		s.log.WithFields(logrus.Fields{"user_id": senderID, "error": err.Error()}).Warn("failed to append history")
	}

	s.fanout.NotifyOwner(ctx, senderID, receiverID, fmt.Sprintf("%s sent you a message: %q", sender.Name, content))
	return message, nil
}

// SendCommunity validates the community and persists a community message,
// appending its reference to the community's message list.
func (s *MessagingService) SendCommunity(ctx context.Context, senderID, communityID, content string, media *storage.StoredMedia) (*models.Message, error) {
	if communityID == "" || content == "" || senderID == "" {
		return nil, apperrors.BadRequest("communityId, content and sender are required")
	}

	community, err := s.communities.GetCommunityByID(ctx, communityID)
	if err != nil {
		return nil, apperrors.NotFound("community not found")
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: community.ID.Hex(),
		Content:    content,
		Type:       models.MessageTypeCommunity,
	}
	if err := s.applyMedia(message, media); err != nil {
		return nil, err
	}

	if err := s.messages.CreateMessage(ctx, message); err != nil {
		return nil, apperrors.Upstream("failed to save message: %v", err)
	}

	if err := s.communities.PushMessage(ctx, communityID, message.ID); err != nil {
		return nil, apperrors.Upstream("failed to update community messages: %v", err)
	}

	return message, nil
}

func (s *MessagingService) applyMedia(message *models.Message, media *storage.StoredMedia) error {
	if media == nil {
		return nil
	}
	switch media.Kind {
	case storage.MediaPhoto:
		message.PhotoURL = media.Path
	case storage.MediaVideo:
		message.VideoURL = media.Path
	default:
		if s.mediaStrict {
			return apperrors.BadRequest("unsupported media file type")
		}
		// Lenient mode drops the attachment without error.
	}
	return nil
}

// MarkRead performs the one-way isRead transition. Re-marking an already
// read message is a no-op success.
func (s *MessagingService) MarkRead(ctx context.Context, messageID string) error {
	message, err := s.messages.GetMessageByID(ctx, messageID)
	if err != nil {
		return apperrors.NotFound("message not found")
	}
	if message.IsRead {
		return nil
	}

	if err := s.messages.MarkMessageRead(ctx, messageID); err != nil {
		return apperrors.Upstream("failed to mark message read: %v", err)
	}

	if err := s.history.Append(message.SenderID, "isRead_message"); err != nil {
		s.log.WithFields(logrus.Fields{"user_id": message.SenderID, "error": err.Error()}).Warn("failed to append history")
	}
	return nil
}

// Conversation returns all chat messages between two users in either
// direction, timestamp ascending, enriched with sender display fields.
func (s *MessagingService) Conversation(ctx context.Context, userID, otherID string) ([]models.EnrichedMessage, error) {
	if otherID == "" {
		return nil, apperrors.BadRequest("receiverId is required")
	}

	messages, err := s.messages.GetConversation(ctx, userID, otherID)
	if err != nil {
		return nil, apperrors.Upstream("failed to load conversation: %v", err)
	}
	return s.enrich(ctx, messages), nil
}

// GroupConversation returns all community messages for a group, timestamp
// ascending, enriched with sender display fields.
func (s *MessagingService) GroupConversation(ctx context.Context, groupID string) ([]models.EnrichedMessage, error) {
	if groupID == "" {
		return nil, apperrors.BadRequest("groupId is required")
	}

	messages, err := s.messages.GetCommunityMessages(ctx, groupID)
	if err != nil {
		return nil, apperrors.Upstream("failed to load group conversation: %v", err)
	}
	return s.enrich(ctx, messages), nil
}

// Contacts returns the latest chat message per distinct counterparty of
// userID: a first-wins reduction over the descending-sorted sequence.
func (s *MessagingService) Contacts(ctx context.Context, userID string) ([]models.ContactMessage, error) {
	if userID == "" {
		return nil, apperrors.BadRequest("user id is required")
	}

	messages, err := s.messages.GetChatMessagesForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Upstream("failed to load chat messages: %v", err)
	}

	seen := make(map[string]struct{})
	contacts := make([]models.ContactMessage, 0)
	contactIDs := make([]string, 0)
	for _, message := range messages {
		if message.SenderID == "" || message.ReceiverID == "" {
			continue
		}
		otherID := message.SenderID
		if otherID == userID {
			otherID = message.ReceiverID
		}
		if _, ok := seen[otherID]; ok {
			continue
		}
		seen[otherID] = struct{}{}
		contacts = append(contacts, models.ContactMessage{Message: message, ContactID: otherID})
		contactIDs = append(contactIDs, otherID)
	}

	details := s.userDetails(ctx, contactIDs)
	for i := range contacts {
		if u, ok := details[contacts[i].ContactID]; ok {
			contacts[i].ContactName = u.Name
			contacts[i].ContactProfilePicture = u.ProfilePicture
		} else {
			contacts[i].ContactName = "Unknown Receiver"
		}
	}
	return contacts, nil
}

func (s *MessagingService) enrich(ctx context.Context, messages []models.Message) []models.EnrichedMessage {
	senderIDs := make([]string, 0, len(messages))
	seen := make(map[string]struct{})
	for _, m := range messages {
		if _, ok := seen[m.SenderID]; ok {
			continue
		}
		seen[m.SenderID] = struct{}{}
		senderIDs = append(senderIDs, m.SenderID)
	}

	details := s.userDetails(ctx, senderIDs)
	enriched := make([]models.EnrichedMessage, len(messages))
	for i, m := range messages {
		enriched[i] = models.EnrichedMessage{Message: m}
		if u, ok := details[m.SenderID]; ok {
			enriched[i].SenderName = u.Name
			enriched[i].SenderProfilePicture = u.ProfilePicture
		} else {
			enriched[i].SenderName = "Unknown Sender"
		}
	}
	return enriched
}

func (s *MessagingService) userDetails(ctx context.Context, ids []string) map[string]models.User {
	details := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return details
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		s.log.WithField("error", err.Error()).Warn("failed to resolve user details")
		return details
	}
	for _, u := range users {
		details[u.ID.Hex()] = u
	}
	return details
}
