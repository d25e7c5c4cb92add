package services

import (
	"context"

	"github.com/rakib404/socialink/backend/internal/models"
	"github.com/rakib404/socialink/backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

// Fanout writes notification records for post and message events. It is
// best-effort: every entry point swallows and logs failures, so a committed
// primary action is never failed by its notifications.
type Fanout struct {
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	log           *logrus.Logger
}

// NewFanout creates a Fanout.
func NewFanout(users repositories.UserRepository, notifications repositories.NotificationRepository, log *logrus.Logger) *Fanout {
	return &Fanout{users: users, notifications: notifications, log: log}
}

// NotifyOwner writes one notification addressed to ownerID. Self-notification
// is suppressed when the actor is the owner.
func (f *Fanout) NotifyOwner(ctx context.Context, actorID, ownerID, message string) {
	if actorID == ownerID {
		return
	}
	f.create(actorID, ownerID, message)
}

// NotifyAudience writes one notification per distinct follower or subscriber
// of the actor. A failure for one recipient does not abort the rest.
func (f *Fanout) NotifyAudience(ctx context.Context, actorID, message string) {
	recipients, err := f.users.GetAudienceIDs(ctx, actorID)
	if err != nil {
		f.log.WithFields(logrus.Fields{
			"actor_id": actorID,
			"error":    err.Error(),
		}).Warn("failed to resolve fan-out audience")
		return
	}

	for _, recipientID := range recipients {
		if recipientID == actorID {
			continue
		}
		f.create(actorID, recipientID, message)
	}
}

func (f *Fanout) create(actorID, recipientID, message string) {
	n := &models.Notification{
		ActorID:     actorID,
		RecipientID: recipientID,
		Message:     message,
	}
	if err := f.notifications.CreateNotification(n); err != nil {
		f.log.WithFields(logrus.Fields{
			"actor_id":     actorID,
			"recipient_id": recipientID,
			"error":        err.Error(),
		}).Warn("failed to write notification")
	}
}
