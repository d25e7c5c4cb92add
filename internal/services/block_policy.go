// Package services implements the core workflows behind the HTTP surface:
// block policy, reactions, notification fan-out, posting, messaging and
// community membership. Services depend on repository interfaces only.
package services

import (
	"context"

	"github.com/rakib404/socialink/backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

// BlockPolicy gates cross-user interactions on the sender's block list. It
// is shared by the reaction and messaging workflows.
type BlockPolicy struct {
	users repositories.UserRepository
	log   *logrus.Logger
}

// NewBlockPolicy creates a BlockPolicy.
func NewBlockPolicy(users repositories.UserRepository, log *logrus.Logger) *BlockPolicy {
	return &BlockPolicy{users: users, log: log}
}

// IsBlocked reports whether the sender's record lists receiverID as blocked.
// A missing sender or a lookup failure permits the action; the failure is
// logged but never surfaces to the caller.
func (p *BlockPolicy) IsBlocked(ctx context.Context, senderID, receiverID string) bool {
	sender, err := p.users.GetUserByID(ctx, senderID)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"sender_id": senderID,
			"error":     err.Error(),
		}).Warn("block check failed, permitting action")
		return false
	}
	return sender.HasBlocked(receiverID)
}
