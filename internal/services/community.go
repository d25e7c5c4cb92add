package services

import (
	"context"
	"fmt"

	"github.com/rakib404/socialink/backend/internal/apperrors"
	"github.com/rakib404/socialink/backend/internal/models"
	"github.com/rakib404/socialink/backend/internal/repositories"
)

// CommunityService implements community creation and the invitation flow.
type CommunityService struct {
	communities repositories.CommunityRepository
	users       repositories.UserRepository
	fanout      *Fanout
}

// NewCommunityService creates a CommunityService.
func NewCommunityService(communities repositories.CommunityRepository, users repositories.UserRepository, fanout *Fanout) *CommunityService {
	return &CommunityService{communities: communities, users: users, fanout: fanout}
}

// CreateCommunity creates a community with the creator as admin and member.
// Names are unique.
func (s *CommunityService) CreateCommunity(ctx context.Context, creatorID, name string) (*models.Community, error) {
	if _, err := s.users.GetUserByID(ctx, creatorID); err != nil {
		return nil, apperrors.NotFound("user not found")
	}

	if _, err := s.communities.GetCommunityByName(ctx, name); err == nil {
		return nil, apperrors.Conflict("a community with this name already exists")
	}

	community := &models.Community{
		Name:    name,
		Admins:  []string{creatorID},
		Members: []string{creatorID},
	}
	if err := s.communities.CreateCommunity(ctx, community); err != nil {
		return nil, apperrors.Upstream("failed to create community: %v", err)
	}
	return community, nil
}

// GetCommunity retrieves a community by id.
func (s *CommunityService) GetCommunity(ctx context.Context, communityID string) (*models.Community, error) {
	community, err := s.communities.GetCommunityByID(ctx, communityID)
	if err != nil {
		return nil, apperrors.NotFound("community not found")
	}
	return community, nil
}

// Invite records a pending invitation from a community member to another
// user, denormalizing both display fields, and notifies the receiver.
func (s *CommunityService) Invite(ctx context.Context, actorID, communityID, receiverID string) error {
	community, err := s.communities.GetCommunityByID(ctx, communityID)
	if err != nil {
		return apperrors.NotFound("community not found")
	}
	if !community.HasMember(actorID) {
		return apperrors.Forbidden("only community members can invite")
	}

	sender, err := s.users.GetUserByID(ctx, actorID)
	if err != nil {
		return apperrors.NotFound("user not found")
	}
	receiver, err := s.users.GetUserByID(ctx, receiverID)
	if err != nil {
		return apperrors.NotFound("invited user not found")
	}
	if community.HasMember(receiverID) {
		return apperrors.Conflict("user is already a member")
	}

	for _, inv := range community.Invitations {
		if inv.ReceiverID == receiverID && !inv.Accepted {
			return apperrors.Conflict("user already has a pending invitation")
		}
	}

	invitation := models.Invitation{
		SenderID:               actorID,
		ReceiverID:             receiverID,
		SenderName:             sender.Name,
		SenderProfilePicture:   sender.ProfilePicture,
		ReceiverName:           receiver.Name,
		ReceiverProfilePicture: receiver.ProfilePicture,
	}
	if err := s.communities.AddInvitation(ctx, communityID, invitation); err != nil {
		return apperrors.Upstream("failed to add invitation: %v", err)
	}

	s.fanout.NotifyOwner(ctx, actorID, receiverID, fmt.Sprintf("%s invited you to join %q", sender.Name, community.Name))
	return nil
}

// AcceptInvitation accepts the caller's pending invitation, adding them to
// the member set. An invitation is accepted at most once.
func (s *CommunityService) AcceptInvitation(ctx context.Context, userID, communityID string) error {
	community, err := s.communities.GetCommunityByID(ctx, communityID)
	if err != nil {
		return apperrors.NotFound("community not found")
	}

	pending := false
	accepted := false
	for _, inv := range community.Invitations {
		if inv.ReceiverID != userID {
			continue
		}
		if inv.Accepted {
			accepted = true
		} else {
			pending = true
		}
	}
	if !pending {
		if accepted {
			return apperrors.Conflict("invitation already accepted")
		}
		return apperrors.NotFound("no invitation for this user")
	}

	if err := s.communities.AcceptInvitation(ctx, communityID, userID); err != nil {
		if err == repositories.ErrInvitationNotFound {
			return apperrors.Conflict("invitation already accepted")
		}
		return apperrors.Upstream("failed to accept invitation: %v", err)
	}
	return nil
}
