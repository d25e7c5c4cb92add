package services

import (
	"context"
	"testing"

	"github.com/rakib404/socialink/backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type communityFixture struct {
	users         *fakeUserRepo
	communities   *fakeCommunityRepo
	notifications *fakeNotificationRepo
	svc           *CommunityService
}

func newCommunityFixture() *communityFixture {
	users := newFakeUserRepo()
	communities := newFakeCommunityRepo()
	notifications := newFakeNotificationRepo()
	svc := NewCommunityService(communities, users, NewFanout(users, notifications, testLogger()))
	return &communityFixture{users: users, communities: communities, notifications: notifications, svc: svc}
}

func TestCreateCommunityMakesCreatorAdminAndMember(t *testing.T) {
	f := newCommunityFixture()
	creator := f.users.addUser("alice")

	community, err := f.svc.CreateCommunity(context.Background(), creator.ID.Hex(), "gophers")
	require.NoError(t, err)
	assert.Equal(t, []string{creator.ID.Hex()}, community.Admins)
	assert.Equal(t, []string{creator.ID.Hex()}, community.Members)
}

func TestCreateCommunityDuplicateNameIsConflict(t *testing.T) {
	f := newCommunityFixture()
	creator := f.users.addUser("alice")
	ctx := context.Background()

	_, err := f.svc.CreateCommunity(ctx, creator.ID.Hex(), "gophers")
	require.NoError(t, err)

	_, err = f.svc.CreateCommunity(ctx, creator.ID.Hex(), "gophers")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestInviteRequiresMembership(t *testing.T) {
	f := newCommunityFixture()
	outsider := f.users.addUser("mallory")
	invitee := f.users.addUser("bob")
	community := f.communities.addCommunity("gophers")

	err := f.svc.Invite(context.Background(), outsider.ID.Hex(), community.ID.Hex(), invitee.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestInviteRecordsDenormalizedInvitationAndNotifies(t *testing.T) {
	f := newCommunityFixture()
	member := f.users.addUser("alice")
	invitee := f.users.addUser("bob")
	community := f.communities.addCommunity("gophers", member.ID.Hex())
	ctx := context.Background()

	require.NoError(t, f.svc.Invite(ctx, member.ID.Hex(), community.ID.Hex(), invitee.ID.Hex()))

	got, err := f.communities.GetCommunityByID(ctx, community.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got.Invitations, 1)
	inv := got.Invitations[0]
	assert.Equal(t, member.ID.Hex(), inv.SenderID)
	assert.Equal(t, invitee.ID.Hex(), inv.ReceiverID)
	assert.Equal(t, "alice", inv.SenderName)
	assert.Equal(t, "bob", inv.ReceiverName)
	assert.False(t, inv.Accepted)

	notes := f.notifications.forRecipient(invitee.ID.Hex())
	require.Len(t, notes, 1)
	assert.Equal(t, `alice invited you to join "gophers"`, notes[0].Message)
}

func TestInviteExistingMemberIsConflict(t *testing.T) {
	f := newCommunityFixture()
	member := f.users.addUser("alice")
	other := f.users.addUser("bob")
	community := f.communities.addCommunity("gophers", member.ID.Hex(), other.ID.Hex())

	err := f.svc.Invite(context.Background(), member.ID.Hex(), community.ID.Hex(), other.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestInviteWithPendingInvitationIsConflict(t *testing.T) {
	f := newCommunityFixture()
	member := f.users.addUser("alice")
	invitee := f.users.addUser("bob")
	community := f.communities.addCommunity("gophers", member.ID.Hex())
	ctx := context.Background()

	require.NoError(t, f.svc.Invite(ctx, member.ID.Hex(), community.ID.Hex(), invitee.ID.Hex()))

	err := f.svc.Invite(ctx, member.ID.Hex(), community.ID.Hex(), invitee.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestAcceptInvitationAddsMemberOnce(t *testing.T) {
	f := newCommunityFixture()
	member := f.users.addUser("alice")
	invitee := f.users.addUser("bob")
	community := f.communities.addCommunity("gophers", member.ID.Hex())
	ctx := context.Background()

	require.NoError(t, f.svc.Invite(ctx, member.ID.Hex(), community.ID.Hex(), invitee.ID.Hex()))
	require.NoError(t, f.svc.AcceptInvitation(ctx, invitee.ID.Hex(), community.ID.Hex()))

	got, err := f.communities.GetCommunityByID(ctx, community.ID.Hex())
	require.NoError(t, err)
	assert.True(t, got.HasMember(invitee.ID.Hex()))
	require.Len(t, got.Invitations, 1)
	assert.True(t, got.Invitations[0].Accepted)

	// A second accept finds no pending invitation.
	err = f.svc.AcceptInvitation(ctx, invitee.ID.Hex(), community.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	got, _ = f.communities.GetCommunityByID(ctx, community.ID.Hex())
	assert.Len(t, got.Members, 2, "accepting twice must not duplicate membership")
}

func TestAcceptWithoutInvitationIsNotFound(t *testing.T) {
	f := newCommunityFixture()
	user := f.users.addUser("bob")
	community := f.communities.addCommunity("gophers")

	err := f.svc.AcceptInvitation(context.Background(), user.ID.Hex(), community.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
