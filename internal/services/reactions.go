package services

import (
	"context"
	"fmt"

	"github.com/rakib404/socialink/backend/internal/apperrors"
	"github.com/rakib404/socialink/backend/internal/repositories"
)

// ReactionService applies like/dislike/save/unsave transitions on posts.
// Like and dislike are mutually exclusive per user; switching between them
// is a single store update.
type ReactionService struct {
	posts  repositories.PostRepository
	users  repositories.UserRepository
	blocks *BlockPolicy
	fanout *Fanout
}

// NewReactionService creates a ReactionService.
func NewReactionService(posts repositories.PostRepository, users repositories.UserRepository, blocks *BlockPolicy, fanout *Fanout) *ReactionService {
	return &ReactionService{posts: posts, users: users, blocks: blocks, fanout: fanout}
}

// Like records a like by userID on postID and notifies the post owner.
func (s *ReactionService) Like(ctx context.Context, userID, postID string) error {
	return s.react(ctx, userID, postID, true)
}

// Dislike records a dislike by userID on postID and notifies the post owner.
func (s *ReactionService) Dislike(ctx context.Context, userID, postID string) error {
	return s.react(ctx, userID, postID, false)
}

func (s *ReactionService) react(ctx context.Context, userID, postID string, like bool) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return apperrors.NotFound("post not found")
	}

	if like && post.LikedBy(userID) {
		return apperrors.Conflict("you have already liked this post")
	}
	if !like && post.DislikedBy(userID) {
		return apperrors.Conflict("you have already disliked this post")
	}

	if s.blocks.IsBlocked(ctx, userID, post.UserID) {
		if like {
			return apperrors.Forbidden("cannot like posts of blocked users")
		}
		return apperrors.Forbidden("cannot dislike posts of blocked users")
	}

	if like {
		err = s.posts.SetLike(ctx, postID, userID)
	} else {
		err = s.posts.SetDislike(ctx, postID, userID)
	}
	if err != nil {
		return apperrors.Upstream("failed to update reaction: %v", err)
	}

	verb := "liked"
	if !like {
		verb = "disliked"
	}
	s.fanout.NotifyOwner(ctx, userID, post.UserID, fmt.Sprintf("%q %s your post", s.actorName(ctx, userID), verb))
	return nil
}

// Save bookmarks postID on the acting user's record and notifies the owner.
func (s *ReactionService) Save(ctx context.Context, userID, postID string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return apperrors.NotFound("user not found")
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return apperrors.NotFound("post not found")
	}

	if user.HasSaved(postID) {
		return apperrors.Conflict("post already saved")
	}

	if err := s.users.AddSavedPost(ctx, userID, postID); err != nil {
		return apperrors.Upstream("failed to save post: %v", err)
	}

	s.fanout.NotifyOwner(ctx, userID, post.UserID, fmt.Sprintf("%q saved your post", user.Name))
	return nil
}

// Unsave removes postID from the acting user's saved list and notifies the
// owner.
func (s *ReactionService) Unsave(ctx context.Context, userID, postID string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return apperrors.NotFound("user not found")
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return apperrors.NotFound("post not found")
	}

	if !user.HasSaved(postID) {
		return apperrors.Conflict("post is not saved")
	}

	if err := s.users.RemoveSavedPost(ctx, userID, postID); err != nil {
		return apperrors.Upstream("failed to unsave post: %v", err)
	}

	s.fanout.NotifyOwner(ctx, userID, post.UserID, fmt.Sprintf("%s unsaved your post", user.Name))
	return nil
}

func (s *ReactionService) actorName(ctx context.Context, userID string) string {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.Name
}
