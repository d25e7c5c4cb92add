package services

import (
	"context"
	"fmt"

	"github.com/rakib404/socialink/backend/internal/apperrors"
	"github.com/rakib404/socialink/backend/internal/models"
	"github.com/rakib404/socialink/backend/internal/repositories"
)

const randomPostSampleSize = 40

// PostService implements the post lifecycle: create with audience fan-out,
// owner-only update and delete, per-user listing and random sampling.
type PostService struct {
	posts  repositories.PostRepository
	users  repositories.UserRepository
	fanout *Fanout
}

// NewPostService creates a PostService.
func NewPostService(posts repositories.PostRepository, users repositories.UserRepository, fanout *Fanout) *PostService {
	return &PostService{posts: posts, users: users, fanout: fanout}
}

// CreatePost persists a new post for userID and fans out a notification to
// the author's followers and subscribers. The fan-out is best-effort: the
// post is already durable when it runs.
func (s *PostService) CreatePost(ctx context.Context, userID string, req models.CreatePostRequest) (*models.Post, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFound("user not found")
	}

	post := &models.Post{
		UserID:    userID,
		Content:   req.Content,
		ImageURLs: req.ImageURLs,
		VideoURLs: req.VideoURLs,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, apperrors.Upstream("failed to create post: %v", err)
	}

	s.fanout.NotifyAudience(ctx, userID, fmt.Sprintf("New post added by (%q)", user.Name))
	return post, nil
}

// UpdatePost applies the request to an existing post. Only the owner may
// update.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID string, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, apperrors.NotFound("post not found")
	}
	if post.UserID != userID {
		return nil, apperrors.Forbidden("you can update only your own post")
	}

	if req.Content != "" {
		post.Content = req.Content
	}
	if req.ImageURLs != nil {
		post.ImageURLs = req.ImageURLs
	}
	if req.VideoURLs != nil {
		post.VideoURLs = req.VideoURLs
	}

	if err := s.posts.UpdatePost(ctx, postID, post); err != nil {
		return nil, apperrors.Upstream("failed to update post: %v", err)
	}
	return post, nil
}

// DeletePost removes a post. Only the owner may delete.
func (s *PostService) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return apperrors.NotFound("post not found")
	}
	if post.UserID != userID {
		return apperrors.Forbidden("you can delete only your own post")
	}

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return apperrors.Upstream("failed to delete post: %v", err)
	}
	return nil
}

// PostsByUser lists a user's posts, newest first.
func (s *PostService) PostsByUser(ctx context.Context, userID string) ([]models.Post, error) {
	posts, err := s.posts.GetPostsByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Upstream("failed to list posts: %v", err)
	}
	return posts, nil
}

// RandomPosts samples posts for the discovery feed.
func (s *PostService) RandomPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.GetRandomPosts(ctx, randomPostSampleSize)
	if err != nil {
		return nil, apperrors.Upstream("failed to sample posts: %v", err)
	}
	return posts, nil
}
