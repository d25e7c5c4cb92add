package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rakib404/socialink/backend/internal/apperrors"
	"github.com/rakib404/socialink/backend/internal/models"
	"github.com/rakib404/socialink/backend/internal/services"
)

// PostHandler handles HTTP requests related to posts and reactions
type PostHandler struct {
	postService     *services.PostService
	reactionService *services.ReactionService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, reactionService *services.ReactionService) *PostHandler {
	return &PostHandler{
		postService:     postService,
		reactionService: reactionService,
	}
}

// RegisterPostRoutes registers authenticated post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.LikePost)
	g.POST("/posts/:id/dislike", h.DislikePost)
	g.POST("/posts/:id/save", h.SavePost)
	g.DELETE("/posts/:id/save", h.UnsavePost)
}

// RegisterPublicPostRoutes registers unauthenticated post routes
func (h *PostHandler) RegisterPublicPostRoutes(g *echo.Group) {
	g.GET("/posts/user/:userId", h.GetPostsByUser)
	g.GET("/posts/random", h.GetRandomPosts)
}

// CreatePost creates a new post and fans out to the author's audience
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost updates an existing post (owner only)
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post (owner only)
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.postService.DeletePost(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, "The Post has been deleted.")
}

// GetPostsByUser lists a user's posts
func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	posts, err := h.postService.PostsByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// GetRandomPosts returns a sampled discovery feed
func (h *PostHandler) GetRandomPosts(c echo.Context) error {
	posts, err := h.postService.RandomPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// LikePost records a like on a post
func (h *PostHandler) LikePost(c echo.Context) error {
	if err := h.reactionService.Like(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post liked successfully"})
}

// DislikePost records a dislike on a post
func (h *PostHandler) DislikePost(c echo.Context) error {
	if err := h.reactionService.Dislike(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post disliked successfully"})
}

// SavePost bookmarks a post
func (h *PostHandler) SavePost(c echo.Context) error {
	if err := h.reactionService.Save(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Post saved successfully"})
}

// UnsavePost removes a post from the caller's saved list
func (h *PostHandler) UnsavePost(c echo.Context) error {
	if err := h.reactionService.Unsave(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post unsaved successfully."})
}
