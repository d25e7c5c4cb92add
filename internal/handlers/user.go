package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rakib404/socialink/backend/internal/models"
	"github.com/rakib404/socialink/backend/internal/repositories"
)

// UserHandler handles HTTP requests related to users and their
// relationships (blocking, following, subscribing).
type UserHandler struct {
	userRepository    repositories.UserRepository
	historyRepository repositories.HistoryRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, historyRepo repositories.HistoryRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo, historyRepository: historyRepo}
}

// RegisterUserRoutes registers user profile and relationship routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/profile/saved-posts", h.GetSavedPosts)
	g.GET("/profile/history", h.GetHistory)
	g.GET("/users/:id", h.GetUser)
	g.POST("/users/:id/block", h.BlockUser)
	g.DELETE("/users/:id/block", h.UnblockUser)
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.POST("/users/:id/subscribe", h.SubscribeUser)
	g.DELETE("/users/:id/subscribe", h.UnsubscribeUser)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID := currentUserID(c)
	if err := h.userRepository.UpdateProfile(c.Request().Context(), userID, req.Name, req.ProfilePicture); err != nil {
		if err == repositories.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// GetSavedPosts lists the authenticated user's saved post ids
func (h *UserHandler) GetSavedPosts(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"saved_posts": user.SavedPosts})
}

// GetHistory lists the caller's recent audit entries
func (h *UserHandler) GetHistory(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 50
	}
	entries, err := h.historyRepository.GetByUserID(currentUserID(c), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"history": entries})
}

// GetUser retrieves another user's profile by id
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}

// BlockUser adds the target to the caller's block list
func (h *UserHandler) BlockUser(c echo.Context) error {
	targetID := c.Param("id")
	userID := currentUserID(c)
	if targetID == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot block yourself")
	}
	if _, err := h.userRepository.GetUserByID(c.Request().Context(), targetID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err := h.userRepository.BlockUser(c.Request().Context(), userID, targetID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User blocked"})
}

// UnblockUser removes the target from the caller's block list
func (h *UserHandler) UnblockUser(c echo.Context) error {
	if err := h.userRepository.UnblockUser(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User unblocked"})
}

// FollowUser adds the caller to the target's followers
func (h *UserHandler) FollowUser(c echo.Context) error {
	targetID := c.Param("id")
	userID := currentUserID(c)
	if targetID == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
	}
	if err := h.userRepository.AddFollower(c.Request().Context(), targetID, userID); err != nil {
		if err == repositories.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Now following"})
}

// UnfollowUser removes the caller from the target's followers
func (h *UserHandler) UnfollowUser(c echo.Context) error {
	if err := h.userRepository.RemoveFollower(c.Request().Context(), c.Param("id"), currentUserID(c)); err != nil {
		if err == repositories.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Unfollowed"})
}

// SubscribeUser adds the caller to the target's subscribers
func (h *UserHandler) SubscribeUser(c echo.Context) error {
	targetID := c.Param("id")
	userID := currentUserID(c)
	if targetID == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot subscribe to yourself")
	}
	if err := h.userRepository.AddSubscriber(c.Request().Context(), targetID, userID); err != nil {
		if err == repositories.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Subscribed"})
}

// UnsubscribeUser removes the caller from the target's subscribers
func (h *UserHandler) UnsubscribeUser(c echo.Context) error {
	if err := h.userRepository.RemoveSubscriber(c.Request().Context(), c.Param("id"), currentUserID(c)); err != nil {
		if err == repositories.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Unsubscribed"})
}
