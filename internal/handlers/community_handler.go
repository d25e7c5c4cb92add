package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rakib404/socialink/backend/internal/apperrors"
	"github.com/rakib404/socialink/backend/internal/models"
	"github.com/rakib404/socialink/backend/internal/services"
)

// CommunityHandler handles community membership HTTP requests
type CommunityHandler struct {
	communityService *services.CommunityService
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(communityService *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

// RegisterCommunityRoutes registers community routes
func (h *CommunityHandler) RegisterCommunityRoutes(g *echo.Group) {
	g.POST("/communities", h.CreateCommunity)
	g.GET("/communities/:id", h.GetCommunity)
	g.POST("/communities/:id/invitations", h.InviteMember)
	g.POST("/communities/:id/invitations/accept", h.AcceptInvitation)
}

// CreateCommunity creates a community with the caller as admin
func (h *CommunityHandler) CreateCommunity(c echo.Context) error {
	var req models.CreateCommunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	community, err := h.communityService.CreateCommunity(c.Request().Context(), currentUserID(c), req.Name)
	if err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, community)
}

// GetCommunity retrieves a community
func (h *CommunityHandler) GetCommunity(c echo.Context) error {
	community, err := h.communityService.GetCommunity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, community)
}

// InviteMember records a pending invitation
func (h *CommunityHandler) InviteMember(c echo.Context) error {
	var req models.InviteMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.communityService.Invite(c.Request().Context(), currentUserID(c), c.Param("id"), req.ReceiverID); err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Invitation sent"})
}

// AcceptInvitation accepts the caller's pending invitation
func (h *CommunityHandler) AcceptInvitation(c echo.Context) error {
	if err := h.communityService.AcceptInvitation(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Invitation accepted"})
}
