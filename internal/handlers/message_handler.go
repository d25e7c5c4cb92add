package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rakib404/socialink/backend/internal/apperrors"
	"github.com/rakib404/socialink/backend/internal/models"
	"github.com/rakib404/socialink/backend/internal/services"
	"github.com/rakib404/socialink/backend/pkg/storage"
)

// MessageHandler handles HTTP requests for direct and community messaging
type MessageHandler struct {
	messagingService *services.MessagingService
	uploader         *storage.Uploader
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messagingService *services.MessagingService, uploader *storage.Uploader) *MessageHandler {
	return &MessageHandler{
		messagingService: messagingService,
		uploader:         uploader,
	}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/conversation/:receiverId", h.GetConversation)
	g.PUT("/messages/:messageId/read", h.MarkMessageAsRead)
	g.GET("/messages/group", h.GetGroupConversation)
	g.POST("/messages/community", h.SendCommunityMessage)
	g.GET("/messages/contacts", h.GetChatContacts)
}

// SendMessage sends a direct message with an optional media attachment
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	media, err := h.saveMedia(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "File upload failed")
	}

	message, err := h.messagingService.SendDirect(c.Request().Context(), currentUserID(c), req.ReceiverID, req.Content, media)
	if err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, message)
}

// SendCommunityMessage sends a message into a community
func (h *MessageHandler) SendCommunityMessage(c echo.Context) error {
	var req models.SendCommunityMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	media, err := h.saveMedia(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "File upload failed")
	}

	message, err := h.messagingService.SendCommunity(c.Request().Context(), currentUserID(c), req.CommunityID, req.Content, media)
	if err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Community message sent successfully",
		"data":    message,
	})
}

// saveMedia stores the optional "media" file part. A request without one
// yields nil media and no error.
func (h *MessageHandler) saveMedia(c echo.Context) (*storage.StoredMedia, error) {
	file, err := c.FormFile("media")
	if err != nil {
		return nil, nil
	}
	return h.uploader.Save(file)
}

// GetConversation returns all chat messages with one counterparty
func (h *MessageHandler) GetConversation(c echo.Context) error {
	messages, err := h.messagingService.Conversation(c.Request().Context(), currentUserID(c), c.Param("receiverId"))
	if err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "messages": messages})
}

// GetGroupConversation returns all messages of one community
func (h *MessageHandler) GetGroupConversation(c echo.Context) error {
	messages, err := h.messagingService.GroupConversation(c.Request().Context(), c.QueryParam("groupId"))
	if err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "messages": messages})
}

// MarkMessageAsRead performs the one-way read transition
func (h *MessageHandler) MarkMessageAsRead(c echo.Context) error {
	if err := h.messagingService.MarkRead(c.Request().Context(), c.Param("messageId")); err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Message marked as read"})
}

// GetChatContacts returns the latest chat message per counterparty
func (h *MessageHandler) GetChatContacts(c echo.Context) error {
	contacts, err := h.messagingService.Contacts(c.Request().Context(), currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "messages": contacts})
}
