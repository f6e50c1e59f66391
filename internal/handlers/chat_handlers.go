package handlers

import (
	"garagedesk/internal/common"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type ChatHandlers struct {
	chatSvc services.ChatService
}

func NewChatHandlers(chatSvc services.ChatService) *ChatHandlers {
	return &ChatHandlers{chatSvc: chatSvc}
}

// Send handles POST /v1/assistant/messages.
func (h *ChatHandlers) Send(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}

	messages, err := h.chatSvc.Send(c.Request().Context(), userID, tenantID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendCreated(c, messages)
}

// History handles GET /v1/assistant/messages.
func (h *ChatHandlers) History(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)
	messages, err := h.chatSvc.History(c.Request().Context(), userID, tenantID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, messages)
}
