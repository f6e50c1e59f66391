package handlers

import (
	"garagedesk/internal/common"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type InvitationHandlers struct {
	invitationSvc services.InvitationService
}

func NewInvitationHandlers(invitationSvc services.InvitationService) *InvitationHandlers {
	return &InvitationHandlers{invitationSvc: invitationSvc}
}

// Create handles POST /v1/invitations.
func (h *InvitationHandlers) Create(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	var req services.CreateInvitationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}

	invitation, err := h.invitationSvc.Create(c.Request().Context(), userID, tenantID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendCreated(c, invitation)
}

// List handles GET /v1/invitations.
func (h *InvitationHandlers) List(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)
	invitations, err := h.invitationSvc.List(c.Request().Context(), userID, tenantID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, invitations)
}

// Accept handles POST /v1/invitations/:id/accept. The caller does not need
// a tenant yet, only a valid token.
func (h *InvitationHandlers) Accept(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	invitationID, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	invitation, err := h.invitationSvc.Accept(c.Request().Context(), invitationID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, invitation)
}

// Cancel handles DELETE /v1/invitations/:id.
func (h *InvitationHandlers) Cancel(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	invitationID, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if err := h.invitationSvc.Cancel(c.Request().Context(), userID, tenantID, invitationID); err != nil {
		return respondError(c, err)
	}
	return common.SendMessage(c, "invitation cancelled")
}
