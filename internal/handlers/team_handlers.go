package handlers

import (
	"garagedesk/internal/authz"
	"garagedesk/internal/common"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type TeamHandlers struct {
	usersSvc services.UsersService
	permSvc  services.PermissionService
}

func NewTeamHandlers(usersSvc services.UsersService, permSvc services.PermissionService) *TeamHandlers {
	return &TeamHandlers{usersSvc: usersSvc, permSvc: permSvc}
}

// ListMembers handles GET /v1/team/members.
func (h *TeamHandlers) ListMembers(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)
	members, err := h.usersSvc.ListMembers(c.Request().Context(), userID, tenantID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, members)
}

// RemoveMember handles DELETE /v1/team/members/:id.
func (h *TeamHandlers) RemoveMember(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	memberID, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if err := h.usersSvc.RemoveMember(c.Request().Context(), userID, tenantID, memberID); err != nil {
		return respondError(c, err)
	}
	return common.SendMessage(c, "team member removed")
}

// GetPermissions handles GET /v1/team/members/:id/permissions.
func (h *TeamHandlers) GetPermissions(c echo.Context) error {
	userID, _, err := identity(c)
	if err != nil {
		return err
	}
	memberID, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	rows, err := h.permSvc.ListForUser(c.Request().Context(), userID, memberID)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, rows)
}

// SetPermissions handles PUT /v1/team/members/:id/permissions.
func (h *TeamHandlers) SetPermissions(c echo.Context) error {
	userID, _, err := identity(c)
	if err != nil {
		return err
	}
	memberID, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var req struct {
		Permissions map[string]authz.ActionSet `json:"permissions"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}

	if err := h.permSvc.SetForUser(c.Request().Context(), userID, memberID, req.Permissions); err != nil {
		return respondError(c, err)
	}
	return common.SendMessage(c, "permissions updated")
}
