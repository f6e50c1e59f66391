package handlers

import (
	"garagedesk/internal/common"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type TenantHandlers struct {
	tenantSvc services.TenantService
}

func NewTenantHandlers(tenantSvc services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantSvc: tenantSvc}
}

// Get handles GET /v1/tenant.
func (h *TenantHandlers) Get(c echo.Context) error {
	_, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	tenant, err := h.tenantSvc.GetByID(c.Request().Context(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, tenant)
}

// Update handles PUT /v1/tenant.
func (h *TenantHandlers) Update(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	var req services.UpdateTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	req.ID = tenantID

	tenant, err := h.tenantSvc.Update(c.Request().Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, tenant)
}
