package handlers

import (
	"garagedesk/internal/common"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type AuditLogsHandlers struct {
	auditSvc services.AuditLogsService
}

func NewAuditLogsHandlers(auditSvc services.AuditLogsService) *AuditLogsHandlers {
	return &AuditLogsHandlers{auditSvc: auditSvc}
}

// List handles GET /v1/audit-logs.
func (h *AuditLogsHandlers) List(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)
	entries, err := h.auditSvc.List(c.Request().Context(), userID, tenantID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, entries)
}
