package middleware

import (
	"log"
	"net/http"
	"strings"

	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuditMiddleware records mutating requests after the handler runs. A failed
// audit write never fails the request.
type AuditMiddleware struct {
	auditSvc services.AuditLogsService
}

func NewAuditMiddleware(auditSvc services.AuditLogsService) *AuditMiddleware {
	return &AuditMiddleware{auditSvc: auditSvc}
}

func (m *AuditMiddleware) Capture() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			method := c.Request().Method
			if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
				return err
			}

			ctx := c.Request().Context()
			tenantID, ok := common.GetTenantIDFromContext(ctx)
			if !ok {
				return err
			}
			userID, ok := common.GetUserIDFromContext(ctx)
			var userPtr *uuid.UUID
			if ok {
				userPtr = &userID
			}

			entity, entityID := splitRoute(c)
			entry := &models.AuditLog{
				TenantID: tenantID,
				UserID:   userPtr,
				Action:   strings.ToLower(method),
				Entity:   entity,
				EntityID: entityID,
				Data: map[string]interface{}{
					"path":   c.Request().URL.Path,
					"status": c.Response().Status,
				},
			}
			if err != nil {
				entry.Data["error"] = err.Error()
			}
			if recordErr := m.auditSvc.Record(ctx, entry); recordErr != nil {
				log.Printf("audit write failed for %s %s: %v", method, c.Request().URL.Path, recordErr)
			}
			return err
		}
	}
}

// splitRoute derives the entity name and optional id from the first path
// segments after the version prefix.
func splitRoute(c echo.Context) (string, *string) {
	path := strings.TrimPrefix(c.Request().URL.Path, "/v1/")
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "unknown", nil
	}
	entity := segments[0]
	if len(segments) > 1 && segments[1] != "" {
		id := segments[1]
		return entity, &id
	}
	return entity, nil
}
