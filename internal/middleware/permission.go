package middleware

import (
	"fmt"
	"net/http"

	"garagedesk/internal/authz"
	"garagedesk/internal/common"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

// PermissionMiddleware gates routes on the permission matrix. It runs the
// same subject decision the services run, so the two layers can never
// disagree for a given caller.
type PermissionMiddleware struct {
	perms services.PermissionService
}

func NewPermissionMiddleware(perms services.PermissionService) *PermissionMiddleware {
	return &PermissionMiddleware{perms: perms}
}

// Require allows the request only when the caller may perform action on
// module. Runs after JWTMiddleware.
func (m *PermissionMiddleware) Require(module string, action authz.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := common.GetUserIDFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
			}

			subject, err := m.perms.SubjectFor(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to load permissions")
			}
			if !subject.Allows(module, action) {
				return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("permission denied: cannot %s %s", action, module))
			}
			return next(c)
		}
	}
}
