package middleware

import (
	"net/http"
	"strings"

	"garagedesk/internal/common"
	"garagedesk/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware validates the bearer token and loads the caller's identity
// into the request context. The tenant comes from the token claims so a
// stale binding never crosses tenants.
func JWTMiddleware(authSvc services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token format")
			}

			claims, err := authSvc.ValidateToken(c.Request().Context(), tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid user id in token")
			}
			tenantID, err := uuid.Parse(claims.TenantID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid tenant id in token")
			}

			ctx := common.WithIdentity(c.Request().Context(), userID, tenantID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
