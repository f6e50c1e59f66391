package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"garagedesk/internal/common"
	"garagedesk/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// identity pulls the authenticated user and tenant out of the request
// context. Protected routes always have both; a miss means the middleware
// chain was misconfigured.
func identity(c echo.Context) (userID, tenantID uuid.UUID, err error) {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}
	tenantID, ok = common.GetTenantIDFromContext(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing tenant")
	}
	return userID, tenantID, nil
}

// respondError maps service errors onto the envelope and status codes.
func respondError(c echo.Context, err error) error {
	var denied *services.PermissionDeniedError
	if errors.As(err, &denied) {
		return common.SendError(c, http.StatusForbidden, "FORBIDDEN", denied.Error())
	}
	if errors.Is(err, services.ErrNotFound) || errors.Is(err, pgx.ErrNoRows) {
		return common.SendNotFoundError(c, "resource")
	}
	if errors.Is(err, services.ErrValidation) {
		return common.SendValidationError(c, err.Error())
	}
	if errors.Is(err, services.ErrInvalidCredentials) {
		return common.SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	}
	if errors.Is(err, services.ErrTenantResolution) {
		return common.SendError(c, http.StatusServiceUnavailable, "TENANT_RESOLUTION", "workspace setup failed, retry shortly")
	}
	log.Printf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return common.SendServerError(c, "internal error")
}

// pageParams reads limit/offset query params with defaults.
func pageParams(c echo.Context) (limit, offset int) {
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	return common.NormalizePagination(limit, offset)
}

// pathID parses the :id path param.
func pathID(c echo.Context) (uuid.UUID, error) {
	return common.ValidateUUID(c.Param("id"), "id")
}

// listResponse packages a page of items with its pagination block.
type listResponse struct {
	Items      interface{}       `json:"items"`
	Pagination common.Pagination `json:"pagination"`
}
