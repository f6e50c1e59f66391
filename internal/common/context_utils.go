package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	TenantIDKey contextKey = "tenant_id"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// SendOK sends a success envelope with data.
func SendOK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// SendCreated sends a success envelope with 201.
func SendCreated(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// SendMessage sends a success envelope with only a message.
func SendMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// SendError sends a failure envelope with the given status.
func SendError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, Envelope{Success: false, Error: code, Message: message})
}

// SendValidationError sends a 400 failure envelope.
func SendValidationError(c echo.Context, message string) error {
	return SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// SendNotFoundError sends a 404 failure envelope naming the resource.
func SendNotFoundError(c echo.Context, resource string) error {
	return SendError(c, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("%s not found", resource))
}

// SendUnauthorizedError sends a 401 failure envelope.
func SendUnauthorizedError(c echo.Context) error {
	return SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized access")
}

// SendServerError sends a 500 failure envelope. Internal details belong in
// the log, never in the response.
func SendServerError(c echo.Context, message string) error {
	return SendError(c, http.StatusInternalServerError, "SERVER_ERROR", message)
}

// ValidateUUID parses a path or query id with a field-specific error.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s has invalid UUID format", fieldName)
	}
	return id, nil
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// SafeString safely handles string pointer operations.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NormalizePagination clamps limit and offset to sane bounds.
func NormalizePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// SanitizeSearchQuery strips LIKE wildcards from user-supplied search text.
// Queries are parameterized everywhere; this keeps wildcards from turning a
// narrow search into a full scan.
func SanitizeSearchQuery(query string) string {
	query = strings.ReplaceAll(query, "%", "")
	query = strings.ReplaceAll(query, "_", "")
	if len(query) > 100 {
		query = query[:100]
	}
	return strings.TrimSpace(query)
}

// GetUserIDFromContext extracts the user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetTenantIDFromContext extracts the tenant ID from the request context.
func GetTenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}

// WithIdentity returns ctx carrying the authenticated user and tenant.
func WithIdentity(ctx context.Context, userID, tenantID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, TenantIDKey, tenantID)
}
