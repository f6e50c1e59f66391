package handlers

import (
	"net/http"

	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type AuthHandlers struct {
	usersSvc services.UsersService
	authSvc  services.AuthService
}

func NewAuthHandlers(usersSvc services.UsersService, authSvc services.AuthService) *AuthHandlers {
	return &AuthHandlers{usersSvc: usersSvc, authSvc: authSvc}
}

// Signup handles POST /v1/auth/signup.
func (h *AuthHandlers) Signup(c echo.Context) error {
	var req services.SignupRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}

	user, tokens, err := h.usersSvc.Signup(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendCreated(c, map[string]interface{}{
		"user":   user,
		"tokens": tokens,
	})
}

// Login handles POST /v1/auth/login.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}

	user, tokens, err := h.usersSvc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, map[string]interface{}{
		"user":   user,
		"tokens": tokens,
	})
}

// Refresh handles POST /v1/auth/refresh.
func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req models.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	if req.RefreshToken == "" {
		return common.SendValidationError(c, "refresh_token is required")
	}

	tokens, err := h.authSvc.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return common.SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired refresh token")
	}
	return common.SendOK(c, tokens)
}

// Me handles GET /v1/me.
func (h *AuthHandlers) Me(c echo.Context) error {
	userID, _, err := identity(c)
	if err != nil {
		return err
	}
	user, err := h.usersSvc.GetByID(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, user)
}
