package handlers

import (
	"garagedesk/internal/common"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type OnboardingHandlers struct {
	onboardingSvc services.OnboardingService
}

func NewOnboardingHandlers(onboardingSvc services.OnboardingService) *OnboardingHandlers {
	return &OnboardingHandlers{onboardingSvc: onboardingSvc}
}

// Get handles GET /v1/onboarding.
func (h *OnboardingHandlers) Get(c echo.Context) error {
	_, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	progress, err := h.onboardingSvc.Get(c.Request().Context(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, progress)
}

// MarkStep handles PUT /v1/onboarding.
func (h *OnboardingHandlers) MarkStep(c echo.Context) error {
	_, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	var req struct {
		Step string `json:"step"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}

	progress, err := h.onboardingSvc.MarkStep(c.Request().Context(), tenantID, req.Step)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, progress)
}
