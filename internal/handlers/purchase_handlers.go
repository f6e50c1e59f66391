package handlers

import (
	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type PurchaseHandlers struct {
	purchasesSvc services.PurchasesService
}

func NewPurchaseHandlers(purchasesSvc services.PurchasesService) *PurchaseHandlers {
	return &PurchaseHandlers{purchasesSvc: purchasesSvc}
}

// List handles GET /v1/purchases.
func (h *PurchaseHandlers) List(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	filter := &models.PurchaseSearchFilter{Query: c.QueryParam("q")}
	if status := c.QueryParam("status"); status != "" {
		filter.Status = &status
	}
	if raw := c.QueryParam("supplier_id"); raw != "" {
		supplierID, err := common.ValidateUUID(raw, "supplier_id")
		if err != nil {
			return common.SendValidationError(c, err.Error())
		}
		filter.SupplierID = &supplierID
	}
	filter.Limit, filter.Offset = pageParams(c)

	purchases, total, err := h.purchasesSvc.Search(c.Request().Context(), userID, tenantID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, listResponse{
		Items:      purchases,
		Pagination: common.Pagination{Total: total, Limit: filter.Limit, Offset: filter.Offset},
	})
}

// Get handles GET /v1/purchases/:id.
func (h *PurchaseHandlers) Get(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	purchase, err := h.purchasesSvc.GetByID(c.Request().Context(), userID, tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, purchase)
}

// Create handles POST /v1/purchases.
func (h *PurchaseHandlers) Create(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	var purchase models.Purchase
	if err := c.Bind(&purchase); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	if err := h.purchasesSvc.Create(c.Request().Context(), userID, tenantID, &purchase); err != nil {
		return respondError(c, err)
	}
	return common.SendCreated(c, purchase)
}

// Update handles PUT /v1/purchases/:id.
func (h *PurchaseHandlers) Update(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var purchase models.Purchase
	if err := c.Bind(&purchase); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	purchase.ID = id

	if err := h.purchasesSvc.Update(c.Request().Context(), userID, tenantID, &purchase); err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, purchase)
}

// Receive handles POST /v1/purchases/:id/receive.
func (h *PurchaseHandlers) Receive(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	purchase, err := h.purchasesSvc.Receive(c.Request().Context(), userID, tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, purchase)
}

// Cancel handles POST /v1/purchases/:id/cancel.
func (h *PurchaseHandlers) Cancel(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	purchase, err := h.purchasesSvc.Cancel(c.Request().Context(), userID, tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, purchase)
}

// Delete handles DELETE /v1/purchases/:id.
func (h *PurchaseHandlers) Delete(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if err := h.purchasesSvc.Delete(c.Request().Context(), userID, tenantID, id); err != nil {
		return respondError(c, err)
	}
	return common.SendMessage(c, "purchase deleted")
}
