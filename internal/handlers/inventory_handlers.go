package handlers

import (
	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type InventoryHandlers struct {
	inventorySvc services.InventoryService
}

func NewInventoryHandlers(inventorySvc services.InventoryService) *InventoryHandlers {
	return &InventoryHandlers{inventorySvc: inventorySvc}
}

// List handles GET /v1/inventory.
func (h *InventoryHandlers) List(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	filter := &models.InventorySearchFilter{
		Query:    c.QueryParam("q"),
		LowStock: c.QueryParam("low_stock") == "true",
	}
	filter.Limit, filter.Offset = pageParams(c)

	items, total, err := h.inventorySvc.Search(c.Request().Context(), userID, tenantID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, listResponse{
		Items:      items,
		Pagination: common.Pagination{Total: total, Limit: filter.Limit, Offset: filter.Offset},
	})
}

// Get handles GET /v1/inventory/:id.
func (h *InventoryHandlers) Get(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	item, err := h.inventorySvc.GetByID(c.Request().Context(), userID, tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, item)
}

// Create handles POST /v1/inventory.
func (h *InventoryHandlers) Create(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	var item models.InventoryItem
	if err := c.Bind(&item); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	if err := h.inventorySvc.Create(c.Request().Context(), userID, tenantID, &item); err != nil {
		return respondError(c, err)
	}
	return common.SendCreated(c, item)
}

// Update handles PUT /v1/inventory/:id.
func (h *InventoryHandlers) Update(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var item models.InventoryItem
	if err := c.Bind(&item); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	item.ID = id

	if err := h.inventorySvc.Update(c.Request().Context(), userID, tenantID, &item); err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, item)
}

// AdjustQuantity handles POST /v1/inventory/:id/adjust.
func (h *InventoryHandlers) AdjustQuantity(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}

	item, err := h.inventorySvc.AdjustQuantity(c.Request().Context(), userID, tenantID, id, req.Delta)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, item)
}

// Delete handles DELETE /v1/inventory/:id.
func (h *InventoryHandlers) Delete(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if err := h.inventorySvc.Delete(c.Request().Context(), userID, tenantID, id); err != nil {
		return respondError(c, err)
	}
	return common.SendMessage(c, "inventory item deleted")
}
