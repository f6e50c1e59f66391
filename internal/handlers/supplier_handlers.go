package handlers

import (
	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type SupplierHandlers struct {
	suppliersSvc services.SuppliersService
}

func NewSupplierHandlers(suppliersSvc services.SuppliersService) *SupplierHandlers {
	return &SupplierHandlers{suppliersSvc: suppliersSvc}
}

// List handles GET /v1/suppliers.
func (h *SupplierHandlers) List(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	filter := &models.SupplierSearchFilter{Query: c.QueryParam("q")}
	filter.Limit, filter.Offset = pageParams(c)

	suppliers, total, err := h.suppliersSvc.Search(c.Request().Context(), userID, tenantID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, listResponse{
		Items:      suppliers,
		Pagination: common.Pagination{Total: total, Limit: filter.Limit, Offset: filter.Offset},
	})
}

// Get handles GET /v1/suppliers/:id.
func (h *SupplierHandlers) Get(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	supplier, err := h.suppliersSvc.GetByID(c.Request().Context(), userID, tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, supplier)
}

// Create handles POST /v1/suppliers.
func (h *SupplierHandlers) Create(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	var supplier models.Supplier
	if err := c.Bind(&supplier); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	if err := h.suppliersSvc.Create(c.Request().Context(), userID, tenantID, &supplier); err != nil {
		return respondError(c, err)
	}
	return common.SendCreated(c, supplier)
}

// Update handles PUT /v1/suppliers/:id.
func (h *SupplierHandlers) Update(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var supplier models.Supplier
	if err := c.Bind(&supplier); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	supplier.ID = id

	if err := h.suppliersSvc.Update(c.Request().Context(), userID, tenantID, &supplier); err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, supplier)
}

// Delete handles DELETE /v1/suppliers/:id.
func (h *SupplierHandlers) Delete(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if err := h.suppliersSvc.Delete(c.Request().Context(), userID, tenantID, id); err != nil {
		return respondError(c, err)
	}
	return common.SendMessage(c, "supplier deleted")
}
