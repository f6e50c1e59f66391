package handlers

import (
	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type CustomerHandlers struct {
	customersSvc services.CustomersService
}

func NewCustomerHandlers(customersSvc services.CustomersService) *CustomerHandlers {
	return &CustomerHandlers{customersSvc: customersSvc}
}

// List handles GET /v1/customers.
func (h *CustomerHandlers) List(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	filter := &models.CustomerSearchFilter{Query: c.QueryParam("q")}
	if status := c.QueryParam("status"); status != "" {
		filter.Status = &status
	}
	filter.Limit, filter.Offset = pageParams(c)

	customers, total, err := h.customersSvc.Search(c.Request().Context(), userID, tenantID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, listResponse{
		Items:      customers,
		Pagination: common.Pagination{Total: total, Limit: filter.Limit, Offset: filter.Offset},
	})
}

// Get handles GET /v1/customers/:id.
func (h *CustomerHandlers) Get(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	customer, err := h.customersSvc.GetByID(c.Request().Context(), userID, tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, customer)
}

// Create handles POST /v1/customers.
func (h *CustomerHandlers) Create(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	var customer models.Customer
	if err := c.Bind(&customer); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	if err := h.customersSvc.Create(c.Request().Context(), userID, tenantID, &customer); err != nil {
		return respondError(c, err)
	}
	return common.SendCreated(c, customer)
}

// Update handles PUT /v1/customers/:id.
func (h *CustomerHandlers) Update(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var customer models.Customer
	if err := c.Bind(&customer); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	customer.ID = id

	if err := h.customersSvc.Update(c.Request().Context(), userID, tenantID, &customer); err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, customer)
}

// Delete handles DELETE /v1/customers/:id.
func (h *CustomerHandlers) Delete(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if err := h.customersSvc.Delete(c.Request().Context(), userID, tenantID, id); err != nil {
		return respondError(c, err)
	}
	return common.SendMessage(c, "customer deleted")
}
