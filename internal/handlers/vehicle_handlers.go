package handlers

import (
	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type VehicleHandlers struct {
	vehiclesSvc services.VehiclesService
}

func NewVehicleHandlers(vehiclesSvc services.VehiclesService) *VehicleHandlers {
	return &VehicleHandlers{vehiclesSvc: vehiclesSvc}
}

// List handles GET /v1/vehicles.
func (h *VehicleHandlers) List(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	filter := &models.VehicleSearchFilter{Query: c.QueryParam("q")}
	if raw := c.QueryParam("customer_id"); raw != "" {
		customerID, err := common.ValidateUUID(raw, "customer_id")
		if err != nil {
			return common.SendValidationError(c, err.Error())
		}
		filter.CustomerID = &customerID
	}
	filter.Limit, filter.Offset = pageParams(c)

	vehicles, total, err := h.vehiclesSvc.Search(c.Request().Context(), userID, tenantID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, listResponse{
		Items:      vehicles,
		Pagination: common.Pagination{Total: total, Limit: filter.Limit, Offset: filter.Offset},
	})
}

// Get handles GET /v1/vehicles/:id.
func (h *VehicleHandlers) Get(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	vehicle, err := h.vehiclesSvc.GetByID(c.Request().Context(), userID, tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, vehicle)
}

// Create handles POST /v1/vehicles.
func (h *VehicleHandlers) Create(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	var vehicle models.Vehicle
	if err := c.Bind(&vehicle); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	if err := h.vehiclesSvc.Create(c.Request().Context(), userID, tenantID, &vehicle); err != nil {
		return respondError(c, err)
	}
	return common.SendCreated(c, vehicle)
}

// Update handles PUT /v1/vehicles/:id.
func (h *VehicleHandlers) Update(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var vehicle models.Vehicle
	if err := c.Bind(&vehicle); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	vehicle.ID = id

	if err := h.vehiclesSvc.Update(c.Request().Context(), userID, tenantID, &vehicle); err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, vehicle)
}

// Delete handles DELETE /v1/vehicles/:id.
func (h *VehicleHandlers) Delete(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if err := h.vehiclesSvc.Delete(c.Request().Context(), userID, tenantID, id); err != nil {
		return respondError(c, err)
	}
	return common.SendMessage(c, "vehicle deleted")
}
