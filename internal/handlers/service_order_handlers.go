package handlers

import (
	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/services"

	"github.com/labstack/echo/v4"
)

type ServiceOrderHandlers struct {
	ordersSvc      services.ServiceOrdersService
	attachmentsSvc services.AttachmentsService
}

func NewServiceOrderHandlers(ordersSvc services.ServiceOrdersService, attachmentsSvc services.AttachmentsService) *ServiceOrderHandlers {
	return &ServiceOrderHandlers{ordersSvc: ordersSvc, attachmentsSvc: attachmentsSvc}
}

// List handles GET /v1/service-orders.
func (h *ServiceOrderHandlers) List(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	filter := &models.ServiceOrderSearchFilter{Query: c.QueryParam("q")}
	if status := c.QueryParam("status"); status != "" {
		filter.Status = &status
	}
	if raw := c.QueryParam("customer_id"); raw != "" {
		customerID, err := common.ValidateUUID(raw, "customer_id")
		if err != nil {
			return common.SendValidationError(c, err.Error())
		}
		filter.CustomerID = &customerID
	}
	if raw := c.QueryParam("vehicle_id"); raw != "" {
		vehicleID, err := common.ValidateUUID(raw, "vehicle_id")
		if err != nil {
			return common.SendValidationError(c, err.Error())
		}
		filter.VehicleID = &vehicleID
	}
	filter.Limit, filter.Offset = pageParams(c)

	orders, total, err := h.ordersSvc.Search(c.Request().Context(), userID, tenantID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, listResponse{
		Items:      orders,
		Pagination: common.Pagination{Total: total, Limit: filter.Limit, Offset: filter.Offset},
	})
}

// Get handles GET /v1/service-orders/:id.
func (h *ServiceOrderHandlers) Get(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	order, err := h.ordersSvc.GetByID(c.Request().Context(), userID, tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, order)
}

// Create handles POST /v1/service-orders.
func (h *ServiceOrderHandlers) Create(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}

	var order models.ServiceOrder
	if err := c.Bind(&order); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	if err := h.ordersSvc.Create(c.Request().Context(), userID, tenantID, &order); err != nil {
		return respondError(c, err)
	}
	return common.SendCreated(c, order)
}

// Update handles PUT /v1/service-orders/:id.
func (h *ServiceOrderHandlers) Update(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var order models.ServiceOrder
	if err := c.Bind(&order); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}
	order.ID = id

	if err := h.ordersSvc.Update(c.Request().Context(), userID, tenantID, &order); err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, order)
}

// UpdateStatus handles PUT /v1/service-orders/:id/status.
func (h *ServiceOrderHandlers) UpdateStatus(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "invalid request format")
	}

	order, err := h.ordersSvc.UpdateStatus(c.Request().Context(), userID, tenantID, id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, order)
}

// Delete handles DELETE /v1/service-orders/:id.
func (h *ServiceOrderHandlers) Delete(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if err := h.ordersSvc.Delete(c.Request().Context(), userID, tenantID, id); err != nil {
		return respondError(c, err)
	}
	return common.SendMessage(c, "service order deleted")
}

// UploadAttachment handles POST /v1/service-orders/:id/attachments.
func (h *ServiceOrderHandlers) UploadAttachment(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, "a multipart 'file' field is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	attachment, err := h.attachmentsSvc.Upload(
		c.Request().Context(), userID, tenantID, orderID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file,
	)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendCreated(c, attachment)
}

// ListAttachments handles GET /v1/service-orders/:id/attachments.
func (h *ServiceOrderHandlers) ListAttachments(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	attachments, err := h.attachmentsSvc.List(c.Request().Context(), userID, tenantID, orderID)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, attachments)
}

// AttachmentURL handles GET /v1/attachments/:id/url.
func (h *ServiceOrderHandlers) AttachmentURL(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	attachmentID, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	url, err := h.attachmentsSvc.DownloadURL(c.Request().Context(), userID, tenantID, attachmentID)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendOK(c, map[string]string{"url": url})
}

// DeleteAttachment handles DELETE /v1/attachments/:id.
func (h *ServiceOrderHandlers) DeleteAttachment(c echo.Context) error {
	userID, tenantID, err := identity(c)
	if err != nil {
		return err
	}
	attachmentID, err := pathID(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if err := h.attachmentsSvc.Delete(c.Request().Context(), userID, tenantID, attachmentID); err != nil {
		return respondError(c, err)
	}
	return common.SendMessage(c, "attachment deleted")
}
