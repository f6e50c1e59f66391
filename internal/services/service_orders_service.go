package services

import (
	"context"
	"strings"

	"garagedesk/internal/authz"
	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/repositories"

	"github.com/google/uuid"
)

type ServiceOrdersService interface {
	Create(ctx context.Context, userID, tenantID uuid.UUID, order *models.ServiceOrder) error
	GetByID(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.ServiceOrder, error)
	Update(ctx context.Context, userID, tenantID uuid.UUID, order *models.ServiceOrder) error
	UpdateStatus(ctx context.Context, userID, tenantID, id uuid.UUID, status string) (*models.ServiceOrder, error)
	Delete(ctx context.Context, userID, tenantID, id uuid.UUID) error
	Search(ctx context.Context, userID, tenantID uuid.UUID, filter *models.ServiceOrderSearchFilter) ([]*models.ServiceOrder, int, error)
}

type serviceOrdersService struct {
	orderRepo    repositories.ServiceOrderRepository
	customerRepo repositories.CustomerRepository
	vehicleRepo  repositories.VehicleRepository
	perms        PermissionService
}

func NewServiceOrdersService(orderRepo repositories.ServiceOrderRepository, customerRepo repositories.CustomerRepository, vehicleRepo repositories.VehicleRepository, perms PermissionService) ServiceOrdersService {
	return &serviceOrdersService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		perms:        perms,
	}
}

func (s *serviceOrdersService) Create(ctx context.Context, userID, tenantID uuid.UUID, order *models.ServiceOrder) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleServiceOrders, authz.ActionCreate); err != nil {
		return err
	}
	if err := s.validateOrder(ctx, tenantID, order); err != nil {
		return err
	}

	order.ID = uuid.New()
	order.TenantID = tenantID
	if order.Status == "" {
		order.Status = models.ServiceOrderOpen
	}
	order.TotalAmount = order.LaborAmount + order.PartsAmount

	// Numbers are MAX+1 per tenant; the unique index on (tenant_id, number)
	// catches concurrent allocations, so reallocate and retry on conflict.
	for attempt := 0; ; attempt++ {
		number, err := s.orderRepo.NextNumber(ctx, tenantID)
		if err != nil {
			return err
		}
		order.Number = number

		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			return nil
		}
		if attempt == 2 || !repositories.IsUniqueViolation(err) {
			return err
		}
	}
}

func (s *serviceOrdersService) GetByID(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.ServiceOrder, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleServiceOrders, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, tenantID, id)
}

func (s *serviceOrdersService) Update(ctx context.Context, userID, tenantID uuid.UUID, order *models.ServiceOrder) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleServiceOrders, authz.ActionUpdate); err != nil {
		return err
	}
	if err := s.validateOrder(ctx, tenantID, order); err != nil {
		return err
	}

	existing, err := s.orderRepo.GetByID(ctx, tenantID, order.ID)
	if err != nil {
		return ErrNotFound
	}

	// The number is allocated once at creation and never reassigned, and
	// status only moves through UpdateStatus, so a generic update can never
	// thaw a completed or cancelled order.
	order.TenantID = existing.TenantID
	order.Number = existing.Number
	order.Status = existing.Status
	order.TotalAmount = order.LaborAmount + order.PartsAmount
	return s.orderRepo.Update(ctx, order)
}

func (s *serviceOrdersService) UpdateStatus(ctx context.Context, userID, tenantID, id uuid.UUID, status string) (*models.ServiceOrder, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleServiceOrders, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if !models.ValidServiceOrderStatus(status) {
		return nil, validationError("unknown service order status %q", status)
	}

	order, err := s.orderRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if order.Status == models.ServiceOrderCancelled || order.Status == models.ServiceOrderCompleted {
		return nil, validationError("service order #%d is %s and cannot change status", order.Number, order.Status)
	}

	order.Status = status
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *serviceOrdersService) Delete(ctx context.Context, userID, tenantID, id uuid.UUID) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleServiceOrders, authz.ActionDelete); err != nil {
		return err
	}
	if _, err := s.orderRepo.GetByID(ctx, tenantID, id); err != nil {
		return ErrNotFound
	}
	return s.orderRepo.Delete(ctx, tenantID, id)
}

func (s *serviceOrdersService) Search(ctx context.Context, userID, tenantID uuid.UUID, filter *models.ServiceOrderSearchFilter) ([]*models.ServiceOrder, int, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleServiceOrders, authz.ActionRead); err != nil {
		return nil, 0, err
	}
	if filter == nil {
		filter = &models.ServiceOrderSearchFilter{}
	}
	if filter.Status != nil && !models.ValidServiceOrderStatus(*filter.Status) {
		return nil, 0, validationError("unknown service order status %q", *filter.Status)
	}
	filter.Query = common.SanitizeSearchQuery(filter.Query)
	filter.Limit, filter.Offset = common.NormalizePagination(filter.Limit, filter.Offset)
	return s.orderRepo.Search(ctx, tenantID, filter)
}

func (s *serviceOrdersService) validateOrder(ctx context.Context, tenantID uuid.UUID, order *models.ServiceOrder) error {
	if order == nil {
		return validationError("service order payload is required")
	}
	order.Description = strings.TrimSpace(order.Description)
	if order.Description == "" {
		return validationError("service order description is required")
	}
	if order.LaborAmount < 0 || order.PartsAmount < 0 {
		return validationError("amounts cannot be negative")
	}
	if order.Status != "" && !models.ValidServiceOrderStatus(order.Status) {
		return validationError("unknown service order status %q", order.Status)
	}

	if order.CustomerID == uuid.Nil {
		return validationError("service order customer_id is required")
	}
	if _, err := s.customerRepo.GetByID(ctx, tenantID, order.CustomerID); err != nil {
		return validationError("customer %s not found", order.CustomerID)
	}
	if order.VehicleID == uuid.Nil {
		return validationError("service order vehicle_id is required")
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, tenantID, order.VehicleID)
	if err != nil {
		return validationError("vehicle %s not found", order.VehicleID)
	}
	if vehicle.CustomerID != order.CustomerID {
		return validationError("vehicle %s does not belong to customer %s", order.VehicleID, order.CustomerID)
	}
	return nil
}
