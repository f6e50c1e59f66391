package services

import (
	"context"
	"strings"
	"time"

	"garagedesk/internal/authz"
	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/repositories"

	"github.com/google/uuid"
)

type VehiclesService interface {
	Create(ctx context.Context, userID, tenantID uuid.UUID, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.Vehicle, error)
	Update(ctx context.Context, userID, tenantID uuid.UUID, vehicle *models.Vehicle) error
	Delete(ctx context.Context, userID, tenantID, id uuid.UUID) error
	Search(ctx context.Context, userID, tenantID uuid.UUID, filter *models.VehicleSearchFilter) ([]*models.Vehicle, int, error)
}

type vehiclesService struct {
	vehicleRepo  repositories.VehicleRepository
	customerRepo repositories.CustomerRepository
	perms        PermissionService
}

func NewVehiclesService(vehicleRepo repositories.VehicleRepository, customerRepo repositories.CustomerRepository, perms PermissionService) VehiclesService {
	return &vehiclesService{vehicleRepo: vehicleRepo, customerRepo: customerRepo, perms: perms}
}

func (s *vehiclesService) Create(ctx context.Context, userID, tenantID uuid.UUID, vehicle *models.Vehicle) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleVehicles, authz.ActionCreate); err != nil {
		return err
	}
	if err := validateVehicle(vehicle); err != nil {
		return err
	}

	// The owning customer must exist in the same tenant.
	if _, err := s.customerRepo.GetByID(ctx, tenantID, vehicle.CustomerID); err != nil {
		return validationError("customer %s not found", vehicle.CustomerID)
	}

	vehicle.ID = uuid.New()
	vehicle.TenantID = tenantID
	return s.vehicleRepo.Create(ctx, vehicle)
}

func (s *vehiclesService) GetByID(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleVehicles, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.vehicleRepo.GetByID(ctx, tenantID, id)
}

func (s *vehiclesService) Update(ctx context.Context, userID, tenantID uuid.UUID, vehicle *models.Vehicle) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleVehicles, authz.ActionUpdate); err != nil {
		return err
	}
	if err := validateVehicle(vehicle); err != nil {
		return err
	}

	existing, err := s.vehicleRepo.GetByID(ctx, tenantID, vehicle.ID)
	if err != nil {
		return ErrNotFound
	}
	if vehicle.CustomerID != existing.CustomerID {
		if _, err := s.customerRepo.GetByID(ctx, tenantID, vehicle.CustomerID); err != nil {
			return validationError("customer %s not found", vehicle.CustomerID)
		}
	}
	vehicle.TenantID = existing.TenantID
	return s.vehicleRepo.Update(ctx, vehicle)
}

func (s *vehiclesService) Delete(ctx context.Context, userID, tenantID, id uuid.UUID) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleVehicles, authz.ActionDelete); err != nil {
		return err
	}
	if _, err := s.vehicleRepo.GetByID(ctx, tenantID, id); err != nil {
		return ErrNotFound
	}
	return s.vehicleRepo.Delete(ctx, tenantID, id)
}

func (s *vehiclesService) Search(ctx context.Context, userID, tenantID uuid.UUID, filter *models.VehicleSearchFilter) ([]*models.Vehicle, int, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleVehicles, authz.ActionRead); err != nil {
		return nil, 0, err
	}
	if filter == nil {
		filter = &models.VehicleSearchFilter{}
	}
	filter.Query = common.SanitizeSearchQuery(filter.Query)
	filter.Limit, filter.Offset = common.NormalizePagination(filter.Limit, filter.Offset)
	return s.vehicleRepo.Search(ctx, tenantID, filter)
}

func validateVehicle(vehicle *models.Vehicle) error {
	if vehicle == nil {
		return validationError("vehicle payload is required")
	}
	vehicle.Brand = strings.TrimSpace(vehicle.Brand)
	vehicle.Model = strings.TrimSpace(vehicle.Model)
	vehicle.Plate = strings.ToUpper(strings.TrimSpace(vehicle.Plate))
	if vehicle.Brand == "" || vehicle.Model == "" {
		return validationError("vehicle brand and model are required")
	}
	if vehicle.Plate == "" {
		return validationError("vehicle plate is required")
	}
	if vehicle.CustomerID == uuid.Nil {
		return validationError("vehicle customer_id is required")
	}
	if vehicle.Year != nil && (*vehicle.Year < 1900 || *vehicle.Year > time.Now().Year()+1) {
		return validationError("vehicle year out of range")
	}
	return nil
}
