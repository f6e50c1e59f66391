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

type CustomersService interface {
	Create(ctx context.Context, userID, tenantID uuid.UUID, customer *models.Customer) error
	GetByID(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, userID, tenantID uuid.UUID, customer *models.Customer) error
	Delete(ctx context.Context, userID, tenantID, id uuid.UUID) error
	Search(ctx context.Context, userID, tenantID uuid.UUID, filter *models.CustomerSearchFilter) ([]*models.Customer, int, error)
}

type customersService struct {
	customerRepo repositories.CustomerRepository
	perms        PermissionService
}

func NewCustomersService(customerRepo repositories.CustomerRepository, perms PermissionService) CustomersService {
	return &customersService{customerRepo: customerRepo, perms: perms}
}

func (s *customersService) Create(ctx context.Context, userID, tenantID uuid.UUID, customer *models.Customer) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleCustomers, authz.ActionCreate); err != nil {
		return err
	}
	if err := validateCustomer(customer); err != nil {
		return err
	}

	customer.ID = uuid.New()
	customer.TenantID = tenantID
	if customer.Status == "" {
		customer.Status = "active"
	}
	return s.customerRepo.Create(ctx, customer)
}

func (s *customersService) GetByID(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.Customer, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleCustomers, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.customerRepo.GetByID(ctx, tenantID, id)
}

func (s *customersService) Update(ctx context.Context, userID, tenantID uuid.UUID, customer *models.Customer) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleCustomers, authz.ActionUpdate); err != nil {
		return err
	}
	if err := validateCustomer(customer); err != nil {
		return err
	}

	existing, err := s.customerRepo.GetByID(ctx, tenantID, customer.ID)
	if err != nil {
		return ErrNotFound
	}
	customer.TenantID = existing.TenantID
	return s.customerRepo.Update(ctx, customer)
}

func (s *customersService) Delete(ctx context.Context, userID, tenantID, id uuid.UUID) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleCustomers, authz.ActionDelete); err != nil {
		return err
	}
	if _, err := s.customerRepo.GetByID(ctx, tenantID, id); err != nil {
		return ErrNotFound
	}
	return s.customerRepo.Delete(ctx, tenantID, id)
}

func (s *customersService) Search(ctx context.Context, userID, tenantID uuid.UUID, filter *models.CustomerSearchFilter) ([]*models.Customer, int, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleCustomers, authz.ActionRead); err != nil {
		return nil, 0, err
	}
	if filter == nil {
		filter = &models.CustomerSearchFilter{}
	}
	filter.Query = common.SanitizeSearchQuery(filter.Query)
	filter.Limit, filter.Offset = common.NormalizePagination(filter.Limit, filter.Offset)
	return s.customerRepo.Search(ctx, tenantID, filter)
}

func validateCustomer(customer *models.Customer) error {
	if customer == nil {
		return validationError("customer payload is required")
	}
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return validationError("customer name is required")
	}
	if customer.Email != nil && *customer.Email != "" && !strings.Contains(*customer.Email, "@") {
		return validationError("invalid customer email")
	}
	return nil
}
