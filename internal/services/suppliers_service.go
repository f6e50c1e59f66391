package services

import (
	"context"
	"errors"
	"strings"

	"garagedesk/internal/authz"
	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SuppliersService interface {
	Create(ctx context.Context, userID, tenantID uuid.UUID, supplier *models.Supplier) error
	GetByID(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, userID, tenantID uuid.UUID, supplier *models.Supplier) error
	Delete(ctx context.Context, userID, tenantID, id uuid.UUID) error
	Search(ctx context.Context, userID, tenantID uuid.UUID, filter *models.SupplierSearchFilter) ([]*models.Supplier, int, error)
}

type suppliersService struct {
	supplierRepo repositories.SupplierRepository
	perms        PermissionService
}

func NewSuppliersService(supplierRepo repositories.SupplierRepository, perms PermissionService) SuppliersService {
	return &suppliersService{supplierRepo: supplierRepo, perms: perms}
}

func (s *suppliersService) Create(ctx context.Context, userID, tenantID uuid.UUID, supplier *models.Supplier) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleSuppliers, authz.ActionCreate); err != nil {
		return err
	}
	if err := validateSupplier(supplier); err != nil {
		return err
	}

	existing, err := s.supplierRepo.GetByName(ctx, tenantID, supplier.Name)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if existing != nil {
		return validationError("supplier %q already exists", supplier.Name)
	}

	supplier.ID = uuid.New()
	supplier.TenantID = tenantID
	return s.supplierRepo.Create(ctx, supplier)
}

func (s *suppliersService) GetByID(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.Supplier, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleSuppliers, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.supplierRepo.GetByID(ctx, tenantID, id)
}

func (s *suppliersService) Update(ctx context.Context, userID, tenantID uuid.UUID, supplier *models.Supplier) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleSuppliers, authz.ActionUpdate); err != nil {
		return err
	}
	if err := validateSupplier(supplier); err != nil {
		return err
	}

	existing, err := s.supplierRepo.GetByID(ctx, tenantID, supplier.ID)
	if err != nil {
		return ErrNotFound
	}
	supplier.TenantID = existing.TenantID
	return s.supplierRepo.Update(ctx, supplier)
}

func (s *suppliersService) Delete(ctx context.Context, userID, tenantID, id uuid.UUID) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleSuppliers, authz.ActionDelete); err != nil {
		return err
	}
	if _, err := s.supplierRepo.GetByID(ctx, tenantID, id); err != nil {
		return ErrNotFound
	}
	return s.supplierRepo.Delete(ctx, tenantID, id)
}

func (s *suppliersService) Search(ctx context.Context, userID, tenantID uuid.UUID, filter *models.SupplierSearchFilter) ([]*models.Supplier, int, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleSuppliers, authz.ActionRead); err != nil {
		return nil, 0, err
	}
	if filter == nil {
		filter = &models.SupplierSearchFilter{}
	}
	filter.Query = common.SanitizeSearchQuery(filter.Query)
	filter.Limit, filter.Offset = common.NormalizePagination(filter.Limit, filter.Offset)
	return s.supplierRepo.Search(ctx, tenantID, filter)
}

func validateSupplier(supplier *models.Supplier) error {
	if supplier == nil {
		return validationError("supplier payload is required")
	}
	supplier.Name = strings.TrimSpace(supplier.Name)
	if supplier.Name == "" {
		return validationError("supplier name is required")
	}
	return nil
}
