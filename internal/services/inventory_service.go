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

type InventoryService interface {
	Create(ctx context.Context, userID, tenantID uuid.UUID, item *models.InventoryItem) error
	GetByID(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.InventoryItem, error)
	Update(ctx context.Context, userID, tenantID uuid.UUID, item *models.InventoryItem) error
	Delete(ctx context.Context, userID, tenantID, id uuid.UUID) error
	Search(ctx context.Context, userID, tenantID uuid.UUID, filter *models.InventorySearchFilter) ([]*models.InventoryItem, int, error)
	// AdjustQuantity applies a signed stock delta; the result may not go
	// negative.
	AdjustQuantity(ctx context.Context, userID, tenantID, id uuid.UUID, delta int) (*models.InventoryItem, error)
	ListLowStock(ctx context.Context, userID, tenantID uuid.UUID) ([]*models.InventoryItem, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	perms         PermissionService
}

func NewInventoryService(inventoryRepo repositories.InventoryRepository, perms PermissionService) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo, perms: perms}
}

func (s *inventoryService) Create(ctx context.Context, userID, tenantID uuid.UUID, item *models.InventoryItem) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleInventory, authz.ActionCreate); err != nil {
		return err
	}
	if err := validateInventoryItem(item); err != nil {
		return err
	}

	item.ID = uuid.New()
	item.TenantID = tenantID
	return s.inventoryRepo.Create(ctx, item)
}

func (s *inventoryService) GetByID(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.InventoryItem, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleInventory, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.inventoryRepo.GetByID(ctx, tenantID, id)
}

func (s *inventoryService) Update(ctx context.Context, userID, tenantID uuid.UUID, item *models.InventoryItem) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleInventory, authz.ActionUpdate); err != nil {
		return err
	}
	if err := validateInventoryItem(item); err != nil {
		return err
	}

	existing, err := s.inventoryRepo.GetByID(ctx, tenantID, item.ID)
	if err != nil {
		return ErrNotFound
	}
	item.TenantID = existing.TenantID
	return s.inventoryRepo.Update(ctx, item)
}

func (s *inventoryService) Delete(ctx context.Context, userID, tenantID, id uuid.UUID) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleInventory, authz.ActionDelete); err != nil {
		return err
	}
	if _, err := s.inventoryRepo.GetByID(ctx, tenantID, id); err != nil {
		return ErrNotFound
	}
	return s.inventoryRepo.Delete(ctx, tenantID, id)
}

func (s *inventoryService) Search(ctx context.Context, userID, tenantID uuid.UUID, filter *models.InventorySearchFilter) ([]*models.InventoryItem, int, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleInventory, authz.ActionRead); err != nil {
		return nil, 0, err
	}
	if filter == nil {
		filter = &models.InventorySearchFilter{}
	}
	filter.Query = common.SanitizeSearchQuery(filter.Query)
	filter.Limit, filter.Offset = common.NormalizePagination(filter.Limit, filter.Offset)
	return s.inventoryRepo.Search(ctx, tenantID, filter)
}

func (s *inventoryService) AdjustQuantity(ctx context.Context, userID, tenantID, id uuid.UUID, delta int) (*models.InventoryItem, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleInventory, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if delta == 0 {
		return nil, validationError("quantity delta cannot be zero")
	}

	item, err := s.inventoryRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if item.Quantity+delta < 0 {
		return nil, validationError("adjustment would leave %q with negative stock", item.Name)
	}

	if err := s.inventoryRepo.AdjustQuantity(ctx, tenantID, id, delta); err != nil {
		return nil, err
	}
	item.Quantity += delta
	return item, nil
}

func (s *inventoryService) ListLowStock(ctx context.Context, userID, tenantID uuid.UUID) ([]*models.InventoryItem, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleInventory, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.inventoryRepo.ListLowStock(ctx, tenantID)
}

func validateInventoryItem(item *models.InventoryItem) error {
	if item == nil {
		return validationError("inventory item payload is required")
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return validationError("inventory item name is required")
	}
	if item.Quantity < 0 {
		return validationError("inventory quantity cannot be negative")
	}
	if item.MinQuantity < 0 {
		return validationError("inventory min_quantity cannot be negative")
	}
	if item.UnitCost < 0 || item.SalePrice < 0 {
		return validationError("inventory prices cannot be negative")
	}
	return nil
}
