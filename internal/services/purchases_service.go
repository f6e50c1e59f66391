package services

import (
	"context"
	"time"

	"garagedesk/internal/authz"
	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/repositories"

	"github.com/google/uuid"
)

type PurchasesService interface {
	Create(ctx context.Context, userID, tenantID uuid.UUID, purchase *models.Purchase) error
	GetByID(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.Purchase, error)
	Update(ctx context.Context, userID, tenantID uuid.UUID, purchase *models.Purchase) error
	// Receive marks a pending purchase received and adds each item's
	// quantity to inventory stock.
	Receive(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.Purchase, error)
	Cancel(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.Purchase, error)
	Delete(ctx context.Context, userID, tenantID, id uuid.UUID) error
	Search(ctx context.Context, userID, tenantID uuid.UUID, filter *models.PurchaseSearchFilter) ([]*models.Purchase, int, error)
}

type purchasesService struct {
	purchaseRepo  repositories.PurchaseRepository
	supplierRepo  repositories.SupplierRepository
	inventoryRepo repositories.InventoryRepository
	perms         PermissionService
}

func NewPurchasesService(purchaseRepo repositories.PurchaseRepository, supplierRepo repositories.SupplierRepository, inventoryRepo repositories.InventoryRepository, perms PermissionService) PurchasesService {
	return &purchasesService{
		purchaseRepo:  purchaseRepo,
		supplierRepo:  supplierRepo,
		inventoryRepo: inventoryRepo,
		perms:         perms,
	}
}

func (s *purchasesService) Create(ctx context.Context, userID, tenantID uuid.UUID, purchase *models.Purchase) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModulePurchases, authz.ActionCreate); err != nil {
		return err
	}
	if err := s.validatePurchase(ctx, tenantID, purchase); err != nil {
		return err
	}

	purchase.ID = uuid.New()
	purchase.TenantID = tenantID
	if purchase.Status == "" {
		purchase.Status = models.PurchasePending
	}
	if purchase.PurchaseDate.IsZero() {
		purchase.PurchaseDate = time.Now()
	}

	total := 0.0
	for _, item := range purchase.Items {
		item.ID = uuid.New()
		item.PurchaseID = purchase.ID
		item.Subtotal = float64(item.Quantity) * item.UnitPrice
		total += item.Subtotal
	}
	purchase.TotalAmount = total
	purchase.ComputeFinalAmount()

	return s.purchaseRepo.CreateWithItems(ctx, purchase)
}

func (s *purchasesService) GetByID(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.Purchase, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModulePurchases, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.purchaseRepo.GetByID(ctx, tenantID, id)
}

func (s *purchasesService) Update(ctx context.Context, userID, tenantID uuid.UUID, purchase *models.Purchase) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModulePurchases, authz.ActionUpdate); err != nil {
		return err
	}

	existing, err := s.purchaseRepo.GetByID(ctx, tenantID, purchase.ID)
	if err != nil {
		return ErrNotFound
	}
	if existing.Status != models.PurchasePending {
		return validationError("only pending purchases can be edited")
	}
	if purchase.SupplierID != existing.SupplierID {
		if _, err := s.supplierRepo.GetByID(ctx, tenantID, purchase.SupplierID); err != nil {
			return validationError("supplier %s not found", purchase.SupplierID)
		}
	}
	if purchase.DiscountAmount < 0 || purchase.TaxAmount < 0 {
		return validationError("discount and tax cannot be negative")
	}

	purchase.TenantID = existing.TenantID
	purchase.Status = existing.Status
	purchase.TotalAmount = existing.TotalAmount
	purchase.ComputeFinalAmount()
	return s.purchaseRepo.Update(ctx, purchase)
}

func (s *purchasesService) Receive(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.Purchase, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModulePurchases, authz.ActionUpdate); err != nil {
		return nil, err
	}

	purchase, err := s.purchaseRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if purchase.Status != models.PurchasePending {
		return nil, validationError("purchase is %s, only pending purchases can be received", purchase.Status)
	}

	// The guarded transition and the stock deltas commit together, so a
	// concurrent or retried receive either applies everything once or
	// nothing at all.
	received, err := s.purchaseRepo.Receive(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !received {
		return nil, validationError("purchase is no longer pending")
	}

	purchase.Status = models.PurchaseReceived
	return purchase, nil
}

func (s *purchasesService) Cancel(ctx context.Context, userID, tenantID, id uuid.UUID) (*models.Purchase, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModulePurchases, authz.ActionUpdate); err != nil {
		return nil, err
	}

	purchase, err := s.purchaseRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if purchase.Status != models.PurchasePending {
		return nil, validationError("purchase is %s, only pending purchases can be cancelled", purchase.Status)
	}

	purchase.Status = models.PurchaseCancelled
	purchase.ComputeFinalAmount()
	if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *purchasesService) Delete(ctx context.Context, userID, tenantID, id uuid.UUID) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModulePurchases, authz.ActionDelete); err != nil {
		return err
	}
	purchase, err := s.purchaseRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return ErrNotFound
	}
	if purchase.Status == models.PurchaseReceived {
		return validationError("received purchases cannot be deleted")
	}
	return s.purchaseRepo.Delete(ctx, tenantID, id)
}

func (s *purchasesService) Search(ctx context.Context, userID, tenantID uuid.UUID, filter *models.PurchaseSearchFilter) ([]*models.Purchase, int, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModulePurchases, authz.ActionRead); err != nil {
		return nil, 0, err
	}
	if filter == nil {
		filter = &models.PurchaseSearchFilter{}
	}
	filter.Query = common.SanitizeSearchQuery(filter.Query)
	filter.Limit, filter.Offset = common.NormalizePagination(filter.Limit, filter.Offset)
	return s.purchaseRepo.Search(ctx, tenantID, filter)
}

func (s *purchasesService) validatePurchase(ctx context.Context, tenantID uuid.UUID, purchase *models.Purchase) error {
	if purchase == nil {
		return validationError("purchase payload is required")
	}
	if purchase.SupplierID == uuid.Nil {
		return validationError("purchase supplier_id is required")
	}
	if _, err := s.supplierRepo.GetByID(ctx, tenantID, purchase.SupplierID); err != nil {
		return validationError("supplier %s not found", purchase.SupplierID)
	}
	if len(purchase.Items) == 0 {
		return validationError("a purchase needs at least one item")
	}
	if purchase.DiscountAmount < 0 || purchase.TaxAmount < 0 {
		return validationError("discount and tax cannot be negative")
	}
	for _, item := range purchase.Items {
		if item.Quantity <= 0 {
			return validationError("purchase item quantity must be positive")
		}
		if item.UnitPrice < 0 {
			return validationError("purchase item unit price cannot be negative")
		}
		if _, err := s.inventoryRepo.GetByID(ctx, tenantID, item.InventoryItemID); err != nil {
			return validationError("inventory item %s not found", item.InventoryItemID)
		}
	}
	return nil
}
