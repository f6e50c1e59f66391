package repositories

import (
	"context"
	"fmt"

	"garagedesk/internal/models"

	"github.com/google/uuid"
)

type InventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Search(ctx context.Context, tenantID uuid.UUID, filter *models.InventorySearchFilter) ([]*models.InventoryItem, int, error)
	// AdjustQuantity applies a signed delta to the stock count.
	AdjustQuantity(ctx context.Context, tenantID, id uuid.UUID, delta int) error
	// ListLowStock returns items at or below their minimum quantity.
	ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]*models.InventoryItem, error)
}

type inventoryRepo struct {
	db DB
}

func NewInventoryRepository(db DB) InventoryRepository {
	return &inventoryRepo{db: db}
}

const inventoryColumns = `id, tenant_id, name, sku, quantity, min_quantity, unit_cost, sale_price, created_at, updated_at`

func (r *inventoryRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, tenant_id, name, sku, quantity, min_quantity, unit_cost, sale_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.TenantID, item.Name, item.SKU, item.Quantity, item.MinQuantity, item.UnitCost, item.SalePrice)
	return err
}

func (r *inventoryRepo) scanItem(row interface{ Scan(dest ...interface{}) error }) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	err := row.Scan(&item.ID, &item.TenantID, &item.Name, &item.SKU, &item.Quantity, &item.MinQuantity, &item.UnitCost, &item.SalePrice, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *inventoryRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE tenant_id = $1 AND id = $2`
	return r.scanItem(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *inventoryRepo) Update(ctx context.Context, item *models.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $1, sku = $2, quantity = $3, min_quantity = $4, unit_cost = $5, sale_price = $6, updated_at = NOW()
		WHERE tenant_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, item.Name, item.SKU, item.Quantity, item.MinQuantity, item.UnitCost, item.SalePrice, item.TenantID, item.ID)
	return err
}

func (r *inventoryRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM inventory_items WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *inventoryRepo) AdjustQuantity(ctx context.Context, tenantID, id uuid.UUID, delta int) error {
	query := `
		UPDATE inventory_items
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, delta, tenantID, id)
	return err
}

func (r *inventoryRepo) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]*models.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items
		WHERE tenant_id = $1 AND quantity <= min_quantity
		ORDER BY quantity ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *inventoryRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.InventorySearchFilter) ([]*models.InventoryItem, int, error) {
	where := ` FROM inventory_items WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	argCount := 1

	if filter.Query != "" {
		argCount++
		where += fmt.Sprintf(` AND (name ILIKE $%d OR COALESCE(sku, '') ILIKE $%d)`, argCount, argCount)
		args = append(args, "%"+filter.Query+"%")
	}

	if filter.LowStock {
		where += ` AND quantity <= min_quantity`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + inventoryColumns + where + fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, argCount+1, argCount+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, nil
}
