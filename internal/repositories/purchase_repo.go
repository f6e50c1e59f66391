package repositories

import (
	"context"
	"fmt"

	"garagedesk/internal/models"

	"github.com/google/uuid"
)

type PurchaseRepository interface {
	// CreateWithItems inserts the purchase and its items in one transaction.
	CreateWithItems(ctx context.Context, purchase *models.Purchase) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Purchase, error)
	Update(ctx context.Context, purchase *models.Purchase) error
	// Receive marks a pending purchase received and adds each item's
	// quantity to inventory stock in one transaction. Reports whether the
	// row was still pending; the WHERE guard means a concurrent or retried
	// receive can never double-apply the stock.
	Receive(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Search(ctx context.Context, tenantID uuid.UUID, filter *models.PurchaseSearchFilter) ([]*models.Purchase, int, error)
	ListItems(ctx context.Context, purchaseID uuid.UUID) ([]*models.PurchaseItem, error)
}

type purchaseRepo struct {
	db DB
}

func NewPurchaseRepository(db DB) PurchaseRepository {
	return &purchaseRepo{db: db}
}

const purchaseColumns = `id, tenant_id, supplier_id, invoice_number, total_amount, discount_amount, tax_amount, final_amount, status, purchase_date, notes, created_at, updated_at`

func (r *purchaseRepo) CreateWithItems(ctx context.Context, purchase *models.Purchase) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insertPurchase := `
		INSERT INTO purchases (id, tenant_id, supplier_id, invoice_number, total_amount, discount_amount, tax_amount, final_amount, status, purchase_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, insertPurchase, purchase.ID, purchase.TenantID, purchase.SupplierID, purchase.InvoiceNumber, purchase.TotalAmount, purchase.DiscountAmount, purchase.TaxAmount, purchase.FinalAmount, purchase.Status, purchase.PurchaseDate, purchase.Notes); err != nil {
		return err
	}

	insertItem := `
		INSERT INTO purchase_items (id, purchase_id, inventory_item_id, quantity, unit_price, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	for _, item := range purchase.Items {
		if _, err := tx.Exec(ctx, insertItem, item.ID, item.PurchaseID, item.InventoryItemID, item.Quantity, item.UnitPrice, item.Subtotal); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *purchaseRepo) scanPurchase(row interface{ Scan(dest ...interface{}) error }) (*models.Purchase, error) {
	purchase := &models.Purchase{}
	err := row.Scan(&purchase.ID, &purchase.TenantID, &purchase.SupplierID, &purchase.InvoiceNumber, &purchase.TotalAmount, &purchase.DiscountAmount, &purchase.TaxAmount, &purchase.FinalAmount, &purchase.Status, &purchase.PurchaseDate, &purchase.Notes, &purchase.CreatedAt, &purchase.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

func (r *purchaseRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE tenant_id = $1 AND id = $2`
	purchase, err := r.scanPurchase(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, err
	}

	items, err := r.ListItems(ctx, purchase.ID)
	if err != nil {
		return nil, err
	}
	purchase.Items = items
	return purchase, nil
}

func (r *purchaseRepo) Update(ctx context.Context, purchase *models.Purchase) error {
	query := `
		UPDATE purchases
		SET supplier_id = $1, invoice_number = $2, total_amount = $3, discount_amount = $4,
		    tax_amount = $5, final_amount = $6, status = $7, purchase_date = $8, notes = $9, updated_at = NOW()
		WHERE tenant_id = $10 AND id = $11
	`
	_, err := r.db.Exec(ctx, query, purchase.SupplierID, purchase.InvoiceNumber, purchase.TotalAmount, purchase.DiscountAmount, purchase.TaxAmount, purchase.FinalAmount, purchase.Status, purchase.PurchaseDate, purchase.Notes, purchase.TenantID, purchase.ID)
	return err
}

func (r *purchaseRepo) Receive(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	mark := `
		UPDATE purchases
		SET status = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3 AND status = $4
	`
	tag, err := tx.Exec(ctx, mark, models.PurchaseReceived, tenantID, id, models.PurchasePending)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	applyStock := `
		UPDATE inventory_items i
		SET quantity = i.quantity + pi.quantity, updated_at = NOW()
		FROM purchase_items pi
		WHERE pi.purchase_id = $1 AND pi.inventory_item_id = i.id AND i.tenant_id = $2
	`
	if _, err := tx.Exec(ctx, applyStock, id, tenantID); err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

func (r *purchaseRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM purchases WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *purchaseRepo) ListItems(ctx context.Context, purchaseID uuid.UUID) ([]*models.PurchaseItem, error) {
	query := `
		SELECT id, purchase_id, inventory_item_id, quantity, unit_price, subtotal, created_at
		FROM purchase_items
		WHERE purchase_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.PurchaseItem
	for rows.Next() {
		item := &models.PurchaseItem{}
		if err := rows.Scan(&item.ID, &item.PurchaseID, &item.InventoryItemID, &item.Quantity, &item.UnitPrice, &item.Subtotal, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *purchaseRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.PurchaseSearchFilter) ([]*models.Purchase, int, error) {
	where := ` FROM purchases p WHERE p.tenant_id = $1`
	args := []interface{}{tenantID}
	argCount := 1

	if filter.Query != "" {
		argCount++
		where += fmt.Sprintf(` AND (
			COALESCE(p.invoice_number, '') ILIKE $%d OR
			COALESCE(p.notes, '') ILIKE $%d OR
			EXISTS (
				SELECT 1 FROM suppliers s
				WHERE s.tenant_id = p.tenant_id AND s.id = p.supplier_id AND s.name ILIKE $%d
			)
		)`, argCount, argCount, argCount)
		args = append(args, "%"+filter.Query+"%")
	}

	if filter.Status != nil {
		argCount++
		where += fmt.Sprintf(` AND p.status = $%d`, argCount)
		args = append(args, *filter.Status)
	}

	if filter.SupplierID != nil {
		argCount++
		where += fmt.Sprintf(` AND p.supplier_id = $%d`, argCount)
		args = append(args, *filter.SupplierID)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	cols := `p.id, p.tenant_id, p.supplier_id, p.invoice_number, p.total_amount, p.discount_amount, p.tax_amount, p.final_amount, p.status, p.purchase_date, p.notes, p.created_at, p.updated_at`
	query := `SELECT ` + cols + where + fmt.Sprintf(` ORDER BY p.purchase_date DESC LIMIT $%d OFFSET $%d`, argCount+1, argCount+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		purchase, err := r.scanPurchase(rows)
		if err != nil {
			return nil, 0, err
		}
		purchases = append(purchases, purchase)
	}
	return purchases, total, nil
}
