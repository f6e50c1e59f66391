package repositories

import (
	"context"
	"fmt"

	"garagedesk/internal/models"

	"github.com/google/uuid"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Supplier, error)
	GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Search(ctx context.Context, tenantID uuid.UUID, filter *models.SupplierSearchFilter) ([]*models.Supplier, int, error)
}

type supplierRepo struct {
	db DB
}

func NewSupplierRepository(db DB) SupplierRepository {
	return &supplierRepo{db: db}
}

const supplierColumns = `id, tenant_id, name, contact_email, contact_phone, document, address, created_at, updated_at`

func (r *supplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (id, tenant_id, name, contact_email, contact_phone, document, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, supplier.ID, supplier.TenantID, supplier.Name, supplier.ContactEmail, supplier.ContactPhone, supplier.Document, supplier.Address)
	return err
}

func (r *supplierRepo) scanSupplier(row interface{ Scan(dest ...interface{}) error }) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	err := row.Scan(&supplier.ID, &supplier.TenantID, &supplier.Name, &supplier.ContactEmail, &supplier.ContactPhone, &supplier.Document, &supplier.Address, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

func (r *supplierRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE tenant_id = $1 AND id = $2`
	return r.scanSupplier(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *supplierRepo) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE tenant_id = $1 AND name = $2`
	return r.scanSupplier(r.db.QueryRow(ctx, query, tenantID, name))
}

func (r *supplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, contact_email = $2, contact_phone = $3, document = $4, address = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, supplier.Name, supplier.ContactEmail, supplier.ContactPhone, supplier.Document, supplier.Address, supplier.TenantID, supplier.ID)
	return err
}

func (r *supplierRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM suppliers WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *supplierRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.SupplierSearchFilter) ([]*models.Supplier, int, error) {
	where := ` FROM suppliers WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	argCount := 1

	if filter.Query != "" {
		argCount++
		where += fmt.Sprintf(` AND (
			name ILIKE $%d OR
			COALESCE(contact_email, '') ILIKE $%d OR
			COALESCE(document, '') ILIKE $%d
		)`, argCount, argCount, argCount)
		args = append(args, "%"+filter.Query+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + supplierColumns + where + fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, argCount+1, argCount+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		supplier, err := r.scanSupplier(rows)
		if err != nil {
			return nil, 0, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, total, nil
}
