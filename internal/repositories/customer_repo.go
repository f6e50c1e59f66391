package repositories

import (
	"context"
	"fmt"

	"garagedesk/internal/models"

	"github.com/google/uuid"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// Search returns the matching page and the full matching count.
	Search(ctx context.Context, tenantID uuid.UUID, filter *models.CustomerSearchFilter) ([]*models.Customer, int, error)
}

type customerRepo struct {
	db DB
}

func NewCustomerRepository(db DB) CustomerRepository {
	return &customerRepo{db: db}
}

const customerColumns = `id, tenant_id, name, email, phone, document, address, status, created_at, updated_at`

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (id, tenant_id, name, email, phone, document, address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, customer.ID, customer.TenantID, customer.Name, customer.Email, customer.Phone, customer.Document, customer.Address, customer.Status)
	return err
}

func (r *customerRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE tenant_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&customer.ID, &customer.TenantID, &customer.Name, &customer.Email, &customer.Phone, &customer.Document, &customer.Address, &customer.Status, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, document = $4, address = $5, status = $6, updated_at = NOW()
		WHERE tenant_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, customer.Name, customer.Email, customer.Phone, customer.Document, customer.Address, customer.Status, customer.TenantID, customer.ID)
	return err
}

func (r *customerRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM customers WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *customerRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.CustomerSearchFilter) ([]*models.Customer, int, error) {
	where := ` FROM customers WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	argCount := 1

	if filter.Query != "" {
		argCount++
		where += fmt.Sprintf(` AND (
			name ILIKE $%d OR
			COALESCE(email, '') ILIKE $%d OR
			COALESCE(phone, '') ILIKE $%d OR
			COALESCE(document, '') ILIKE $%d
		)`, argCount, argCount, argCount, argCount)
		args = append(args, "%"+filter.Query+"%")
	}

	if filter.Status != nil {
		argCount++
		where += fmt.Sprintf(` AND status = $%d`, argCount)
		args = append(args, *filter.Status)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + customerColumns + where + fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, argCount+1, argCount+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.TenantID, &customer.Name, &customer.Email, &customer.Phone, &customer.Document, &customer.Address, &customer.Status, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return nil, 0, err
		}
		customers = append(customers, customer)
	}
	return customers, total, nil
}
