package repositories

import (
	"context"
	"fmt"

	"garagedesk/internal/models"

	"github.com/google/uuid"
)

type ServiceOrderRepository interface {
	Create(ctx context.Context, order *models.ServiceOrder) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ServiceOrder, error)
	Update(ctx context.Context, order *models.ServiceOrder) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Search(ctx context.Context, tenantID uuid.UUID, filter *models.ServiceOrderSearchFilter) ([]*models.ServiceOrder, int, error)
	// NextNumber allocates the next per-tenant order number.
	NextNumber(ctx context.Context, tenantID uuid.UUID) (int, error)
}

type serviceOrderRepo struct {
	db DB
}

func NewServiceOrderRepository(db DB) ServiceOrderRepository {
	return &serviceOrderRepo{db: db}
}

const serviceOrderColumns = `id, tenant_id, customer_id, vehicle_id, number, description, status, labor_amount, parts_amount, total_amount, created_at, updated_at`

func (r *serviceOrderRepo) Create(ctx context.Context, order *models.ServiceOrder) error {
	query := `
		INSERT INTO service_orders (id, tenant_id, customer_id, vehicle_id, number, description, status, labor_amount, parts_amount, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.TenantID, order.CustomerID, order.VehicleID, order.Number, order.Description, order.Status, order.LaborAmount, order.PartsAmount, order.TotalAmount)
	return err
}

func (r *serviceOrderRepo) scanOrder(row interface{ Scan(dest ...interface{}) error }) (*models.ServiceOrder, error) {
	order := &models.ServiceOrder{}
	err := row.Scan(&order.ID, &order.TenantID, &order.CustomerID, &order.VehicleID, &order.Number, &order.Description, &order.Status, &order.LaborAmount, &order.PartsAmount, &order.TotalAmount, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *serviceOrderRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ServiceOrder, error) {
	query := `SELECT ` + serviceOrderColumns + ` FROM service_orders WHERE tenant_id = $1 AND id = $2`
	return r.scanOrder(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *serviceOrderRepo) Update(ctx context.Context, order *models.ServiceOrder) error {
	query := `
		UPDATE service_orders
		SET customer_id = $1, vehicle_id = $2, description = $3, status = $4,
		    labor_amount = $5, parts_amount = $6, total_amount = $7, updated_at = NOW()
		WHERE tenant_id = $8 AND id = $9
	`
	_, err := r.db.Exec(ctx, query, order.CustomerID, order.VehicleID, order.Description, order.Status, order.LaborAmount, order.PartsAmount, order.TotalAmount, order.TenantID, order.ID)
	return err
}

func (r *serviceOrderRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM service_orders WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *serviceOrderRepo) NextNumber(ctx context.Context, tenantID uuid.UUID) (int, error) {
	// Concurrent allocations can return the same value; the unique index on
	// (tenant_id, number) rejects the loser and the caller retries.
	var next int
	query := `SELECT COALESCE(MAX(number), 0) + 1 FROM service_orders WHERE tenant_id = $1`
	if err := r.db.QueryRow(ctx, query, tenantID).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

func (r *serviceOrderRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.ServiceOrderSearchFilter) ([]*models.ServiceOrder, int, error) {
	where := ` FROM service_orders WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	argCount := 1

	if filter.Query != "" {
		argCount++
		where += fmt.Sprintf(` AND (description ILIKE $%d OR CAST(number AS TEXT) ILIKE $%d)`, argCount, argCount)
		args = append(args, "%"+filter.Query+"%")
	}

	if filter.Status != nil {
		argCount++
		where += fmt.Sprintf(` AND status = $%d`, argCount)
		args = append(args, *filter.Status)
	}

	if filter.CustomerID != nil {
		argCount++
		where += fmt.Sprintf(` AND customer_id = $%d`, argCount)
		args = append(args, *filter.CustomerID)
	}

	if filter.VehicleID != nil {
		argCount++
		where += fmt.Sprintf(` AND vehicle_id = $%d`, argCount)
		args = append(args, *filter.VehicleID)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + serviceOrderColumns + where + fmt.Sprintf(` ORDER BY number DESC LIMIT $%d OFFSET $%d`, argCount+1, argCount+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*models.ServiceOrder
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	return orders, total, nil
}
