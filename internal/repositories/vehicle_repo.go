package repositories

import (
	"context"
	"fmt"

	"garagedesk/internal/models"

	"github.com/google/uuid"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Search(ctx context.Context, tenantID uuid.UUID, filter *models.VehicleSearchFilter) ([]*models.Vehicle, int, error)
}

type vehicleRepo struct {
	db DB
}

func NewVehicleRepository(db DB) VehicleRepository {
	return &vehicleRepo{db: db}
}

const vehicleColumns = `id, tenant_id, customer_id, brand, model, plate, year, color, mileage, created_at, updated_at`

func (r *vehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, tenant_id, customer_id, brand, model, plate, year, color, mileage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, vehicle.ID, vehicle.TenantID, vehicle.CustomerID, vehicle.Brand, vehicle.Model, vehicle.Plate, vehicle.Year, vehicle.Color, vehicle.Mileage)
	return err
}

func (r *vehicleRepo) scanVehicle(row interface{ Scan(dest ...interface{}) error }) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	err := row.Scan(&vehicle.ID, &vehicle.TenantID, &vehicle.CustomerID, &vehicle.Brand, &vehicle.Model, &vehicle.Plate, &vehicle.Year, &vehicle.Color, &vehicle.Mileage, &vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (r *vehicleRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE tenant_id = $1 AND id = $2`
	return r.scanVehicle(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *vehicleRepo) Update(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		UPDATE vehicles
		SET customer_id = $1, brand = $2, model = $3, plate = $4, year = $5, color = $6, mileage = $7, updated_at = NOW()
		WHERE tenant_id = $8 AND id = $9
	`
	_, err := r.db.Exec(ctx, query, vehicle.CustomerID, vehicle.Brand, vehicle.Model, vehicle.Plate, vehicle.Year, vehicle.Color, vehicle.Mileage, vehicle.TenantID, vehicle.ID)
	return err
}

func (r *vehicleRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM vehicles WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *vehicleRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.VehicleSearchFilter) ([]*models.Vehicle, int, error) {
	where := ` FROM vehicles WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	argCount := 1

	if filter.Query != "" {
		argCount++
		where += fmt.Sprintf(` AND (brand ILIKE $%d OR model ILIKE $%d OR plate ILIKE $%d)`, argCount, argCount, argCount)
		args = append(args, "%"+filter.Query+"%")
	}

	if filter.CustomerID != nil {
		argCount++
		where += fmt.Sprintf(` AND customer_id = $%d`, argCount)
		args = append(args, *filter.CustomerID)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + vehicleColumns + where + fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argCount+1, argCount+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		vehicle, err := r.scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, total, nil
}
