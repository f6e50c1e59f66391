package repositories

import (
	"context"
	"errors"

	"garagedesk/internal/models"

	"github.com/google/uuid"
)

// ErrUserAlreadyBound is returned by CreateWithOwner when another call bound
// the user to a tenant first. The caller re-reads the winning binding.
var ErrUserAlreadyBound = errors.New("user is already bound to a tenant")

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	// CreateWithOwner inserts the tenant and binds it to the user in one
	// transaction. The guarded update keeps concurrent resolvers from
	// creating a second tenant for the same user.
	CreateWithOwner(ctx context.Context, tenant *models.Tenant, userID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	ListActive(ctx context.Context, limit, offset int) ([]*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tenantRepo struct {
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, business_name, contact_email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, tenant.ID, tenant.Name, tenant.BusinessName, tenant.ContactEmail, tenant.Status)
	return err
}

func (r *tenantRepo) CreateWithOwner(ctx context.Context, tenant *models.Tenant, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insertTenant := `
		INSERT INTO tenants (id, name, business_name, contact_email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, insertTenant, tenant.ID, tenant.Name, tenant.BusinessName, tenant.ContactEmail, tenant.Status); err != nil {
		return err
	}

	bindUser := `
		UPDATE users
		SET tenant_id = $1, updated_at = NOW()
		WHERE id = $2 AND tenant_id IS NULL
	`
	tag, err := tx.Exec(ctx, bindUser, tenant.ID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Lost the race: rolling back also discards the tenant insert.
		return ErrUserAlreadyBound
	}

	return tx.Commit(ctx)
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, name, business_name, contact_email, status, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&tenant.ID, &tenant.Name, &tenant.BusinessName, &tenant.ContactEmail, &tenant.Status, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) ListActive(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	query := `
		SELECT id, name, business_name, contact_email, status, created_at, updated_at
		FROM tenants
		WHERE status = 'active'
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant := &models.Tenant{}
		if err := rows.Scan(&tenant.ID, &tenant.Name, &tenant.BusinessName, &tenant.ContactEmail, &tenant.Status, &tenant.CreatedAt, &tenant.UpdatedAt); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $1, business_name = $2, contact_email = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, tenant.Name, tenant.BusinessName, tenant.ContactEmail, tenant.Status, tenant.ID)
	return err
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tenants WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
