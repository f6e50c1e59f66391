package repositories

import (
	"context"

	"garagedesk/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetTenantID returns nil when the user is not bound to a tenant yet.
	GetTenantID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// BindTenant sets the user's tenant, role and status in one statement.
	// Used when an invitation is accepted.
	BindTenant(ctx context.Context, userID, tenantID uuid.UUID, role, status string) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type userRepo struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, tenant_id, email, password_hash, full_name, role, status, created_at, updated_at`

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, tenant_id, email, password_hash, full_name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.TenantID, user.Email, user.PasswordHash, user.FullName, user.Role, user.Status)
	return err
}

func (r *userRepo) scanUser(row interface{ Scan(dest ...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.TenantID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role, &user.Status, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) GetTenantID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	var tenantID *uuid.UUID
	query := `SELECT tenant_id FROM users WHERE id = $1`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&tenantID); err != nil {
		return nil, err
	}
	return tenantID, nil
}

func (r *userRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE tenant_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET full_name = $1, role = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, user.FullName, user.Role, user.Status, user.ID)
	return err
}

func (r *userRepo) BindTenant(ctx context.Context, userID, tenantID uuid.UUID, role, status string) error {
	query := `
		UPDATE users
		SET tenant_id = $1, role = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, tenantID, role, status, userID)
	return err
}

func (r *userRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM users WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}
