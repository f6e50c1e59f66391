package repositories

import (
	"context"

	"garagedesk/internal/authz"
	"garagedesk/internal/models"

	"github.com/google/uuid"
)

type ModulePermissionRepository interface {
	GetByUserAndModule(ctx context.Context, userID uuid.UUID, module string) (*models.ModulePermission, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.ModulePermission, error)
	Upsert(ctx context.Context, perm *models.ModulePermission) error
	// GrantAll idempotently creates full-access rows for every module. Used
	// to initialize owners; existing rows are left untouched.
	GrantAll(ctx context.Context, userID uuid.UUID, modules []string) error
	// ReplaceForUser swaps the user's whole matrix for the given snapshot in
	// one transaction. Used when an invitation is accepted.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, perms map[string]authz.ActionSet) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type modulePermissionRepo struct {
	db DB
}

func NewModulePermissionRepository(db DB) ModulePermissionRepository {
	return &modulePermissionRepo{db: db}
}

const modulePermissionColumns = `id, user_id, module, can_create, can_read, can_update, can_delete, created_at, updated_at`

func (r *modulePermissionRepo) GetByUserAndModule(ctx context.Context, userID uuid.UUID, module string) (*models.ModulePermission, error) {
	perm := &models.ModulePermission{}
	query := `
		SELECT ` + modulePermissionColumns + `
		FROM module_permissions
		WHERE user_id = $1 AND module = $2
	`
	err := r.db.QueryRow(ctx, query, userID, module).Scan(&perm.ID, &perm.UserID, &perm.Module, &perm.CanCreate, &perm.CanRead, &perm.CanUpdate, &perm.CanDelete, &perm.CreatedAt, &perm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return perm, nil
}

func (r *modulePermissionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.ModulePermission, error) {
	query := `
		SELECT ` + modulePermissionColumns + `
		FROM module_permissions
		WHERE user_id = $1
		ORDER BY module ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []*models.ModulePermission
	for rows.Next() {
		perm := &models.ModulePermission{}
		if err := rows.Scan(&perm.ID, &perm.UserID, &perm.Module, &perm.CanCreate, &perm.CanRead, &perm.CanUpdate, &perm.CanDelete, &perm.CreatedAt, &perm.UpdatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, perm)
	}
	return perms, nil
}

func (r *modulePermissionRepo) Upsert(ctx context.Context, perm *models.ModulePermission) error {
	query := `
		INSERT INTO module_permissions (id, user_id, module, can_create, can_read, can_update, can_delete, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (user_id, module) DO UPDATE
		SET can_create = EXCLUDED.can_create, can_read = EXCLUDED.can_read,
		    can_update = EXCLUDED.can_update, can_delete = EXCLUDED.can_delete,
		    updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, perm.ID, perm.UserID, perm.Module, perm.CanCreate, perm.CanRead, perm.CanUpdate, perm.CanDelete)
	return err
}

func (r *modulePermissionRepo) GrantAll(ctx context.Context, userID uuid.UUID, modules []string) error {
	query := `
		INSERT INTO module_permissions (id, user_id, module, can_create, can_read, can_update, can_delete, created_at, updated_at)
		VALUES ($1, $2, $3, true, true, true, true, NOW(), NOW())
		ON CONFLICT (user_id, module) DO NOTHING
	`
	for _, module := range modules {
		if _, err := r.db.Exec(ctx, query, uuid.New(), userID, module); err != nil {
			return err
		}
	}
	return nil
}

func (r *modulePermissionRepo) ReplaceForUser(ctx context.Context, userID uuid.UUID, perms map[string]authz.ActionSet) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM module_permissions WHERE user_id = $1`, userID); err != nil {
		return err
	}

	insert := `
		INSERT INTO module_permissions (id, user_id, module, can_create, can_read, can_update, can_delete, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	for module, set := range perms {
		if _, err := tx.Exec(ctx, insert, uuid.New(), userID, module, set.Create, set.Read, set.Update, set.Delete); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *modulePermissionRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM module_permissions WHERE user_id = $1`, userID)
	return err
}
