package models

import (
	"time"

	"garagedesk/internal/authz"

	"github.com/google/uuid"
)

// ModulePermission is one row of the per-user permission matrix. At most one
// row exists per (user, module); a missing row means no access.
type ModulePermission struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Module    string    `json:"module" db:"module"`
	CanCreate bool      `json:"can_create" db:"can_create"`
	CanRead   bool      `json:"can_read" db:"can_read"`
	CanUpdate bool      `json:"can_update" db:"can_update"`
	CanDelete bool      `json:"can_delete" db:"can_delete"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ActionSet converts the row's four booleans to the evaluator's form.
func (p *ModulePermission) ActionSet() authz.ActionSet {
	return authz.ActionSet{
		Create: p.CanCreate,
		Read:   p.CanRead,
		Update: p.CanUpdate,
		Delete: p.CanDelete,
	}
}

// PermissionMap folds rows into the map the evaluator consumes. Later rows
// for the same module win, though the unique constraint makes that moot.
func PermissionMap(rows []*ModulePermission) map[string]authz.ActionSet {
	perms := make(map[string]authz.ActionSet, len(rows))
	for _, row := range rows {
		perms[row.Module] = row.ActionSet()
	}
	return perms
}
