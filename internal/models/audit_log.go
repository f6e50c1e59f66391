package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records one mutating request. Written by the audit middleware.
type AuditLog struct {
	ID        uuid.UUID              `json:"id" db:"id"`
	TenantID  uuid.UUID              `json:"tenant_id" db:"tenant_id"`
	UserID    *uuid.UUID             `json:"user_id" db:"user_id"`
	Action    string                 `json:"action" db:"action"`
	Entity    string                 `json:"entity" db:"entity"`
	EntityID  *string                `json:"entity_id" db:"entity_id"`
	Data      map[string]interface{} `json:"data,omitempty" db:"data"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}
