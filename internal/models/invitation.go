package models

import (
	"time"

	"garagedesk/internal/authz"

	"github.com/google/uuid"
)

const (
	InvitationPending   = "pending"
	InvitationAccepted  = "accepted"
	InvitationCancelled = "cancelled"
	InvitationExpired   = "expired"
)

// Invitation is a pending offer to join a tenant with a role and a permission
// snapshot that becomes the invitee's ModulePermission rows on acceptance.
type Invitation struct {
	ID          uuid.UUID                  `json:"id" db:"id"`
	TenantID    uuid.UUID                  `json:"tenant_id" db:"tenant_id"`
	Email       string                     `json:"email" db:"email"`
	FullName    string                     `json:"full_name" db:"full_name"`
	Role        string                     `json:"role" db:"role"`
	Permissions map[string]authz.ActionSet `json:"permissions" db:"permissions"`
	Status      string                     `json:"status" db:"status"`
	ExpiresAt   time.Time                  `json:"expires_at" db:"expires_at"`
	CreatedBy   uuid.UUID                  `json:"created_by" db:"created_by"`
	CreatedAt   time.Time                  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at" db:"updated_at"`
}

// IsExpired reports whether the invitation is past its expiry. Read paths
// treat expired invitations as invalid even before the sweep marks them.
func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
