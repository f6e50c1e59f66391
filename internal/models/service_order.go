package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ServiceOrderOpen       = "open"
	ServiceOrderInProgress = "in_progress"
	ServiceOrderCompleted  = "completed"
	ServiceOrderCancelled  = "cancelled"
)

type ServiceOrder struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	CustomerID  uuid.UUID `json:"customer_id" db:"customer_id"`
	VehicleID   uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	Number      int       `json:"number" db:"number"` // per-tenant sequence
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	LaborAmount float64   `json:"labor_amount" db:"labor_amount"`
	PartsAmount float64   `json:"parts_amount" db:"parts_amount"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"` // labor + parts, recomputed on every write
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ServiceOrderSearchFilter holds search and filter criteria for service order queries
type ServiceOrderSearchFilter struct {
	Query      string     `json:"query,omitempty"`       // Free-text search across description
	Status     *string    `json:"status,omitempty"`      // Status filter
	CustomerID *uuid.UUID `json:"customer_id,omitempty"` // Customer filter
	VehicleID  *uuid.UUID `json:"vehicle_id,omitempty"`  // Vehicle filter
	Limit      int        `json:"limit,omitempty"`       // Page size (default: 20)
	Offset     int        `json:"offset,omitempty"`      // Page offset
}

// ValidServiceOrderStatus reports whether status is a known service order state.
func ValidServiceOrderStatus(status string) bool {
	switch status {
	case ServiceOrderOpen, ServiceOrderInProgress, ServiceOrderCompleted, ServiceOrderCancelled:
		return true
	}
	return false
}
