package models

import (
	"time"

	"github.com/google/uuid"
)

type Vehicle struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TenantID   uuid.UUID `json:"tenant_id" db:"tenant_id"`
	CustomerID uuid.UUID `json:"customer_id" db:"customer_id"`
	Brand      string    `json:"brand" db:"brand"`
	Model      string    `json:"model" db:"model"`
	Plate      string    `json:"plate" db:"plate"`
	Year       *int      `json:"year" db:"year"`
	Color      *string   `json:"color" db:"color"`
	Mileage    *int      `json:"mileage" db:"mileage"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// VehicleSearchFilter holds search and filter criteria for vehicle queries
type VehicleSearchFilter struct {
	Query      string     `json:"query,omitempty"`       // Free-text search across brand, model, plate
	CustomerID *uuid.UUID `json:"customer_id,omitempty"` // Customer filter
	Limit      int        `json:"limit,omitempty"`       // Page size (default: 20)
	Offset     int        `json:"offset,omitempty"`      // Page offset
}
