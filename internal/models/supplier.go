package models

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TenantID     uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name         string    `json:"name" db:"name"`
	ContactEmail *string   `json:"contact_email" db:"contact_email"`
	ContactPhone *string   `json:"contact_phone" db:"contact_phone"`
	Document     *string   `json:"document" db:"document"`
	Address      *string   `json:"address" db:"address"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SupplierSearchFilter holds search and filter criteria for supplier queries
type SupplierSearchFilter struct {
	Query  string `json:"query,omitempty"`  // Free-text search across name, contact email, document
	Limit  int    `json:"limit,omitempty"`  // Page size (default: 20)
	Offset int    `json:"offset,omitempty"` // Page offset
}
