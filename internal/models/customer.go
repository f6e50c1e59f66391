package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	Document  *string   `json:"document" db:"document"`
	Address   *string   `json:"address" db:"address"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CustomerSearchFilter holds search and filter criteria for customer queries
type CustomerSearchFilter struct {
	Query  string  `json:"query,omitempty"`  // Free-text search across name, email, phone, document
	Status *string `json:"status,omitempty"` // Status filter (active, inactive)
	Limit  int     `json:"limit,omitempty"`  // Page size (default: 20)
	Offset int     `json:"offset,omitempty"` // Page offset
}
