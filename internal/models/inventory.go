package models

import (
	"time"

	"github.com/google/uuid"
)

type InventoryItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name        string    `json:"name" db:"name"`
	SKU         *string   `json:"sku" db:"sku"`
	Quantity    int       `json:"quantity" db:"quantity"`
	MinQuantity int       `json:"min_quantity" db:"min_quantity"`
	UnitCost    float64   `json:"unit_cost" db:"unit_cost"`
	SalePrice   float64   `json:"sale_price" db:"sale_price"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// InventorySearchFilter holds search and filter criteria for inventory queries
type InventorySearchFilter struct {
	Query    string `json:"query,omitempty"`     // Free-text search across name, sku
	LowStock bool   `json:"low_stock,omitempty"` // Only items at or below min_quantity
	Limit    int    `json:"limit,omitempty"`     // Page size (default: 20)
	Offset   int    `json:"offset,omitempty"`    // Page offset
}
