package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PurchasePending   = "pending"
	PurchaseReceived  = "received"
	PurchaseCancelled = "cancelled"
)

type Purchase struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	TenantID       uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	SupplierID     uuid.UUID       `json:"supplier_id" db:"supplier_id"`
	InvoiceNumber  *string         `json:"invoice_number" db:"invoice_number"`
	TotalAmount    float64         `json:"total_amount" db:"total_amount"`
	DiscountAmount float64         `json:"discount_amount" db:"discount_amount"`
	TaxAmount      float64         `json:"tax_amount" db:"tax_amount"`
	FinalAmount    float64         `json:"final_amount" db:"final_amount"` // total - discount + tax, recomputed on every write
	Status         string          `json:"status" db:"status"`
	PurchaseDate   time.Time       `json:"purchase_date" db:"purchase_date"`
	Notes          *string         `json:"notes" db:"notes"`
	Items          []*PurchaseItem `json:"items,omitempty" db:"-"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

type PurchaseItem struct {
	ID              uuid.UUID `json:"id" db:"id"`
	PurchaseID      uuid.UUID `json:"purchase_id" db:"purchase_id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id" db:"inventory_item_id"`
	Quantity        int       `json:"quantity" db:"quantity"`
	UnitPrice       float64   `json:"unit_price" db:"unit_price"`
	Subtotal        float64   `json:"subtotal" db:"subtotal"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// ComputeFinalAmount applies the purchase amount identity. Called before
// every insert and update so the stored value can never drift.
func (p *Purchase) ComputeFinalAmount() {
	p.FinalAmount = p.TotalAmount - p.DiscountAmount + p.TaxAmount
}

// PurchaseSearchFilter holds search and filter criteria for purchase queries
type PurchaseSearchFilter struct {
	Query      string     `json:"query,omitempty"`       // Free-text search across invoice number, notes, supplier name
	Status     *string    `json:"status,omitempty"`      // Status filter
	SupplierID *uuid.UUID `json:"supplier_id,omitempty"` // Supplier filter
	Limit      int        `json:"limit,omitempty"`       // Page size (default: 20)
	Offset     int        `json:"offset,omitempty"`      // Page offset
}
