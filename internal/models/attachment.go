package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a file stored in object storage and linked to a service order.
type Attachment struct {
	ID             uuid.UUID `json:"id" db:"id"`
	TenantID       uuid.UUID `json:"tenant_id" db:"tenant_id"`
	ServiceOrderID uuid.UUID `json:"service_order_id" db:"service_order_id"`
	ObjectKey      string    `json:"-" db:"object_key"`
	FileName       string    `json:"file_name" db:"file_name"`
	ContentType    string    `json:"content_type" db:"content_type"`
	Size           int64     `json:"size" db:"size"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
