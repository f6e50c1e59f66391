package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatSenderUser      = "user"
	ChatSenderAssistant = "assistant"
)

type ChatMessage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Sender    string    `json:"sender" db:"sender"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
