package repositories

import (
	"context"

	"garagedesk/internal/models"

	"github.com/google/uuid"
)

type ChatRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ChatMessage, error)
}

type chatRepo struct {
	db DB
}

func NewChatRepository(db DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) Create(ctx context.Context, message *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, tenant_id, user_id, sender, content, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, message.ID, message.TenantID, message.UserID, message.Sender, message.Content)
	return err
}

func (r *chatRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, tenant_id, user_id, sender, content, created_at
		FROM chat_messages
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		message := &models.ChatMessage{}
		if err := rows.Scan(&message.ID, &message.TenantID, &message.UserID, &message.Sender, &message.Content, &message.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}
