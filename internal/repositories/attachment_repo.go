package repositories

import (
	"context"

	"garagedesk/internal/models"

	"github.com/google/uuid"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Attachment, error)
	ListByServiceOrder(ctx context.Context, tenantID, serviceOrderID uuid.UUID) ([]*models.Attachment, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type attachmentRepo struct {
	db DB
}

func NewAttachmentRepository(db DB) AttachmentRepository {
	return &attachmentRepo{db: db}
}

const attachmentColumns = `id, tenant_id, service_order_id, object_key, file_name, content_type, size, created_at`

func (r *attachmentRepo) Create(ctx context.Context, attachment *models.Attachment) error {
	query := `
		INSERT INTO attachments (id, tenant_id, service_order_id, object_key, file_name, content_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, attachment.ID, attachment.TenantID, attachment.ServiceOrderID, attachment.ObjectKey, attachment.FileName, attachment.ContentType, attachment.Size)
	return err
}

func (r *attachmentRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Attachment, error) {
	attachment := &models.Attachment{}
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE tenant_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&attachment.ID, &attachment.TenantID, &attachment.ServiceOrderID, &attachment.ObjectKey, &attachment.FileName, &attachment.ContentType, &attachment.Size, &attachment.CreatedAt)
	if err != nil {
		return nil, err
	}
	return attachment, nil
}

func (r *attachmentRepo) ListByServiceOrder(ctx context.Context, tenantID, serviceOrderID uuid.UUID) ([]*models.Attachment, error) {
	query := `
		SELECT ` + attachmentColumns + `
		FROM attachments
		WHERE tenant_id = $1 AND service_order_id = $2
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID, serviceOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []*models.Attachment
	for rows.Next() {
		attachment := &models.Attachment{}
		if err := rows.Scan(&attachment.ID, &attachment.TenantID, &attachment.ServiceOrderID, &attachment.ObjectKey, &attachment.FileName, &attachment.ContentType, &attachment.Size, &attachment.CreatedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}
	return attachments, nil
}

func (r *attachmentRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM attachments WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}
