package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"garagedesk/internal/authz"
	"garagedesk/internal/models"
	"garagedesk/internal/repositories"

	"github.com/google/uuid"
)

const presignedURLTTL = 15 * time.Minute

const maxAttachmentSize = 20 << 20 // 20 MiB

type AttachmentsService interface {
	Upload(ctx context.Context, userID, tenantID, serviceOrderID uuid.UUID, fileName, contentType string, size int64, reader io.Reader) (*models.Attachment, error)
	List(ctx context.Context, userID, tenantID, serviceOrderID uuid.UUID) ([]*models.Attachment, error)
	// DownloadURL returns a short-lived presigned URL for the object.
	DownloadURL(ctx context.Context, userID, tenantID, attachmentID uuid.UUID) (string, error)
	Delete(ctx context.Context, userID, tenantID, attachmentID uuid.UUID) error
}

type attachmentsService struct {
	attachmentRepo repositories.AttachmentRepository
	orderRepo      repositories.ServiceOrderRepository
	storage        StorageService
	perms          PermissionService
}

func NewAttachmentsService(attachmentRepo repositories.AttachmentRepository, orderRepo repositories.ServiceOrderRepository, storage StorageService, perms PermissionService) AttachmentsService {
	return &attachmentsService{
		attachmentRepo: attachmentRepo,
		orderRepo:      orderRepo,
		storage:        storage,
		perms:          perms,
	}
}

func (s *attachmentsService) Upload(ctx context.Context, userID, tenantID, serviceOrderID uuid.UUID, fileName, contentType string, size int64, reader io.Reader) (*models.Attachment, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleServiceOrders, authz.ActionUpdate); err != nil {
		return nil, err
	}

	fileName = strings.TrimSpace(path.Base(fileName))
	if fileName == "" || fileName == "." {
		return nil, validationError("a file name is required")
	}
	if size <= 0 {
		return nil, validationError("file size must be positive")
	}
	if size > maxAttachmentSize {
		return nil, validationError("file exceeds the 20 MiB limit")
	}

	order, err := s.orderRepo.GetByID(ctx, tenantID, serviceOrderID)
	if err != nil {
		return nil, ErrNotFound
	}

	attachment := &models.Attachment{
		ID:             uuid.New(),
		TenantID:       tenantID,
		ServiceOrderID: order.ID,
		FileName:       fileName,
		ContentType:    contentType,
		Size:           size,
	}
	attachment.ObjectKey = fmt.Sprintf("%s/service-orders/%s/%s-%s", tenantID, order.ID, attachment.ID, fileName)

	if err := s.storage.Upload(ctx, attachment.ObjectKey, reader, size, contentType); err != nil {
		return nil, err
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		// Orphan cleanup, best effort.
		_ = s.storage.Delete(ctx, attachment.ObjectKey)
		return nil, err
	}
	return attachment, nil
}

func (s *attachmentsService) List(ctx context.Context, userID, tenantID, serviceOrderID uuid.UUID) ([]*models.Attachment, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleServiceOrders, authz.ActionRead); err != nil {
		return nil, err
	}
	if _, err := s.orderRepo.GetByID(ctx, tenantID, serviceOrderID); err != nil {
		return nil, ErrNotFound
	}
	return s.attachmentRepo.ListByServiceOrder(ctx, tenantID, serviceOrderID)
}

func (s *attachmentsService) DownloadURL(ctx context.Context, userID, tenantID, attachmentID uuid.UUID) (string, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleServiceOrders, authz.ActionRead); err != nil {
		return "", err
	}
	attachment, err := s.attachmentRepo.GetByID(ctx, tenantID, attachmentID)
	if err != nil {
		return "", ErrNotFound
	}
	return s.storage.PresignedURL(ctx, attachment.ObjectKey, presignedURLTTL)
}

func (s *attachmentsService) Delete(ctx context.Context, userID, tenantID, attachmentID uuid.UUID) error {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleServiceOrders, authz.ActionUpdate); err != nil {
		return err
	}
	attachment, err := s.attachmentRepo.GetByID(ctx, tenantID, attachmentID)
	if err != nil {
		return ErrNotFound
	}
	if err := s.storage.Delete(ctx, attachment.ObjectKey); err != nil {
		return err
	}
	return s.attachmentRepo.Delete(ctx, tenantID, attachmentID)
}
