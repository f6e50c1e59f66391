package services

import (
	"context"

	"garagedesk/internal/authz"
	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/repositories"

	"github.com/google/uuid"
)

type AuditLogsService interface {
	// Record is fire-and-forget from the caller's perspective; failures are
	// returned for logging but must not fail the request.
	Record(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, callerID, tenantID uuid.UUID, limit, offset int) ([]*models.AuditLog, error)
}

type auditLogsService struct {
	auditRepo repositories.AuditLogsRepository
	perms     PermissionService
}

func NewAuditLogsService(auditRepo repositories.AuditLogsRepository, perms PermissionService) AuditLogsService {
	return &auditLogsService{auditRepo: auditRepo, perms: perms}
}

func (s *auditLogsService) Record(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return s.auditRepo.Create(ctx, entry)
}

func (s *auditLogsService) List(ctx context.Context, callerID, tenantID uuid.UUID, limit, offset int) ([]*models.AuditLog, error) {
	if err := s.perms.Authorize(ctx, callerID, authz.ModuleSettings, authz.ActionRead); err != nil {
		return nil, err
	}
	limit, offset = common.NormalizePagination(limit, offset)
	return s.auditRepo.List(ctx, tenantID, limit, offset)
}
