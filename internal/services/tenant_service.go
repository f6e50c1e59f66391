package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"garagedesk/internal/authz"
	"garagedesk/internal/models"
	"garagedesk/internal/repositories"

	"github.com/google/uuid"
)

type TenantService interface {
	// ResolveForUser returns the user's tenant, creating and binding one on
	// first login. Idempotent: N calls return the same tenant id and create
	// at most one tenant row, concurrent callers included.
	ResolveForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, userID uuid.UUID, req *UpdateTenantRequest) (*models.Tenant, error)
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	userRepo   repositories.UserRepository
	perms      PermissionService
}

func NewTenantService(tenantRepo repositories.TenantRepository, userRepo repositories.UserRepository, perms PermissionService) TenantService {
	return &tenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		perms:      perms,
	}
}

type UpdateTenantRequest struct {
	ID           uuid.UUID
	Name         string `json:"name" validate:"required"`
	BusinessName string `json:"business_name"`
	ContactEmail string `json:"contact_email"`
	Status       string `json:"status" validate:"required"`
}

func (s *tenantService) ResolveForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	tenantID, err := s.userRepo.GetTenantID(ctx, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrTenantResolution, err)
	}
	if tenantID != nil {
		return *tenantID, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrTenantResolution, err)
	}

	tenant := &models.Tenant{
		ID:           uuid.New(),
		Name:         placeholderName(user.Email),
		BusinessName: placeholderName(user.Email),
		ContactEmail: user.Email,
		Status:       "active",
	}

	err = s.tenantRepo.CreateWithOwner(ctx, tenant, userID)
	if err == nil {
		return tenant.ID, nil
	}
	if !errors.Is(err, repositories.ErrUserAlreadyBound) {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrTenantResolution, err)
	}

	// A concurrent resolver won the insert; read the winning binding.
	tenantIDPtr, err := s.userRepo.GetTenantID(ctx, userID)
	if err != nil || tenantIDPtr == nil {
		return uuid.Nil, fmt.Errorf("%w: binding vanished after concurrent create", ErrTenantResolution)
	}
	return *tenantIDPtr, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.tenantRepo.GetByID(ctx, id)
}

func (s *tenantService) Update(ctx context.Context, userID uuid.UUID, req *UpdateTenantRequest) (*models.Tenant, error) {
	if err := s.perms.Authorize(ctx, userID, authz.ModuleSettings, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, validationError("name is required")
	}

	existing, err := s.tenantRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	if req.BusinessName != "" {
		existing.BusinessName = req.BusinessName
	}
	if req.ContactEmail != "" {
		existing.ContactEmail = req.ContactEmail
	}
	if req.Status != "" {
		existing.Status = req.Status
	}

	if err := s.tenantRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// placeholderName derives a workshop name from the email local part, used
// until the owner fills in real company details.
func placeholderName(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	if local == "" {
		return "My Workshop"
	}
	return local + "'s Workshop"
}
