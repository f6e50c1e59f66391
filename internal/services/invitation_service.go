package services

import (
	"context"
	"log"
	"strings"
	"time"

	"garagedesk/internal/authz"
	"garagedesk/internal/models"
	"garagedesk/internal/repositories"

	"github.com/google/uuid"
)

const invitationTTL = 7 * 24 * time.Hour

type InvitationService interface {
	Create(ctx context.Context, callerID, tenantID uuid.UUID, req *CreateInvitationRequest) (*models.Invitation, error)
	// Accept consumes a pending invitation for the authenticated user. The
	// user's email must match the invitation's; the permission snapshot
	// replaces the user's matrix. A second accept fails.
	Accept(ctx context.Context, invitationID, userID uuid.UUID) (*models.Invitation, error)
	Cancel(ctx context.Context, callerID, tenantID, invitationID uuid.UUID) error
	List(ctx context.Context, callerID, tenantID uuid.UUID, limit, offset int) ([]*models.Invitation, error)
}

type invitationService struct {
	invitationRepo repositories.InvitationRepository
	userRepo       repositories.UserRepository
	permRepo       repositories.ModulePermissionRepository
	perms          PermissionService
	now            func() time.Time
}

func NewInvitationService(invitationRepo repositories.InvitationRepository, userRepo repositories.UserRepository, permRepo repositories.ModulePermissionRepository, perms PermissionService) InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		permRepo:       permRepo,
		perms:          perms,
		now:            time.Now,
	}
}

type CreateInvitationRequest struct {
	Email       string                     `json:"email" validate:"required,email"`
	FullName    string                     `json:"full_name"`
	Role        string                     `json:"role" validate:"required"`
	Permissions map[string]authz.ActionSet `json:"permissions"`
}

func (s *invitationService) Create(ctx context.Context, callerID, tenantID uuid.UUID, req *CreateInvitationRequest) (*models.Invitation, error) {
	if err := s.perms.Authorize(ctx, callerID, authz.ModuleTeam, authz.ActionCreate); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationError("a valid email is required")
	}
	if !authz.ValidRole(req.Role) {
		return nil, validationError("unknown role %q", req.Role)
	}
	if req.Role == authz.RoleOwner {
		return nil, validationError("the owner role cannot be granted by invitation")
	}

	pending, err := s.invitationRepo.HasPending(ctx, tenantID, email)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, validationError("a pending invitation for %s already exists", email)
	}

	invitation := &models.Invitation{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Email:       email,
		FullName:    req.FullName,
		Role:        req.Role,
		Permissions: req.Permissions,
		Status:      models.InvitationPending,
		ExpiresAt:   s.now().Add(invitationTTL),
		CreatedBy:   callerID,
	}
	if invitation.Permissions == nil {
		invitation.Permissions = map[string]authz.ActionSet{}
	}

	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, err
	}
	return invitation, nil
}

func (s *invitationService) Accept(ctx context.Context, invitationID, userID uuid.UUID) (*models.Invitation, error) {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, ErrNotFound
	}

	if invitation.Status != models.InvitationPending {
		return nil, validationError("invitation is not pending")
	}
	if invitation.IsExpired(s.now()) {
		return nil, validationError("invitation expired")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(user.Email, invitation.Email) {
		return nil, validationError("invitation was issued to a different email")
	}

	// The guarded transition makes the accept consume the invitation exactly
	// once even under concurrent calls.
	transitioned, err := s.invitationRepo.TransitionStatus(ctx, invitation.ID, models.InvitationAccepted)
	if err != nil {
		return nil, err
	}
	if !transitioned {
		return nil, validationError("invitation is not pending")
	}

	if err := s.userRepo.BindTenant(ctx, userID, invitation.TenantID, invitation.Role, "active"); err != nil {
		s.release(ctx, invitation.ID)
		return nil, err
	}
	// ReplaceForUser swaps the matrix atomically, so a re-run can never
	// leave duplicate rows.
	if err := s.permRepo.ReplaceForUser(ctx, userID, invitation.Permissions); err != nil {
		s.release(ctx, invitation.ID)
		return nil, err
	}
	s.perms.Invalidate(ctx, userID)

	invitation.Status = models.InvitationAccepted
	return invitation, nil
}

// release puts a consumed invitation back to pending after the accept's side
// effects failed, so the invitee can retry instead of being locked out of an
// invitation marked accepted with no binding behind it.
func (s *invitationService) release(ctx context.Context, id uuid.UUID) {
	if err := s.invitationRepo.RevertToPending(ctx, id); err != nil {
		log.Printf("failed to release invitation %s after accept failure: %v", id, err)
	}
}

func (s *invitationService) Cancel(ctx context.Context, callerID, tenantID, invitationID uuid.UUID) error {
	if err := s.perms.Authorize(ctx, callerID, authz.ModuleTeam, authz.ActionDelete); err != nil {
		return err
	}

	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return ErrNotFound
	}
	if invitation.TenantID != tenantID {
		return ErrNotFound
	}

	transitioned, err := s.invitationRepo.TransitionStatus(ctx, invitationID, models.InvitationCancelled)
	if err != nil {
		return err
	}
	if !transitioned {
		return validationError("invitation is not pending")
	}
	return nil
}

func (s *invitationService) List(ctx context.Context, callerID, tenantID uuid.UUID, limit, offset int) ([]*models.Invitation, error) {
	if err := s.perms.Authorize(ctx, callerID, authz.ModuleTeam, authz.ActionRead); err != nil {
		return nil, err
	}

	invitations, err := s.invitationRepo.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}

	// Expired-but-unswept rows still read as expired.
	now := s.now()
	for _, invitation := range invitations {
		if invitation.Status == models.InvitationPending && invitation.IsExpired(now) {
			invitation.Status = models.InvitationExpired
		}
	}
	return invitations, nil
}
