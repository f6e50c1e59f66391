package services

import (
	"context"
	"errors"
	"log"
	"time"

	"garagedesk/internal/authz"
	"garagedesk/internal/caching"
	"garagedesk/internal/models"
	"garagedesk/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const permissionCacheTTL = 5 * time.Minute

// PermissionService loads a caller's authorization subject and enforces the
// permission matrix. The HTTP gate and every CRUD service go through the same
// SubjectFor path, so a given (user, module, action) input always yields the
// same decision on both sides.
type PermissionService interface {
	SubjectFor(ctx context.Context, userID uuid.UUID) (authz.Subject, error)
	// Authorize returns *PermissionDeniedError when the subject may not
	// perform action on module.
	Authorize(ctx context.Context, userID uuid.UUID, module string, action authz.Action) error
	// EnsureOwnerDefaults provisions full-access rows for an owner so the
	// management UI has rows to show. Idempotent; the owner bypass never
	// depends on these rows existing.
	EnsureOwnerDefaults(ctx context.Context, userID uuid.UUID) error
	ListForUser(ctx context.Context, callerID, userID uuid.UUID) ([]*models.ModulePermission, error)
	SetForUser(ctx context.Context, callerID, userID uuid.UUID, perms map[string]authz.ActionSet) error
	// Invalidate drops the cached permission snapshot for a user after an
	// out-of-band matrix change, such as accepting an invitation.
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type permissionService struct {
	userRepo repositories.UserRepository
	permRepo repositories.ModulePermissionRepository
	cacheSvc caching.CacheService
}

func NewPermissionService(userRepo repositories.UserRepository, permRepo repositories.ModulePermissionRepository, cacheSvc caching.CacheService) PermissionService {
	return &permissionService{
		userRepo: userRepo,
		permRepo: permRepo,
		cacheSvc: cacheSvc,
	}
}

func (s *permissionService) SubjectFor(ctx context.Context, userID uuid.UUID) (authz.Subject, error) {
	snapshot, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return authz.Scoped(nil), err
	}
	if snapshot.Role == authz.RoleOwner {
		// Owners bypass row lookups entirely.
		return authz.Owner(), nil
	}
	return authz.Scoped(models.PermissionMap(snapshot.Rows)), nil
}

func (s *permissionService) loadSnapshot(ctx context.Context, userID uuid.UUID) (*caching.UserPermissions, error) {
	if cached, err := s.cacheSvc.GetUserPermissions(ctx, userID); err == nil && cached != nil {
		return cached, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := &caching.UserPermissions{Role: user.Role}
	if user.Role != authz.RoleOwner {
		rows, err := s.permRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		snapshot.Rows = rows
	}

	// Best effort; a cache write failure only costs the next lookup.
	_ = s.cacheSvc.SetUserPermissions(ctx, userID, snapshot, permissionCacheTTL)

	return snapshot, nil
}

func (s *permissionService) Authorize(ctx context.Context, userID uuid.UUID, module string, action authz.Action) error {
	subject, err := s.SubjectFor(ctx, userID)
	if err != nil {
		return err
	}
	if !subject.Allows(module, action) {
		return &PermissionDeniedError{Module: module, Action: action}
	}
	return nil
}

func (s *permissionService) EnsureOwnerDefaults(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != authz.RoleOwner {
		return nil
	}
	if err := s.permRepo.GrantAll(ctx, userID, authz.AllModules()); err != nil {
		return err
	}
	return s.cacheSvc.InvalidateUserPermissions(ctx, userID)
}

func (s *permissionService) ListForUser(ctx context.Context, callerID, userID uuid.UUID) ([]*models.ModulePermission, error) {
	if err := s.Authorize(ctx, callerID, authz.ModuleTeam, authz.ActionRead); err != nil {
		return nil, err
	}
	rows, err := s.permRepo.ListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rows, nil
}

func (s *permissionService) SetForUser(ctx context.Context, callerID, userID uuid.UUID, perms map[string]authz.ActionSet) error {
	if err := s.Authorize(ctx, callerID, authz.ModuleTeam, authz.ActionUpdate); err != nil {
		return err
	}

	known := make(map[string]bool, len(authz.AllModules()))
	for _, module := range authz.AllModules() {
		known[module] = true
	}
	for module := range perms {
		if !known[module] {
			return validationError("unknown module %q", module)
		}
	}

	if err := s.permRepo.ReplaceForUser(ctx, userID, perms); err != nil {
		return err
	}
	return s.cacheSvc.InvalidateUserPermissions(ctx, userID)
}

func (s *permissionService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.cacheSvc.InvalidateUserPermissions(ctx, userID); err != nil {
		log.Printf("failed to invalidate permission cache for user %s: %v", userID, err)
	}
}
