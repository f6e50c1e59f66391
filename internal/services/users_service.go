package services

import (
	"context"
	"errors"
	"strings"

	"garagedesk/internal/authz"
	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UsersService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.User, *models.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*models.User, *models.TokenResponse, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	ListMembers(ctx context.Context, callerID, tenantID uuid.UUID, limit, offset int) ([]*models.User, error)
	RemoveMember(ctx context.Context, callerID, tenantID, memberID uuid.UUID) error
}

type usersService struct {
	userRepo  repositories.UserRepository
	permRepo  repositories.ModulePermissionRepository
	tenantSvc TenantService
	authSvc   AuthService
	perms     PermissionService
}

func NewUsersService(userRepo repositories.UserRepository, permRepo repositories.ModulePermissionRepository, tenantSvc TenantService, authSvc AuthService, perms PermissionService) UsersService {
	return &usersService{
		userRepo:  userRepo,
		permRepo:  permRepo,
		tenantSvc: tenantSvc,
		authSvc:   authSvc,
		perms:     perms,
	}
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name"`
}

func (s *usersService) Signup(ctx context.Context, req *SignupRequest) (*models.User, *models.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, validationError("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, nil, validationError("password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, validationError("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         authz.RoleOwner,
		Status:       "active",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tenantID, err := s.tenantSvc.ResolveForUser(ctx, user.ID)
	if err != nil {
		// Non-fatal: the next login retries the resolver.
		return user, nil, err
	}
	user.TenantID = &tenantID

	if err := s.perms.EnsureOwnerDefaults(ctx, user.ID); err != nil {
		return nil, nil, err
	}

	tokens, err := s.authSvc.GenerateTokens(ctx, user.ID, tenantID)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *usersService) Login(ctx context.Context, email, password string) (*models.User, *models.TokenResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if user.Status != "active" {
		return nil, nil, validationError("account is %s", user.Status)
	}

	tenantID, err := s.tenantSvc.ResolveForUser(ctx, user.ID)
	if err != nil {
		return user, nil, err
	}
	user.TenantID = &tenantID

	tokens, err := s.authSvc.GenerateTokens(ctx, user.ID, tenantID)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *usersService) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *usersService) ListMembers(ctx context.Context, callerID, tenantID uuid.UUID, limit, offset int) ([]*models.User, error) {
	if err := s.perms.Authorize(ctx, callerID, authz.ModuleTeam, authz.ActionRead); err != nil {
		return nil, err
	}
	limit, offset = common.NormalizePagination(limit, offset)
	return s.userRepo.ListByTenant(ctx, tenantID, limit, offset)
}

func (s *usersService) RemoveMember(ctx context.Context, callerID, tenantID, memberID uuid.UUID) error {
	if err := s.perms.Authorize(ctx, callerID, authz.ModuleTeam, authz.ActionDelete); err != nil {
		return err
	}
	if callerID == memberID {
		return validationError("you cannot remove yourself from the team")
	}

	member, err := s.userRepo.GetByID(ctx, memberID)
	if err != nil {
		return ErrNotFound
	}
	if member.TenantID == nil || *member.TenantID != tenantID {
		return ErrNotFound
	}
	if member.Role == authz.RoleOwner {
		return validationError("the owner cannot be removed")
	}

	if err := s.permRepo.DeleteByUser(ctx, memberID); err != nil {
		return err
	}
	s.perms.Invalidate(ctx, memberID)
	return s.userRepo.Delete(ctx, tenantID, memberID)
}
