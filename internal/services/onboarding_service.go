package services

import (
	"context"
	"errors"

	"garagedesk/internal/models"
	"garagedesk/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OnboardingService interface {
	// Get returns the tenant's wizard progress, creating a blank record on
	// first read.
	Get(ctx context.Context, tenantID uuid.UUID) (*models.OnboardingProgress, error)
	// MarkStep flags a named step done and rederives the completed flag.
	MarkStep(ctx context.Context, tenantID uuid.UUID, step string) (*models.OnboardingProgress, error)
}

type onboardingService struct {
	onboardingRepo repositories.OnboardingRepository
}

func NewOnboardingService(onboardingRepo repositories.OnboardingRepository) OnboardingService {
	return &onboardingService{onboardingRepo: onboardingRepo}
}

func (s *onboardingService) Get(ctx context.Context, tenantID uuid.UUID) (*models.OnboardingProgress, error) {
	progress, err := s.onboardingRepo.Get(ctx, tenantID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	progress = &models.OnboardingProgress{TenantID: tenantID}
	if err := s.onboardingRepo.Upsert(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *onboardingService) MarkStep(ctx context.Context, tenantID uuid.UUID, step string) (*models.OnboardingProgress, error) {
	progress, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !progress.MarkStep(step) {
		return nil, validationError("unknown onboarding step %q", step)
	}
	if err := s.onboardingRepo.Upsert(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}
