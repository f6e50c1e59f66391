package repositories

import (
	"context"

	"garagedesk/internal/models"

	"github.com/google/uuid"
)

type OnboardingRepository interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*models.OnboardingProgress, error)
	Upsert(ctx context.Context, progress *models.OnboardingProgress) error
}

type onboardingRepo struct {
	db DB
}

func NewOnboardingRepository(db DB) OnboardingRepository {
	return &onboardingRepo{db: db}
}

func (r *onboardingRepo) Get(ctx context.Context, tenantID uuid.UUID) (*models.OnboardingProgress, error) {
	progress := &models.OnboardingProgress{}
	query := `
		SELECT tenant_id, company_done, team_done, customers_done, inventory_done, completed, created_at, updated_at
		FROM onboarding_progress
		WHERE tenant_id = $1
	`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&progress.TenantID, &progress.CompanyDone, &progress.TeamDone, &progress.CustomersDone, &progress.InventoryDone, &progress.Completed, &progress.CreatedAt, &progress.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *onboardingRepo) Upsert(ctx context.Context, progress *models.OnboardingProgress) error {
	query := `
		INSERT INTO onboarding_progress (tenant_id, company_done, team_done, customers_done, inventory_done, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (tenant_id) DO UPDATE
		SET company_done = EXCLUDED.company_done, team_done = EXCLUDED.team_done,
		    customers_done = EXCLUDED.customers_done, inventory_done = EXCLUDED.inventory_done,
		    completed = EXCLUDED.completed, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, progress.TenantID, progress.CompanyDone, progress.TeamDone, progress.CustomersDone, progress.InventoryDone, progress.Completed)
	return err
}
