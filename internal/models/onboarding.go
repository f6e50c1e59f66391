package models

import (
	"time"

	"github.com/google/uuid"
)

// Onboarding wizard step names.
const (
	OnboardingStepCompany   = "company"
	OnboardingStepTeam      = "team"
	OnboardingStepCustomers = "customers"
	OnboardingStepInventory = "inventory"
)

// OnboardingProgress tracks the setup wizard for one tenant. Created lazily
// on first read; Completed is derived from the step flags.
type OnboardingProgress struct {
	TenantID      uuid.UUID `json:"tenant_id" db:"tenant_id"`
	CompanyDone   bool      `json:"company_done" db:"company_done"`
	TeamDone      bool      `json:"team_done" db:"team_done"`
	CustomersDone bool      `json:"customers_done" db:"customers_done"`
	InventoryDone bool      `json:"inventory_done" db:"inventory_done"`
	Completed     bool      `json:"completed" db:"completed"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Recompute derives the completed flag from the individual steps.
func (o *OnboardingProgress) Recompute() {
	o.Completed = o.CompanyDone && o.TeamDone && o.CustomersDone && o.InventoryDone
}

// MarkStep sets the named step done. Unknown step names are rejected.
func (o *OnboardingProgress) MarkStep(step string) bool {
	switch step {
	case OnboardingStepCompany:
		o.CompanyDone = true
	case OnboardingStepTeam:
		o.TeamDone = true
	case OnboardingStepCustomers:
		o.CustomersDone = true
	case OnboardingStepInventory:
		o.InventoryDone = true
	default:
		return false
	}
	o.Recompute()
	return true
}
