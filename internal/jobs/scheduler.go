package jobs

import (
	"context"
	"log"
	"time"

	"garagedesk/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs the recurring housekeeping jobs: the invitation expiry
// sweep and the low-stock scan.
type Scheduler struct {
	scheduler      gocron.Scheduler
	invitationRepo repositories.InvitationRepository
	inventoryRepo  repositories.InventoryRepository
	tenantRepo     repositories.TenantRepository
}

func NewScheduler(invitationRepo repositories.InvitationRepository, inventoryRepo repositories.InventoryRepository, tenantRepo repositories.TenantRepository) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler:      scheduler,
		invitationRepo: invitationRepo,
		inventoryRepo:  inventoryRepo,
		tenantRepo:     tenantRepo,
	}
	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(s.sweepExpiredInvitations, context.Background()),
		gocron.WithName("invitation-expiry-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	_, err = s.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(s.scanLowStock, context.Background()),
		gocron.WithName("low-stock-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (s *Scheduler) Start() {
	log.Println("Starting background job scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	log.Println("Stopping background job scheduler")
	return s.scheduler.Shutdown()
}

// sweepExpiredInvitations marks stale pending invitations expired. Reads
// already treat past-expiry rows as invalid; the sweep is housekeeping.
func (s *Scheduler) sweepExpiredInvitations(ctx context.Context) error {
	count, err := s.invitationRepo.ExpireStale(ctx, time.Now())
	if err != nil {
		log.Printf("invitation expiry sweep failed: %v", err)
		return err
	}
	if count > 0 {
		log.Printf("invitation expiry sweep marked %d invitation(s) expired", count)
	}
	return nil
}

// scanLowStock logs items at or below their minimum quantity per active
// tenant.
func (s *Scheduler) scanLowStock(ctx context.Context) error {
	tenants, err := s.tenantRepo.ListActive(ctx, 1000, 0)
	if err != nil {
		log.Printf("low-stock scan failed to list tenants: %v", err)
		return err
	}

	for _, tenant := range tenants {
		items, err := s.inventoryRepo.ListLowStock(ctx, tenant.ID)
		if err != nil {
			log.Printf("low-stock scan failed for tenant %s: %v", tenant.ID, err)
			continue
		}
		for _, item := range items {
			log.Printf("low stock: tenant=%s item=%q quantity=%d min=%d", tenant.ID, item.Name, item.Quantity, item.MinQuantity)
		}
	}
	return nil
}
