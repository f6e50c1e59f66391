package jobs

import (
	"context"
	"testing"
	"time"

	"garagedesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	return m.Called(ctx, invitation).Error(0)
}

func (m *MockInvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) HasPending(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvitationRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Invitation, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvitationRepository) RevertToPending(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInvitationRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.InventoryItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockInventoryRepository) Search(ctx context.Context, tenantID uuid.UUID, filter *models.InventorySearchFilter) ([]*models.InventoryItem, int, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*models.InventoryItem), args.Int(1), args.Error(2)
}

func (m *MockInventoryRepository) AdjustQuantity(ctx context.Context, tenantID, id uuid.UUID, delta int) error {
	return m.Called(ctx, tenantID, id, delta).Error(0)
}

func (m *MockInventoryRepository) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	return m.Called(ctx, tenant).Error(0)
}

func (m *MockTenantRepository) CreateWithOwner(ctx context.Context, tenant *models.Tenant, userID uuid.UUID) error {
	return m.Called(ctx, tenant, userID).Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListActive(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	return m.Called(ctx, tenant).Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type SchedulerTestSuite struct {
	suite.Suite
	invitationRepo *MockInvitationRepository
	inventoryRepo  *MockInventoryRepository
	tenantRepo     *MockTenantRepository
	scheduler      *Scheduler
	ctx            context.Context
}

func (suite *SchedulerTestSuite) SetupTest() {
	suite.invitationRepo = &MockInvitationRepository{}
	suite.inventoryRepo = &MockInventoryRepository{}
	suite.tenantRepo = &MockTenantRepository{}

	scheduler, err := NewScheduler(suite.invitationRepo, suite.inventoryRepo, suite.tenantRepo)
	assert.NoError(suite.T(), err)
	suite.scheduler = scheduler
	suite.ctx = context.Background()
}

func (suite *SchedulerTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.scheduler.Stop())
}

func (suite *SchedulerTestSuite) TestSweepExpiredInvitations() {
	suite.invitationRepo.On("ExpireStale", suite.ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	err := suite.scheduler.sweepExpiredInvitations(suite.ctx)

	assert.NoError(suite.T(), err)
	suite.invitationRepo.AssertExpectations(suite.T())
}

func (suite *SchedulerTestSuite) TestSweepExpiredInvitations_PropagatesError() {
	suite.invitationRepo.On("ExpireStale", suite.ctx, mock.AnythingOfType("time.Time")).Return(int64(0), assert.AnError)

	err := suite.scheduler.sweepExpiredInvitations(suite.ctx)

	assert.Error(suite.T(), err)
}

func (suite *SchedulerTestSuite) TestScanLowStock_ScansEveryActiveTenant() {
	tenantA := &models.Tenant{ID: uuid.New(), Status: "active"}
	tenantB := &models.Tenant{ID: uuid.New(), Status: "active"}

	suite.tenantRepo.On("ListActive", suite.ctx, 1000, 0).Return([]*models.Tenant{tenantA, tenantB}, nil)
	suite.inventoryRepo.On("ListLowStock", suite.ctx, tenantA.ID).Return([]*models.InventoryItem{
		{ID: uuid.New(), TenantID: tenantA.ID, Name: "Oil filter", Quantity: 1, MinQuantity: 5},
	}, nil)
	suite.inventoryRepo.On("ListLowStock", suite.ctx, tenantB.ID).Return([]*models.InventoryItem{}, nil)

	err := suite.scheduler.scanLowStock(suite.ctx)

	assert.NoError(suite.T(), err)
	suite.inventoryRepo.AssertExpectations(suite.T())
}

// One tenant's failure must not stop the scan for the others.
func (suite *SchedulerTestSuite) TestScanLowStock_ContinuesPastTenantFailure() {
	tenantA := &models.Tenant{ID: uuid.New(), Status: "active"}
	tenantB := &models.Tenant{ID: uuid.New(), Status: "active"}

	suite.tenantRepo.On("ListActive", suite.ctx, 1000, 0).Return([]*models.Tenant{tenantA, tenantB}, nil)
	suite.inventoryRepo.On("ListLowStock", suite.ctx, tenantA.ID).Return([]*models.InventoryItem{}, assert.AnError)
	suite.inventoryRepo.On("ListLowStock", suite.ctx, tenantB.ID).Return([]*models.InventoryItem{}, nil)

	err := suite.scheduler.scanLowStock(suite.ctx)

	assert.NoError(suite.T(), err)
	suite.inventoryRepo.AssertExpectations(suite.T())
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}
