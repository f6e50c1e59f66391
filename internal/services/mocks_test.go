package services

import (
	"context"
	"time"

	"garagedesk/internal/authz"
	"garagedesk/internal/caching"
	"garagedesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetTenantID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uuid.UUID), args.Error(1)
}

func (m *mockUserRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) BindTenant(ctx context.Context, userID, tenantID uuid.UUID, role, status string) error {
	return m.Called(ctx, userID, tenantID, role, status).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type mockModulePermissionRepo struct {
	mock.Mock
}

func (m *mockModulePermissionRepo) GetByUserAndModule(ctx context.Context, userID uuid.UUID, module string) (*models.ModulePermission, error) {
	args := m.Called(ctx, userID, module)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModulePermission), args.Error(1)
}

func (m *mockModulePermissionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.ModulePermission, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ModulePermission), args.Error(1)
}

func (m *mockModulePermissionRepo) Upsert(ctx context.Context, perm *models.ModulePermission) error {
	return m.Called(ctx, perm).Error(0)
}

func (m *mockModulePermissionRepo) GrantAll(ctx context.Context, userID uuid.UUID, modules []string) error {
	return m.Called(ctx, userID, modules).Error(0)
}

func (m *mockModulePermissionRepo) ReplaceForUser(ctx context.Context, userID uuid.UUID, perms map[string]authz.ActionSet) error {
	return m.Called(ctx, userID, perms).Error(0)
}

func (m *mockModulePermissionRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockInvitationRepo struct {
	mock.Mock
}

func (m *mockInvitationRepo) Create(ctx context.Context, invitation *models.Invitation) error {
	return m.Called(ctx, invitation).Error(0)
}

func (m *mockInvitationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *mockInvitationRepo) HasPending(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockInvitationRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Invitation, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invitation), args.Error(1)
}

func (m *mockInvitationRepo) TransitionStatus(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockInvitationRepo) RevertToPending(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInvitationRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockTenantRepo struct {
	mock.Mock
}

func (m *mockTenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	return m.Called(ctx, tenant).Error(0)
}

func (m *mockTenantRepo) CreateWithOwner(ctx context.Context, tenant *models.Tenant, userID uuid.UUID) error {
	return m.Called(ctx, tenant, userID).Error(0)
}

func (m *mockTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *mockTenantRepo) ListActive(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *mockTenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	return m.Called(ctx, tenant).Error(0)
}

func (m *mockTenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *mockCustomerRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.CustomerSearchFilter) ([]*models.Customer, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Customer), args.Int(1), args.Error(2)
}

type mockSupplierRepo struct {
	mock.Mock
}

func (m *mockSupplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *mockSupplierRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Supplier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Supplier, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *mockSupplierRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *mockSupplierRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.SupplierSearchFilter) ([]*models.Supplier, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Supplier), args.Int(1), args.Error(2)
}

type mockInventoryRepo struct {
	mock.Mock
}

func (m *mockInventoryRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockInventoryRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.InventoryItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *mockInventoryRepo) Update(ctx context.Context, item *models.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockInventoryRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *mockInventoryRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.InventorySearchFilter) ([]*models.InventoryItem, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.InventoryItem), args.Int(1), args.Error(2)
}

func (m *mockInventoryRepo) AdjustQuantity(ctx context.Context, tenantID, id uuid.UUID, delta int) error {
	return m.Called(ctx, tenantID, id, delta).Error(0)
}

func (m *mockInventoryRepo) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

type mockPurchaseRepo struct {
	mock.Mock
}

func (m *mockPurchaseRepo) CreateWithItems(ctx context.Context, purchase *models.Purchase) error {
	return m.Called(ctx, purchase).Error(0)
}

func (m *mockPurchaseRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Purchase, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Purchase), args.Error(1)
}

func (m *mockPurchaseRepo) Update(ctx context.Context, purchase *models.Purchase) error {
	return m.Called(ctx, purchase).Error(0)
}

func (m *mockPurchaseRepo) Receive(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockPurchaseRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *mockPurchaseRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.PurchaseSearchFilter) ([]*models.Purchase, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Purchase), args.Int(1), args.Error(2)
}

func (m *mockPurchaseRepo) ListItems(ctx context.Context, purchaseID uuid.UUID) ([]*models.PurchaseItem, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PurchaseItem), args.Error(1)
}

type mockServiceOrderRepo struct {
	mock.Mock
}

func (m *mockServiceOrderRepo) Create(ctx context.Context, order *models.ServiceOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockServiceOrderRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ServiceOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceOrder), args.Error(1)
}

func (m *mockServiceOrderRepo) Update(ctx context.Context, order *models.ServiceOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockServiceOrderRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *mockServiceOrderRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.ServiceOrderSearchFilter) ([]*models.ServiceOrder, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.ServiceOrder), args.Int(1), args.Error(2)
}

func (m *mockServiceOrderRepo) NextNumber(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

type mockVehicleRepo struct {
	mock.Mock
}

func (m *mockVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return m.Called(ctx, vehicle).Error(0)
}

func (m *mockVehicleRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *mockVehicleRepo) Update(ctx context.Context, vehicle *models.Vehicle) error {
	return m.Called(ctx, vehicle).Error(0)
}

func (m *mockVehicleRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *mockVehicleRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.VehicleSearchFilter) ([]*models.Vehicle, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Vehicle), args.Int(1), args.Error(2)
}

type mockPermissionService struct {
	mock.Mock
}

func (m *mockPermissionService) SubjectFor(ctx context.Context, userID uuid.UUID) (authz.Subject, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(authz.Subject), args.Error(1)
}

func (m *mockPermissionService) Authorize(ctx context.Context, userID uuid.UUID, module string, action authz.Action) error {
	return m.Called(ctx, userID, module, action).Error(0)
}

func (m *mockPermissionService) EnsureOwnerDefaults(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockPermissionService) ListForUser(ctx context.Context, callerID, userID uuid.UUID) ([]*models.ModulePermission, error) {
	args := m.Called(ctx, callerID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ModulePermission), args.Error(1)
}

func (m *mockPermissionService) SetForUser(ctx context.Context, callerID, userID uuid.UUID, perms map[string]authz.ActionSet) error {
	return m.Called(ctx, callerID, userID, perms).Error(0)
}

func (m *mockPermissionService) Invalidate(ctx context.Context, userID uuid.UUID) {
	m.Called(ctx, userID)
}

type mockChatRepo struct {
	mock.Mock
}

func (m *mockChatRepo) Create(ctx context.Context, message *models.ChatMessage) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockChatRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ChatMessage, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChatMessage), args.Error(1)
}

// mockCacheService is a pass-through cache: reads always miss, writes are
// accepted. Tests that care about cache hits stub GetUserPermissions
// explicitly instead.
type mockCacheService struct {
	mock.Mock
}

func (m *mockCacheService) GetUserPermissions(ctx context.Context, userID uuid.UUID) (*caching.UserPermissions, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*caching.UserPermissions), args.Error(1)
}

func (m *mockCacheService) SetUserPermissions(ctx context.Context, userID uuid.UUID, perms *caching.UserPermissions, ttl time.Duration) error {
	args := m.Called(ctx, userID, perms, ttl)
	return args.Error(0)
}

func (m *mockCacheService) InvalidateUserPermissions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *mockCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	return m.Called(ctx, key, window).Error(0)
}

func (m *mockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCacheService) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCacheService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
