package services

import (
	"context"
	"testing"
	"time"

	"garagedesk/internal/authz"
	"garagedesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvitationServiceTestSuite struct {
	suite.Suite
	invitationRepo *mockInvitationRepo
	userRepo       *mockUserRepo
	permRepo       *mockModulePermissionRepo
	perms          *mockPermissionService
	service        *invitationService
	tenantID       uuid.UUID
	callerID       uuid.UUID
	ctx            context.Context
	now            time.Time
}

func (suite *InvitationServiceTestSuite) SetupTest() {
	suite.invitationRepo = &mockInvitationRepo{}
	suite.userRepo = &mockUserRepo{}
	suite.permRepo = &mockModulePermissionRepo{}
	suite.perms = &mockPermissionService{}
	suite.service = NewInvitationService(suite.invitationRepo, suite.userRepo, suite.permRepo, suite.perms).(*invitationService)
	suite.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return suite.now }
	suite.tenantID = uuid.New()
	suite.callerID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *InvitationServiceTestSuite) pendingInvitation(email string) *models.Invitation {
	return &models.Invitation{
		ID:       uuid.New(),
		TenantID: suite.tenantID,
		Email:    email,
		Role:     authz.RoleTechnician,
		Permissions: map[string]authz.ActionSet{
			authz.ModuleVehicles: {Read: true, Update: true},
		},
		Status:    models.InvitationPending,
		ExpiresAt: suite.now.Add(48 * time.Hour),
		CreatedBy: suite.callerID,
	}
}

func (suite *InvitationServiceTestSuite) TestCreate_Success() {
	suite.perms.On("Authorize", suite.ctx, suite.callerID, authz.ModuleTeam, authz.ActionCreate).Return(nil)
	suite.invitationRepo.On("HasPending", suite.ctx, suite.tenantID, "mech@shop.com").Return(false, nil)
	suite.invitationRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Invitation")).Return(nil)

	invitation, err := suite.service.Create(suite.ctx, suite.callerID, suite.tenantID, &CreateInvitationRequest{
		Email: "  Mech@Shop.com ",
		Role:  authz.RoleTechnician,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "mech@shop.com", invitation.Email)
	assert.Equal(suite.T(), models.InvitationPending, invitation.Status)
	assert.Equal(suite.T(), suite.now.Add(invitationTTL), invitation.ExpiresAt)
	assert.NotNil(suite.T(), invitation.Permissions)
	suite.invitationRepo.AssertExpectations(suite.T())
}

func (suite *InvitationServiceTestSuite) TestCreate_DuplicatePendingRejected() {
	suite.perms.On("Authorize", suite.ctx, suite.callerID, authz.ModuleTeam, authz.ActionCreate).Return(nil)
	suite.invitationRepo.On("HasPending", suite.ctx, suite.tenantID, "mech@shop.com").Return(true, nil)

	_, err := suite.service.Create(suite.ctx, suite.callerID, suite.tenantID, &CreateInvitationRequest{
		Email: "mech@shop.com",
		Role:  authz.RoleTechnician,
	})

	assert.ErrorIs(suite.T(), err, ErrValidation)
	suite.invitationRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *InvitationServiceTestSuite) TestCreate_OwnerRoleRejected() {
	suite.perms.On("Authorize", suite.ctx, suite.callerID, authz.ModuleTeam, authz.ActionCreate).Return(nil)

	_, err := suite.service.Create(suite.ctx, suite.callerID, suite.tenantID, &CreateInvitationRequest{
		Email: "mech@shop.com",
		Role:  authz.RoleOwner,
	})

	assert.ErrorIs(suite.T(), err, ErrValidation)
}

func (suite *InvitationServiceTestSuite) TestAccept_Success() {
	userID := uuid.New()
	invitation := suite.pendingInvitation("mech@shop.com")

	suite.invitationRepo.On("GetByID", suite.ctx, invitation.ID).Return(invitation, nil)
	suite.userRepo.On("GetByID", suite.ctx, userID).Return(&models.User{
		ID:    userID,
		Email: "Mech@Shop.com",
	}, nil)
	suite.invitationRepo.On("TransitionStatus", suite.ctx, invitation.ID, models.InvitationAccepted).Return(true, nil)
	suite.userRepo.On("BindTenant", suite.ctx, userID, suite.tenantID, authz.RoleTechnician, "active").Return(nil)
	suite.permRepo.On("ReplaceForUser", suite.ctx, userID, invitation.Permissions).Return(nil)
	suite.perms.On("Invalidate", suite.ctx, userID).Return()

	accepted, err := suite.service.Accept(suite.ctx, invitation.ID, userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.InvitationAccepted, accepted.Status)
	suite.userRepo.AssertExpectations(suite.T())
	suite.permRepo.AssertExpectations(suite.T())
	suite.perms.AssertExpectations(suite.T())
}

func (suite *InvitationServiceTestSuite) TestAccept_EmailMismatch() {
	userID := uuid.New()
	invitation := suite.pendingInvitation("mech@shop.com")

	suite.invitationRepo.On("GetByID", suite.ctx, invitation.ID).Return(invitation, nil)
	suite.userRepo.On("GetByID", suite.ctx, userID).Return(&models.User{
		ID:    userID,
		Email: "someone.else@shop.com",
	}, nil)

	_, err := suite.service.Accept(suite.ctx, invitation.ID, userID)

	assert.ErrorIs(suite.T(), err, ErrValidation)
	suite.invitationRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvitationServiceTestSuite) TestAccept_ExpiredRejected() {
	userID := uuid.New()
	invitation := suite.pendingInvitation("mech@shop.com")
	invitation.ExpiresAt = suite.now.Add(-time.Hour)

	suite.invitationRepo.On("GetByID", suite.ctx, invitation.ID).Return(invitation, nil)

	_, err := suite.service.Accept(suite.ctx, invitation.ID, userID)

	assert.ErrorIs(suite.T(), err, ErrValidation)
	suite.userRepo.AssertNotCalled(suite.T(), "BindTenant", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Two concurrent accepts race on the guarded status transition; the loser
// sees transitioned=false and fails without touching the user.
func (suite *InvitationServiceTestSuite) TestAccept_SecondAcceptFails() {
	userID := uuid.New()
	invitation := suite.pendingInvitation("mech@shop.com")

	suite.invitationRepo.On("GetByID", suite.ctx, invitation.ID).Return(invitation, nil)
	suite.userRepo.On("GetByID", suite.ctx, userID).Return(&models.User{
		ID:    userID,
		Email: "mech@shop.com",
	}, nil)
	suite.invitationRepo.On("TransitionStatus", suite.ctx, invitation.ID, models.InvitationAccepted).Return(false, nil)

	_, err := suite.service.Accept(suite.ctx, invitation.ID, userID)

	assert.ErrorIs(suite.T(), err, ErrValidation)
	suite.userRepo.AssertNotCalled(suite.T(), "BindTenant", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.permRepo.AssertNotCalled(suite.T(), "ReplaceForUser", mock.Anything, mock.Anything, mock.Anything)
}

// A failed snapshot application must not leave the invitation consumed: the
// status goes back to pending so the invitee can retry.
func (suite *InvitationServiceTestSuite) TestAccept_SnapshotFailureReleasesInvitation() {
	userID := uuid.New()
	invitation := suite.pendingInvitation("mech@shop.com")

	suite.invitationRepo.On("GetByID", suite.ctx, invitation.ID).Return(invitation, nil)
	suite.userRepo.On("GetByID", suite.ctx, userID).Return(&models.User{
		ID:    userID,
		Email: "mech@shop.com",
	}, nil)
	suite.invitationRepo.On("TransitionStatus", suite.ctx, invitation.ID, models.InvitationAccepted).Return(true, nil)
	suite.userRepo.On("BindTenant", suite.ctx, userID, suite.tenantID, authz.RoleTechnician, "active").Return(nil)
	suite.permRepo.On("ReplaceForUser", suite.ctx, userID, invitation.Permissions).Return(assert.AnError)
	suite.invitationRepo.On("RevertToPending", suite.ctx, invitation.ID).Return(nil)

	_, err := suite.service.Accept(suite.ctx, invitation.ID, userID)

	assert.Error(suite.T(), err)
	suite.invitationRepo.AssertCalled(suite.T(), "RevertToPending", suite.ctx, invitation.ID)
	suite.perms.AssertNotCalled(suite.T(), "Invalidate", mock.Anything, mock.Anything)
}

func (suite *InvitationServiceTestSuite) TestAccept_BindFailureReleasesInvitation() {
	userID := uuid.New()
	invitation := suite.pendingInvitation("mech@shop.com")

	suite.invitationRepo.On("GetByID", suite.ctx, invitation.ID).Return(invitation, nil)
	suite.userRepo.On("GetByID", suite.ctx, userID).Return(&models.User{
		ID:    userID,
		Email: "mech@shop.com",
	}, nil)
	suite.invitationRepo.On("TransitionStatus", suite.ctx, invitation.ID, models.InvitationAccepted).Return(true, nil)
	suite.userRepo.On("BindTenant", suite.ctx, userID, suite.tenantID, authz.RoleTechnician, "active").Return(assert.AnError)
	suite.invitationRepo.On("RevertToPending", suite.ctx, invitation.ID).Return(nil)

	_, err := suite.service.Accept(suite.ctx, invitation.ID, userID)

	assert.Error(suite.T(), err)
	suite.invitationRepo.AssertCalled(suite.T(), "RevertToPending", suite.ctx, invitation.ID)
	suite.permRepo.AssertNotCalled(suite.T(), "ReplaceForUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvitationServiceTestSuite) TestCancel_WrongTenantReadsAsNotFound() {
	invitation := suite.pendingInvitation("mech@shop.com")
	invitation.TenantID = uuid.New()

	suite.perms.On("Authorize", suite.ctx, suite.callerID, authz.ModuleTeam, authz.ActionDelete).Return(nil)
	suite.invitationRepo.On("GetByID", suite.ctx, invitation.ID).Return(invitation, nil)

	err := suite.service.Cancel(suite.ctx, suite.callerID, suite.tenantID, invitation.ID)

	assert.ErrorIs(suite.T(), err, ErrNotFound)
	suite.invitationRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvitationServiceTestSuite) TestList_DisplaysStaleRowsAsExpired() {
	stale := suite.pendingInvitation("old@shop.com")
	stale.ExpiresAt = suite.now.Add(-time.Minute)
	fresh := suite.pendingInvitation("new@shop.com")

	suite.perms.On("Authorize", suite.ctx, suite.callerID, authz.ModuleTeam, authz.ActionRead).Return(nil)
	suite.invitationRepo.On("List", suite.ctx, suite.tenantID, 20, 0).Return([]*models.Invitation{stale, fresh}, nil)

	invitations, err := suite.service.List(suite.ctx, suite.callerID, suite.tenantID, 20, 0)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.InvitationExpired, invitations[0].Status)
	assert.Equal(suite.T(), models.InvitationPending, invitations[1].Status)
}

func TestInvitationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvitationServiceTestSuite))
}
