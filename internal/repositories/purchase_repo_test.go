package repositories

import (
	"context"
	"testing"

	"garagedesk/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PurchaseRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       PurchaseRepository
	tenantID   uuid.UUID
	purchaseID uuid.UUID
	ctx        context.Context
}

func (suite *PurchaseRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewPurchaseRepository(mock)
	suite.tenantID = uuid.New()
	suite.purchaseID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *PurchaseRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func (suite *PurchaseRepoTestSuite) TestReceive_MarksAndAppliesStockInOneTransaction() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`UPDATE purchases`).
		WithArgs(models.PurchaseReceived, suite.tenantID, suite.purchaseID, models.PurchasePending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`UPDATE inventory_items`).
		WithArgs(suite.purchaseID, suite.tenantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	suite.mock.ExpectCommit()

	received, err := suite.repo.Receive(suite.ctx, suite.tenantID, suite.purchaseID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), received)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PurchaseRepoTestSuite) TestReceive_AlreadyReceivedLeavesStockAlone() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`UPDATE purchases`).
		WithArgs(models.PurchaseReceived, suite.tenantID, suite.purchaseID, models.PurchasePending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectRollback()

	received, err := suite.repo.Receive(suite.ctx, suite.tenantID, suite.purchaseID)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), received)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func TestPurchaseRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseRepoTestSuite))
}
