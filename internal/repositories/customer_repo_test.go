package repositories

import (
	"context"
	"testing"
	"time"

	"garagedesk/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CustomerRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       CustomerRepository
	tenantID   uuid.UUID
	customerID uuid.UUID
	ctx        context.Context
}

func (suite *CustomerRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewCustomerRepository(mock)
	suite.tenantID = uuid.New()
	suite.customerID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *CustomerRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func stringPtr(s string) *string {
	return &s
}

func (suite *CustomerRepoTestSuite) customerRows(customers ...*models.Customer) *pgxmock.Rows {
	rows := suite.mock.NewRows([]string{"id", "tenant_id", "name", "email", "phone", "document", "address", "status", "created_at", "updated_at"})
	for _, c := range customers {
		rows.AddRow(c.ID, c.TenantID, c.Name, c.Email, c.Phone, c.Document, c.Address, c.Status, c.CreatedAt, c.UpdatedAt)
	}
	return rows
}

func (suite *CustomerRepoTestSuite) TestCreate_Success() {
	customer := &models.Customer{
		ID:       suite.customerID,
		TenantID: suite.tenantID,
		Name:     "Maria Souza",
		Email:    stringPtr("maria@example.com"),
		Status:   "active",
	}

	suite.mock.ExpectExec(`INSERT INTO customers`).
		WithArgs(customer.ID, customer.TenantID, customer.Name, customer.Email, customer.Phone, customer.Document, customer.Address, customer.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, customer)

	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *CustomerRepoTestSuite) TestGetByID_ScopedToTenant() {
	now := time.Now()
	customer := &models.Customer{
		ID:        suite.customerID,
		TenantID:  suite.tenantID,
		Name:      "Maria Souza",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	suite.mock.ExpectQuery(`SELECT .+ FROM customers WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(suite.tenantID, suite.customerID).
		WillReturnRows(suite.customerRows(customer))

	found, err := suite.repo.GetByID(suite.ctx, suite.tenantID, suite.customerID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), customer.ID, found.ID)
	assert.Equal(suite.T(), customer.Name, found.Name)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *CustomerRepoTestSuite) TestGetByID_OtherTenantSeesNoRow() {
	otherTenant := uuid.New()

	suite.mock.ExpectQuery(`SELECT .+ FROM customers WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(otherTenant, suite.customerID).
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.GetByID(suite.ctx, otherTenant, suite.customerID)

	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
}

func (suite *CustomerRepoTestSuite) TestSearch_CountsBeforePaging() {
	now := time.Now()
	page := []*models.Customer{
		{ID: uuid.New(), TenantID: suite.tenantID, Name: "Maria Souza", Status: "active", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), TenantID: suite.tenantID, Name: "Mariana Lima", Status: "active", CreatedAt: now, UpdatedAt: now},
	}

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customers WHERE tenant_id = \$1 AND \(`).
		WithArgs(suite.tenantID, "%maria%").
		WillReturnRows(suite.mock.NewRows([]string{"count"}).AddRow(7))
	suite.mock.ExpectQuery(`ORDER BY name ASC LIMIT \$3 OFFSET \$4`).
		WithArgs(suite.tenantID, "%maria%", 2, 0).
		WillReturnRows(suite.customerRows(page...))

	customers, total, err := suite.repo.Search(suite.ctx, suite.tenantID, &models.CustomerSearchFilter{
		Query: "maria",
		Limit: 2,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7, total)
	assert.Len(suite.T(), customers, 2)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *CustomerRepoTestSuite) TestDelete_ScopedToTenant() {
	suite.mock.ExpectExec(`DELETE FROM customers WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(suite.tenantID, suite.customerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.ctx, suite.tenantID, suite.customerID)

	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func TestCustomerRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerRepoTestSuite))
}
