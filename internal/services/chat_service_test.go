package services

import (
	"context"
	"testing"

	"garagedesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type stubResponder struct {
	reply string
	err   error
}

func (s *stubResponder) Respond(ctx context.Context, tenantID uuid.UUID, message string) (string, error) {
	return s.reply, s.err
}

type ChatServiceTestSuite struct {
	suite.Suite
	chatRepo  *mockChatRepo
	responder *stubResponder
	service   ChatService
	tenantID  uuid.UUID
	userID    uuid.UUID
	ctx       context.Context
}

func (suite *ChatServiceTestSuite) SetupTest() {
	suite.chatRepo = &mockChatRepo{}
	suite.responder = &stubResponder{reply: "Here is what I found."}
	suite.service = NewChatService(suite.chatRepo, suite.responder)
	suite.tenantID = uuid.New()
	suite.userID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *ChatServiceTestSuite) TestSend_PersistsBothMessagesInOrder() {
	suite.chatRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.ChatMessage")).Return(nil).Twice()

	messages, err := suite.service.Send(suite.ctx, suite.userID, suite.tenantID, "  how many customers do we have? ")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), messages, 2)
	assert.Equal(suite.T(), models.ChatSenderUser, messages[0].Sender)
	assert.Equal(suite.T(), "how many customers do we have?", messages[0].Content)
	assert.Equal(suite.T(), models.ChatSenderAssistant, messages[1].Sender)
	assert.Equal(suite.T(), "Here is what I found.", messages[1].Content)
	assert.Equal(suite.T(), suite.tenantID, messages[0].TenantID)
	assert.Equal(suite.T(), suite.tenantID, messages[1].TenantID)
	suite.chatRepo.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestSend_EmptyMessageRejected() {
	_, err := suite.service.Send(suite.ctx, suite.userID, suite.tenantID, "   ")

	assert.ErrorIs(suite.T(), err, ErrValidation)
	suite.chatRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestSend_ResponderFailureDropsReply() {
	suite.responder.err = assert.AnError
	suite.chatRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.ChatMessage")).Return(nil).Once()

	_, err := suite.service.Send(suite.ctx, suite.userID, suite.tenantID, "anything")

	assert.Error(suite.T(), err)
	suite.chatRepo.AssertNumberOfCalls(suite.T(), "Create", 1)
}

type RuleResponderTestSuite struct {
	suite.Suite
	orderRepo     *mockServiceOrderRepo
	inventoryRepo *mockInventoryRepo
	customerRepo  *mockCustomerRepo
	responder     *RuleResponder
	tenantID      uuid.UUID
	ctx           context.Context
}

func (suite *RuleResponderTestSuite) SetupTest() {
	suite.orderRepo = &mockServiceOrderRepo{}
	suite.inventoryRepo = &mockInventoryRepo{}
	suite.customerRepo = &mockCustomerRepo{}
	suite.responder = NewRuleResponder(suite.orderRepo, suite.inventoryRepo, suite.customerRepo)
	suite.tenantID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *RuleResponderTestSuite) TestLowStockRuleSummarizesItems() {
	suite.inventoryRepo.On("ListLowStock", suite.ctx, suite.tenantID).Return([]*models.InventoryItem{
		{Name: "Oil filter", Quantity: 1, MinQuantity: 5},
	}, nil)

	reply, err := suite.responder.Respond(suite.ctx, suite.tenantID, "Which parts are running low?")

	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), reply, "Oil filter")
	assert.Contains(suite.T(), reply, "1 item(s) need restocking")
}

func (suite *RuleResponderTestSuite) TestLowStockRuleWithHealthyInventory() {
	suite.inventoryRepo.On("ListLowStock", suite.ctx, suite.tenantID).Return([]*models.InventoryItem{}, nil)

	reply, err := suite.responder.Respond(suite.ctx, suite.tenantID, "anything to restock?")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "All inventory items are above their minimum quantity.", reply)
}

func (suite *RuleResponderTestSuite) TestOpenOrdersRuleCountsByStatus() {
	suite.orderRepo.On("Search", suite.ctx, suite.tenantID, mock.MatchedBy(func(f *models.ServiceOrderSearchFilter) bool {
		return f.Status != nil && *f.Status == models.ServiceOrderOpen && f.Limit == 1
	})).Return([]*models.ServiceOrder{{}}, 3, nil)

	reply, err := suite.responder.Respond(suite.ctx, suite.tenantID, "How many open orders today?")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "There are 3 open service order(s).", reply)
}

// "low stock" outranks the later customer rule even when a message mentions
// both topics.
func (suite *RuleResponderTestSuite) TestFirstMatchingRuleWins() {
	suite.inventoryRepo.On("ListLowStock", suite.ctx, suite.tenantID).Return([]*models.InventoryItem{}, nil)

	_, err := suite.responder.Respond(suite.ctx, suite.tenantID, "do any customer cars need low stock parts?")

	assert.NoError(suite.T(), err)
	suite.customerRepo.AssertNotCalled(suite.T(), "Search", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RuleResponderTestSuite) TestUnmatchedMessageGetsFallback() {
	reply, err := suite.responder.Respond(suite.ctx, suite.tenantID, "what's the weather like?")

	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), reply, "I can help with")
}

func TestChatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChatServiceTestSuite))
}

func TestRuleResponderTestSuite(t *testing.T) {
	suite.Run(t, new(RuleResponderTestSuite))
}
