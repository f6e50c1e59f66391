package services

import (
	"context"
	"fmt"
	"strings"

	"garagedesk/internal/common"
	"garagedesk/internal/models"
	"garagedesk/internal/repositories"

	"github.com/google/uuid"
)

// Responder produces the assistant reply for a chat message. The stock
// implementation is a rule table; a model-backed one can be swapped in
// without touching the chat service.
type Responder interface {
	Respond(ctx context.Context, tenantID uuid.UUID, message string) (string, error)
}

type ChatService interface {
	// Send stores the user's message, produces the assistant reply and
	// stores that too. Both messages are returned in order.
	Send(ctx context.Context, userID, tenantID uuid.UUID, content string) ([]*models.ChatMessage, error)
	History(ctx context.Context, userID, tenantID uuid.UUID, limit, offset int) ([]*models.ChatMessage, error)
}

type chatService struct {
	chatRepo  repositories.ChatRepository
	responder Responder
}

func NewChatService(chatRepo repositories.ChatRepository, responder Responder) ChatService {
	return &chatService{chatRepo: chatRepo, responder: responder}
}

func (s *chatService) Send(ctx context.Context, userID, tenantID uuid.UUID, content string) ([]*models.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("message content is required")
	}
	if len(content) > 4000 {
		return nil, validationError("message content exceeds 4000 characters")
	}

	userMsg := &models.ChatMessage{
		ID:       uuid.New(),
		TenantID: tenantID,
		UserID:   userID,
		Sender:   models.ChatSenderUser,
		Content:  content,
	}
	if err := s.chatRepo.Create(ctx, userMsg); err != nil {
		return nil, err
	}

	reply, err := s.responder.Respond(ctx, tenantID, content)
	if err != nil {
		return nil, err
	}

	assistantMsg := &models.ChatMessage{
		ID:       uuid.New(),
		TenantID: tenantID,
		UserID:   userID,
		Sender:   models.ChatSenderAssistant,
		Content:  reply,
	}
	if err := s.chatRepo.Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	return []*models.ChatMessage{userMsg, assistantMsg}, nil
}

func (s *chatService) History(ctx context.Context, userID, tenantID uuid.UUID, limit, offset int) ([]*models.ChatMessage, error) {
	limit, offset = common.NormalizePagination(limit, offset)
	return s.chatRepo.ListByTenant(ctx, tenantID, limit, offset)
}

// chatRule matches a message by keywords. Rules are evaluated in priority
// order and the first match wins.
type chatRule struct {
	keywords []string
	respond  func(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// RuleResponder answers workshop questions from live tenant data using a
// fixed keyword rule table.
type RuleResponder struct {
	orderRepo     repositories.ServiceOrderRepository
	inventoryRepo repositories.InventoryRepository
	customerRepo  repositories.CustomerRepository
	rules         []chatRule
}

func NewRuleResponder(orderRepo repositories.ServiceOrderRepository, inventoryRepo repositories.InventoryRepository, customerRepo repositories.CustomerRepository) *RuleResponder {
	r := &RuleResponder{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		customerRepo:  customerRepo,
	}
	r.rules = []chatRule{
		{
			keywords: []string{"low stock", "restock", "running low"},
			respond:  r.lowStockAnswer,
		},
		{
			keywords: []string{"open order", "pending order", "service order"},
			respond:  r.openOrdersAnswer,
		},
		{
			keywords: []string{"customer", "client"},
			respond:  r.customersAnswer,
		},
	}
	return r
}

func (r *RuleResponder) Respond(ctx context.Context, tenantID uuid.UUID, message string) (string, error) {
	lower := strings.ToLower(message)
	for _, rule := range r.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.respond(ctx, tenantID)
			}
		}
	}
	return "I can help with low stock, open service orders and customer counts. Try asking about one of those.", nil
}

func (r *RuleResponder) lowStockAnswer(ctx context.Context, tenantID uuid.UUID) (string, error) {
	items, err := r.inventoryRepo.ListLowStock(ctx, tenantID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "All inventory items are above their minimum quantity.", nil
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, fmt.Sprintf("%s (%d left, min %d)", item.Name, item.Quantity, item.MinQuantity))
	}
	return fmt.Sprintf("%d item(s) need restocking: %s.", len(items), strings.Join(names, ", ")), nil
}

func (r *RuleResponder) openOrdersAnswer(ctx context.Context, tenantID uuid.UUID) (string, error) {
	status := models.ServiceOrderOpen
	_, total, err := r.orderRepo.Search(ctx, tenantID, &models.ServiceOrderSearchFilter{Status: &status, Limit: 1})
	if err != nil {
		return "", err
	}
	if total == 0 {
		return "There are no open service orders right now.", nil
	}
	return fmt.Sprintf("There are %d open service order(s).", total), nil
}

func (r *RuleResponder) customersAnswer(ctx context.Context, tenantID uuid.UUID) (string, error) {
	_, total, err := r.customerRepo.Search(ctx, tenantID, &models.CustomerSearchFilter{Limit: 1})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("You have %d customer(s) registered.", total), nil
}
