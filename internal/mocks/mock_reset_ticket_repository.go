package mocks

import (
	"context"

	"github.com/Rathore23/auth-microservice/domain"
)

// MockResetTicketRepository implements domain.ResetTicketRepository interface for testing
type MockResetTicketRepository struct {
	CreateFunc   func(ctx context.Context, ticket *domain.PasswordResetTicket) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.PasswordResetTicket, error)
	DeleteFunc   func(ctx context.Context, id string) error
}

// NewMockResetTicketRepository creates a new MockResetTicketRepository with default behaviors
func NewMockResetTicketRepository() *MockResetTicketRepository {
	return &MockResetTicketRepository{}
}

// Create stores a ticket; the default assigns a fixed id
func (m *MockResetTicketRepository) Create(ctx context.Context, ticket *domain.PasswordResetTicket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ticket)
	}
	ticket.ID = "00000000-0000-0000-0000-000000000001"
	return nil
}

// FindByID looks a ticket up
func (m *MockResetTicketRepository) FindByID(ctx context.Context, id string) (*domain.PasswordResetTicket, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrResetTicketNotFound
}

// Delete removes a ticket
func (m *MockResetTicketRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

var _ domain.ResetTicketRepository = (*MockResetTicketRepository)(nil)
