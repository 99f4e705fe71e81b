package mocks

import (
	"context"

	"github.com/Rathore23/auth-microservice/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing
type MockOTPRepository struct {
	CreateFunc                  func(ctx context.Context, record *domain.OTPRecord) error
	LatestForUserFunc           func(ctx context.Context, userID uint) (*domain.OTPRecord, error)
	MarkVerifiedFunc            func(ctx context.Context, id uint) error
	DeleteFunc                  func(ctx context.Context, id uint) error
	ConsumeThroughFunc          func(ctx context.Context, userID, id uint) error
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

// Create stores a record
func (m *MockOTPRepository) Create(ctx context.Context, record *domain.OTPRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return nil
}

// LatestForUser returns the newest record of a user
func (m *MockOTPRepository) LatestForUser(ctx context.Context, userID uint) (*domain.OTPRecord, error) {
	if m.LatestForUserFunc != nil {
		return m.LatestForUserFunc(ctx, userID)
	}
	// Default behavior: no record
	return nil, domain.ErrOTPMissing
}

// MarkVerified flips the verified flag
func (m *MockOTPRepository) MarkVerified(ctx context.Context, id uint) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, id)
	}
	return nil
}

// Delete removes a record
func (m *MockOTPRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// ConsumeThrough removes the matched record and older unverified ones
func (m *MockOTPRepository) ConsumeThrough(ctx context.Context, userID, id uint) error {
	if m.ConsumeThroughFunc != nil {
		return m.ConsumeThroughFunc(ctx, userID, id)
	}
	return nil
}

var _ domain.OTPRepository = (*MockOTPRepository)(nil)
