package mocks

import (
	"context"

	"github.com/Rathore23/auth-microservice/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc        func(ctx context.Context, user *domain.User) (*domain.OTPRecord, error)
	LatestForFunc    func(ctx context.Context, user *domain.User) (*domain.OTPRecord, error)
	MarkVerifiedFunc func(ctx context.Context, record *domain.OTPRecord) error
	ConsumeFunc      func(ctx context.Context, record *domain.OTPRecord) error
	ResendFunc       func(ctx context.Context, email string) (*domain.OTPRecord, error)
	VerifyEmailFunc  func(ctx context.Context, email string, code int) (*domain.User, error)
	SendLoginOTPFunc func(ctx context.Context, phone string) (*domain.OTPRecord, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue issues a record; the default code is 1234
func (m *MockOTPService) Issue(ctx context.Context, user *domain.User) (*domain.OTPRecord, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, user)
	}
	return &domain.OTPRecord{ID: 1, UserID: user.ID, Code: 1234}, nil
}

func (m *MockOTPService) LatestFor(ctx context.Context, user *domain.User) (*domain.OTPRecord, error) {
	if m.LatestForFunc != nil {
		return m.LatestForFunc(ctx, user)
	}
	return nil, domain.ErrOTPMissing
}

func (m *MockOTPService) MarkVerified(ctx context.Context, record *domain.OTPRecord) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, record)
	}
	record.IsVerified = true
	return nil
}

func (m *MockOTPService) Consume(ctx context.Context, record *domain.OTPRecord) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, record)
	}
	return nil
}

func (m *MockOTPService) Resend(ctx context.Context, email string) (*domain.OTPRecord, error) {
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, email)
	}
	return &domain.OTPRecord{ID: 1, Code: 1234}, nil
}

func (m *MockOTPService) VerifyEmail(ctx context.Context, email string, code int) (*domain.User, error) {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, email, code)
	}
	return &domain.User{ID: 1, Email: email, IsEmailVerified: true}, nil
}

func (m *MockOTPService) SendLoginOTP(ctx context.Context, phone string) (*domain.OTPRecord, error) {
	if m.SendLoginOTPFunc != nil {
		return m.SendLoginOTPFunc(ctx, phone)
	}
	return &domain.OTPRecord{ID: 1, Code: 1234}, nil
}

var _ domain.OTPService = (*MockOTPService)(nil)
