package mocks

import (
	"context"

	"github.com/Rathore23/auth-microservice/domain"
)

// MockSessionService implements domain.SessionService interface for testing
type MockSessionService struct {
	IssuePairFunc    func(user *domain.User) (*domain.TokenPair, error)
	RevokeFunc       func(ctx context.Context, refreshToken string) error
	VerifyAccessFunc func(token string) (*domain.TokenClaims, error)
	RefreshFunc      func(ctx context.Context, refreshToken string) (string, error)
}

// NewMockSessionService creates a new MockSessionService with default behaviors
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

func (m *MockSessionService) IssuePair(user *domain.User) (*domain.TokenPair, error) {
	if m.IssuePairFunc != nil {
		return m.IssuePairFunc(user)
	}
	return &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *MockSessionService) Revoke(ctx context.Context, refreshToken string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, refreshToken)
	}
	return nil
}

func (m *MockSessionService) VerifyAccess(token string) (*domain.TokenClaims, error) {
	if m.VerifyAccessFunc != nil {
		return m.VerifyAccessFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockSessionService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return "access", nil
}

var _ domain.SessionService = (*MockSessionService)(nil)
