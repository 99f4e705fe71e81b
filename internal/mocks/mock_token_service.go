package mocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rathore23/auth-microservice/domain"
)

// MockTokenService implements domain.TokenService interface for testing.
// Default tokens have the form "<type>_token_user_<id>".
type MockTokenService struct {
	GenerateAccessTokenFunc  func(user *domain.User) (string, error)
	GenerateRefreshTokenFunc func(user *domain.User) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken generates an access token for the user
func (m *MockTokenService) GenerateAccessToken(user *domain.User) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(user)
	}
	return fmt.Sprintf("access_token_user_%d", user.ID), nil
}

// GenerateRefreshToken generates a refresh token for the user
func (m *MockTokenService) GenerateRefreshToken(user *domain.User) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(user)
	}
	return fmt.Sprintf("refresh_token_user_%d", user.ID), nil
}

// ValidateAccessToken validates an access token and returns claims
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return parseMockToken(token, domain.TokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token and returns claims
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return parseMockToken(token, domain.TokenTypeRefresh)
}

func parseMockToken(token, tokenType string) (*domain.TokenClaims, error) {
	prefix := tokenType + "_token_user_"
	if !strings.HasPrefix(token, prefix) {
		return nil, domain.ErrTokenInvalid
	}
	var id uint
	if _, err := fmt.Sscanf(strings.TrimPrefix(token, prefix), "%d", &id); err != nil {
		return nil, domain.ErrTokenMalformed
	}
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    id,
		TokenType: tokenType,
		JTI:       token,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}, nil
}

var _ domain.TokenService = (*MockTokenService)(nil)
