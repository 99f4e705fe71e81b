package mocks

import (
	"context"

	"github.com/Rathore23/auth-microservice/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc             func(ctx context.Context, reg domain.Registration) (*domain.User, error)
	AuthenticatePasswordFunc func(ctx context.Context, identifier, password string) (*domain.User, error)
	AuthenticateOTPFunc      func(ctx context.Context, phoneOrEmail string, code int) (*domain.User, error)
	LoginFunc                func(ctx context.Context, creds domain.LoginCredentials) (*domain.LoginResult, error)
	LogoutFunc               func(ctx context.Context, refreshToken string) error
	RefreshTokenFunc         func(ctx context.Context, refreshToken string) (string, error)
	RequestPasswordResetFunc func(ctx context.Context, email string) (*domain.PasswordResetTicket, error)
	ConfirmPasswordResetFunc func(ctx context.Context, ticketID, newPassword string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	return &domain.User{ID: 1, Email: reg.Email, Phone: reg.Phone, Username: reg.Username, Role: reg.Role, IsActive: true}, nil
}

func (m *MockAuthService) AuthenticatePassword(ctx context.Context, identifier, password string) (*domain.User, error) {
	if m.AuthenticatePasswordFunc != nil {
		return m.AuthenticatePasswordFunc(ctx, identifier, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) AuthenticateOTP(ctx context.Context, phoneOrEmail string, code int) (*domain.User, error) {
	if m.AuthenticateOTPFunc != nil {
		return m.AuthenticateOTPFunc(ctx, phoneOrEmail, code)
	}
	return nil, domain.ErrOTPMissing
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, creds domain.LoginCredentials) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return nil, domain.ErrInvalidCredentials
}

// Logout revokes a refresh token
func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

// RefreshToken mints a new access token
func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return "new_access_token", nil
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) (*domain.PasswordResetTicket, error) {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, email)
	}
	return &domain.PasswordResetTicket{ID: "ticket"}, nil
}

func (m *MockAuthService) ConfirmPasswordReset(ctx context.Context, ticketID, newPassword string) error {
	if m.ConfirmPasswordResetFunc != nil {
		return m.ConfirmPasswordResetFunc(ctx, ticketID, newPassword)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
