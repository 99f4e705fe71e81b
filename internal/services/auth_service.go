package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rathore23/auth-microservice/domain"
	"go.uber.org/zap"
)

// AuthConfig configures the authentication engine
type AuthConfig struct {
	// ResetTTL is the lifetime of a password-reset ticket
	ResetTTL time.Duration
	// ResetURLBase prefixes the reset link, e.g. https://example.com
	ResetURLBase string
	Now          func() time.Time
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	resetRepo       domain.ResetTicketRepository
	passwordSvc     domain.PasswordService
	otpSvc          domain.OTPService
	sessionSvc      domain.SessionService
	notificationSvc domain.NotificationService
	logger          *zap.Logger
	config          AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	resetRepo domain.ResetTicketRepository,
	passwordSvc domain.PasswordService,
	otpSvc domain.OTPService,
	sessionSvc domain.SessionService,
	notificationSvc domain.NotificationService,
	logger *zap.Logger,
	config AuthConfig,
) domain.AuthService {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.ResetTTL <= 0 {
		config.ResetTTL = 15 * time.Minute
	}
	return &AuthServiceImpl{
		userRepo:        userRepo,
		resetRepo:       resetRepo,
		passwordSvc:     passwordSvc,
		otpSvc:          otpSvc,
		sessionSvc:      sessionSvc,
		notificationSvc: notificationSvc,
		logger:          logger,
		config:          config,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if reg.Email == "" {
		return nil, domain.NewValidationError("email", "This field is required.")
	}
	if !reg.Role.Valid() {
		return nil, domain.NewValidationError("role", fmt.Sprintf("\"%s\" is not a valid choice.", reg.Role))
	}
	if err := s.ensureUnique(ctx, reg); err != nil {
		return nil, err
	}

	hashedPassword, err := s.passwordSvc.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     reg.Username,
		Email:        strings.ToLower(reg.Email),
		Phone:        reg.Phone,
		PasswordHash: hashedPassword,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Role:         reg.Role,
		IsActive:     true,
		DateJoined:   s.config.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, domain.NewValidationError("email", "A user with that email already exists.")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	record, err := s.otpSvc.Issue(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue OTP: %w", err)
	}

	subject, body := verificationEmail(user, record.Code)
	deliver(s.logger, "email", user.Email, func() error {
		return s.notificationSvc.SendEmail(user.Email, subject, body)
	})

	s.logger.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// ensureUnique reports the first identity field already taken
func (s *AuthServiceImpl) ensureUnique(ctx context.Context, reg domain.Registration) error {
	checks := []struct {
		field, value string
		find         func(context.Context, string) (*domain.User, error)
	}{
		{"username", reg.Username, s.userRepo.FindByUsername},
		{"email", reg.Email, s.userRepo.FindByEmail},
		{"phone", reg.Phone, s.userRepo.FindByPhone},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		_, err := c.find(ctx, c.value)
		if err == nil {
			return domain.NewValidationError(c.field, fmt.Sprintf("A user with that %s already exists.", c.field))
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("failed to check %s: %w", c.field, err)
		}
	}
	return nil
}

// AuthenticatePassword implements domain.AuthService
func (s *AuthServiceImpl) AuthenticatePassword(ctx context.Context, identifier, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, identifier)
	if err != nil {
		return nil, failClosed(s.logger, err, domain.ErrUserNotFound)
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// AuthenticateOTP implements domain.AuthService. A successful match consumes the code.
func (s *AuthServiceImpl) AuthenticateOTP(ctx context.Context, phoneOrEmail string, code int) (*domain.User, error) {
	var (
		user *domain.User
		err  error
	)
	if strings.Contains(phoneOrEmail, "@") {
		user, err = s.userRepo.FindByEmail(ctx, phoneOrEmail)
	} else {
		user, err = s.userRepo.FindByPhone(ctx, phoneOrEmail)
	}
	if err != nil {
		return nil, failClosed(s.logger, err, domain.ErrUserNotFound)
	}

	record, err := s.otpSvc.LatestFor(ctx, user)
	if err != nil {
		return nil, err
	}
	if record.Expired(s.config.Now()) {
		return nil, domain.ErrOTPExpired
	}
	if record.Code != code {
		return nil, domain.ErrOTPMismatch
	}
	// Email-verification codes are never valid for login
	if record.IsVerified {
		return nil, domain.ErrOTPAlreadyConsumed
	}

	if err := s.otpSvc.Consume(ctx, record); err != nil {
		return nil, err
	}
	return user, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, creds domain.LoginCredentials) (*domain.LoginResult, error) {
	passwordBranch := creds.Email != "" && creds.Password != ""
	otpBranch := creds.Phone != "" && creds.OTP != nil
	if passwordBranch == otpBranch {
		return nil, domain.ErrInvalidCombination
	}

	var (
		user *domain.User
		err  error
	)
	if passwordBranch {
		user, err = s.AuthenticatePassword(ctx, creds.Email, creds.Password)
	} else {
		user, err = s.AuthenticateOTP(ctx, creds.Phone, *creds.OTP)
	}
	if err != nil {
		return nil, err
	}

	pair, err := s.sessionSvc.IssuePair(user)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResult{User: user, Tokens: *pair}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.sessionSvc.Revoke(ctx, refreshToken)
}

// RefreshToken implements domain.AuthService
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return s.sessionSvc.Refresh(ctx, refreshToken)
}

// RequestPasswordReset implements domain.AuthService
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) (*domain.PasswordResetTicket, error) {
	if email == "" {
		return nil, domain.NewValidationError("email", "Email field is required.")
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, failClosed(s.logger, err, domain.ErrUserNotFound)
	}

	ticket := &domain.PasswordResetTicket{
		UserID:         user.ID,
		ExpirationTime: s.config.Now().Add(s.config.ResetTTL),
	}
	if err := s.resetRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create reset ticket: %w", err)
	}

	url := fmt.Sprintf("%s/forgot-password/%s/", strings.TrimRight(s.config.ResetURLBase, "/"), ticket.ID)
	subject, body := resetEmail(user, url)
	deliver(s.logger, "email", user.Email, func() error {
		return s.notificationSvc.SendEmail(user.Email, subject, body)
	})
	return ticket, nil
}

// ConfirmPasswordReset implements domain.AuthService. Tickets are single use.
func (s *AuthServiceImpl) ConfirmPasswordReset(ctx context.Context, ticketID, newPassword string) error {
	ticket, err := s.resetRepo.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.Expired(s.config.Now()) {
		if err := s.resetRepo.Delete(ctx, ticket.ID); err != nil {
			s.logger.Warn("failed to drop expired reset ticket", zap.Error(err))
		}
		return domain.ErrResetTicketExpired
	}

	user, err := s.userRepo.FindByID(ctx, ticket.UserID)
	if err != nil {
		return failClosed(s.logger, err, domain.ErrResetTicketNotFound)
	}
	hashed, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Claim the ticket before writing; a concurrent confirmation loses here
	if err := s.resetRepo.Delete(ctx, ticket.ID); err != nil {
		if errors.Is(err, domain.ErrResetTicketNotFound) {
			return err
		}
		return fmt.Errorf("failed to claim reset ticket: %w", err)
	}
	user.PasswordHash = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
