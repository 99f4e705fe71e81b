package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/Rathore23/auth-microservice/domain"
	"go.uber.org/zap"
)

const (
	otpMin = 1000
	otpMax = 9999
)

// OTPConfig configures the OTP ledger
type OTPConfig struct {
	TTL time.Duration
	// Rand is the entropy source for codes; defaults to crypto/rand
	Rand io.Reader
	// Now is the clock used for expiry; defaults to time.Now
	Now func() time.Time
}

// OTPServiceImpl implements domain.OTPService over the OTP ledger table
type OTPServiceImpl struct {
	otpRepo         domain.OTPRepository
	userRepo        domain.UserRepository
	notificationSvc domain.NotificationService
	logger          *zap.Logger
	config          OTPConfig
}

// NewOTPService creates the OTP ledger service
func NewOTPService(
	otpRepo domain.OTPRepository,
	userRepo domain.UserRepository,
	notificationSvc domain.NotificationService,
	logger *zap.Logger,
	config OTPConfig,
) domain.OTPService {
	if config.Rand == nil {
		config.Rand = rand.Reader
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.TTL <= 0 {
		config.TTL = 5 * time.Minute
	}
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		logger:          logger,
		config:          config,
	}
}

// Issue implements domain.OTPService. Earlier records are kept.
func (s *OTPServiceImpl) Issue(ctx context.Context, user *domain.User) (*domain.OTPRecord, error) {
	code, err := s.generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	record := &domain.OTPRecord{
		UserID:         user.ID,
		Code:           code,
		ExpirationTime: s.config.Now().Add(s.config.TTL),
	}
	if err := s.otpRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}
	return record, nil
}

// LatestFor implements domain.OTPService
func (s *OTPServiceImpl) LatestFor(ctx context.Context, user *domain.User) (*domain.OTPRecord, error) {
	return s.otpRepo.LatestForUser(ctx, user.ID)
}

// MarkVerified implements domain.OTPService
func (s *OTPServiceImpl) MarkVerified(ctx context.Context, record *domain.OTPRecord) error {
	if record.IsVerified {
		return nil
	}
	if err := s.otpRepo.MarkVerified(ctx, record.ID); err != nil {
		if errors.Is(err, domain.ErrAlreadyVerified) {
			return err
		}
		return fmt.Errorf("failed to mark OTP verified: %w", err)
	}
	record.IsVerified = true
	return nil
}

// Consume implements domain.OTPService. Older unverified records go with it so
// that none of them can surface as the latest record afterwards. Of two callers
// holding the same record only one succeeds.
func (s *OTPServiceImpl) Consume(ctx context.Context, record *domain.OTPRecord) error {
	if err := s.otpRepo.ConsumeThrough(ctx, record.UserID, record.ID); err != nil {
		if errors.Is(err, domain.ErrOTPAlreadyConsumed) {
			return err
		}
		return fmt.Errorf("failed to consume OTP: %w", err)
	}
	return nil
}

// Resend implements domain.OTPService
func (s *OTPServiceImpl) Resend(ctx context.Context, email string) (*domain.OTPRecord, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, failClosed(s.logger, err, domain.ErrInvalidEmail)
	}
	if user.IsEmailVerified {
		return nil, domain.ErrAlreadyVerified
	}

	record, err := s.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	subject, body := verificationEmail(user, record.Code)
	deliver(s.logger, "email", user.Email, func() error {
		return s.notificationSvc.SendEmail(user.Email, subject, body)
	})
	return record, nil
}

// VerifyEmail implements domain.OTPService
func (s *OTPServiceImpl) VerifyEmail(ctx context.Context, email string, code int) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, failClosed(s.logger, err, domain.ErrUserNotFound)
	}

	record, err := s.LatestFor(ctx, user)
	if err != nil {
		return nil, err
	}
	if record.IsVerified {
		return nil, domain.ErrAlreadyVerified
	}
	if record.Expired(s.config.Now()) {
		return nil, domain.ErrOTPExpired
	}
	if record.Code != code {
		return nil, domain.ErrOTPMismatch
	}

	if err := s.MarkVerified(ctx, record); err != nil {
		return nil, err
	}
	if err := s.userRepo.SetEmailVerified(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to verify email: %w", err)
	}
	user.IsEmailVerified = true
	return user, nil
}

// SendLoginOTP implements domain.OTPService
func (s *OTPServiceImpl) SendLoginOTP(ctx context.Context, phone string) (*domain.OTPRecord, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, failClosed(s.logger, err, domain.ErrUserNotFound)
	}

	record, err := s.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	deliver(s.logger, "sms", user.Phone, func() error {
		return s.notificationSvc.SendSMS(user.Phone, loginSMS(record.Code))
	})
	return record, nil
}

// generateCode draws a uniform code in [otpMin, otpMax]
func (s *OTPServiceImpl) generateCode() (int, error) {
	n, err := rand.Int(s.config.Rand, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return 0, err
	}
	return otpMin + int(n.Int64()), nil
}
