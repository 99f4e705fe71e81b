package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rathore23/auth-microservice/domain"
)

// SessionServiceImpl implements domain.SessionService. Token pairs are stateless;
// the only server-side state is the refresh-token revocation set.
type SessionServiceImpl struct {
	tokenSvc    domain.TokenService
	revocations domain.RevocationStore
	now         func() time.Time
}

// NewSessionService creates the token issuer/revoker
func NewSessionService(tokenSvc domain.TokenService, revocations domain.RevocationStore, now func() time.Time) domain.SessionService {
	if now == nil {
		now = time.Now
	}
	return &SessionServiceImpl{tokenSvc: tokenSvc, revocations: revocations, now: now}
}

// IssuePair implements domain.SessionService
func (s *SessionServiceImpl) IssuePair(user *domain.User) (*domain.TokenPair, error) {
	access, err := s.tokenSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokenSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Revoke implements domain.SessionService. Revoking an already revoked token succeeds.
func (s *SessionServiceImpl) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return err
	}
	ttl := time.Unix(claims.ExpiresAt, 0).Sub(s.now())
	return s.revocations.Revoke(ctx, claims.JTI, ttl)
}

// VerifyAccess implements domain.SessionService. Access tokens are not revocable.
func (s *SessionServiceImpl) VerifyAccess(token string) (*domain.TokenClaims, error) {
	return s.tokenSvc.ValidateAccessToken(token)
}

// Refresh implements domain.SessionService; it returns a new access token
func (s *SessionServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", domain.ErrTokenRevoked
	}
	return s.tokenSvc.GenerateAccessToken(&domain.User{ID: claims.UserID})
}
