package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/Rathore23/auth-microservice/internal/infrastructure/auth"
	"github.com/Rathore23/auth-microservice/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	svc    domain.SessionService
	tokens domain.TokenService
	store  *mocks.MockRevocationStore
	clock  *clock
}

func newSessionForTest(t *testing.T) *sessionFixture {
	t.Helper()
	c := newClock()
	tokens := auth.NewJWTService("test-secret", "auth-microservice", 5*time.Minute, 24*time.Hour).WithClock(c.Now)
	store := mocks.NewMockRevocationStore()
	return &sessionFixture{svc: NewSessionService(tokens, store, c.Now), tokens: tokens, store: store, clock: c}
}

func TestSessionServiceImpl_IssuePair(t *testing.T) {
	svc := newSessionForTest(t).svc
	user := createValidUser(t)

	pair, err := svc.IssuePair(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.TokenTypeAccess, claims.TokenType)

	// A refresh token is not an access token
	_, err = svc.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestSessionServiceImpl_RevokeThenRefresh(t *testing.T) {
	f := newSessionForTest(t)
	ctx := context.Background()
	pair, err := f.svc.IssuePair(createValidUser(t))
	require.NoError(t, err)

	access, err := f.svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	claims, err := f.svc.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)

	f.clock.Advance(time.Hour)
	require.NoError(t, f.svc.Revoke(ctx, pair.RefreshToken))
	// Revoking twice is harmless
	require.NoError(t, f.svc.Revoke(ctx, pair.RefreshToken))

	refreshClaims, err := f.tokens.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	ttl, ok := f.store.TTL(refreshClaims.JTI)
	require.True(t, ok)
	assert.Equal(t, 23*time.Hour, ttl)

	_, err = f.svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}

func TestSessionServiceImpl_RevokeRejectsBadTokens(t *testing.T) {
	f := newSessionForTest(t)
	svc := f.svc
	ctx := context.Background()
	pair, err := svc.IssuePair(createValidUser(t))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		check func(error) bool
	}{
		{"garbage", "not-a-token", domain.IsTokenError},
		{"access token", pair.AccessToken, func(err error) bool { return errors.Is(err, domain.ErrTokenInvalid) }},
		{"empty", "", domain.IsTokenError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Revoke(ctx, tt.token)
			require.Error(t, err)
			assert.True(t, tt.check(err), "got %v", err)
		})
	}

	t.Run("expired", func(t *testing.T) {
		f.clock.Advance(25 * time.Hour)
		assert.ErrorIs(t, svc.Revoke(ctx, pair.RefreshToken), domain.ErrTokenExpired)
	})
}

func TestSessionServiceImpl_Refresh_StoreFailure(t *testing.T) {
	f := newSessionForTest(t)
	svc := f.svc
	f.store.IsRevokedFunc = func(ctx context.Context, jti string) (bool, error) {
		return false, errors.New("redis down")
	}
	pair, err := svc.IssuePair(createValidUser(t))
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.Error(t, err)
}

func TestSessionServiceImpl_IssuePair_GeneratorFailure(t *testing.T) {
	boom := errors.New("signing key unavailable")
	tests := []struct {
		name  string
		setup func(*mocks.MockTokenService)
	}{
		{"access", func(m *mocks.MockTokenService) {
			m.GenerateAccessTokenFunc = func(user *domain.User) (string, error) { return "", boom }
		}},
		{"refresh", func(m *mocks.MockTokenService) {
			m.GenerateRefreshTokenFunc = func(user *domain.User) (string, error) { return "", boom }
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := mocks.NewMockTokenService()
			tt.setup(tokens)
			svc := NewSessionService(tokens, mocks.NewMockRevocationStore(), newClock().Now)

			pair, err := svc.IssuePair(createValidUser(t))

			assert.Nil(t, pair)
			assert.ErrorIs(t, err, boom)
			assert.Contains(t, err.Error(), tt.name+" token")
		})
	}
}

func TestSessionServiceImpl_Revoke_TTLIsRemainingLifetime(t *testing.T) {
	c := newClock()
	tokens := mocks.NewMockTokenService()
	tokens.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 1, JTI: "jti-1", TokenType: domain.TokenTypeRefresh, ExpiresAt: testNow.Add(90 * time.Second).Unix()}, nil
	}
	store := mocks.NewMockRevocationStore()
	svc := NewSessionService(tokens, store, c.Now)

	require.NoError(t, svc.Revoke(context.Background(), "refresh_token_user_1"))

	ttl, ok := store.TTL("jti-1")
	require.True(t, ok)
	assert.Equal(t, 90*time.Second, ttl)

	_, err := svc.Refresh(context.Background(), "refresh_token_user_1")
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}
