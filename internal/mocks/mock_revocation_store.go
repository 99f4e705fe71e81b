package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/Rathore23/auth-microservice/domain"
)

// MockRevocationStore implements domain.RevocationStore. Without overrides it
// behaves as an in-memory set.
type MockRevocationStore struct {
	RevokeFunc    func(ctx context.Context, jti string, ttl time.Duration) error
	IsRevokedFunc func(ctx context.Context, jti string) (bool, error)

	mu      sync.Mutex
	revoked map[string]time.Duration
}

// NewMockRevocationStore creates a new MockRevocationStore with default behaviors
func NewMockRevocationStore() *MockRevocationStore {
	return &MockRevocationStore{revoked: make(map[string]time.Duration)}
}

// Revoke adds jti to the set
func (m *MockRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, jti, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = ttl
	return nil
}

// IsRevoked reports membership
func (m *MockRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if m.IsRevokedFunc != nil {
		return m.IsRevokedFunc(ctx, jti)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}

// TTL returns the ttl a jti was revoked with
func (m *MockRevocationStore) TTL(jti string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ttl, ok := m.revoked[jti]
	return ttl, ok
}

var _ domain.RevocationStore = (*MockRevocationStore)(nil)
