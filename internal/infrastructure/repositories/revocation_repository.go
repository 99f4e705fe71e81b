package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/redis/go-redis/v9"
)

// RevocationRepositoryImpl implements domain.RevocationStore using Redis keys with TTL
type RevocationRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewRevocationRepository creates a new refresh-token blacklist
func NewRevocationRepository(client *redis.Client) domain.RevocationStore {
	return &RevocationRepositoryImpl{
		client: client,
		prefix: "token:blacklist:",
	}
}

// Revoke implements domain.RevocationStore. Re-revoking only refreshes the TTL.
func (r *RevocationRepositoryImpl) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already past expiry; the token is rejected on its exp claim anyway.
		ttl = time.Second
	}
	if err := r.client.Set(ctx, r.prefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsRevoked implements domain.RevocationStore
func (r *RevocationRepositoryImpl) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return n > 0, nil
}
