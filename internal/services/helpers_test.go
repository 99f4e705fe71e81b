package services

import (
	"testing"
	"time"

	"github.com/Rathore23/auth-microservice/domain"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// zeroReader makes crypto/rand.Int deterministic: every draw is the lower bound
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// clock is a settable time source
type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock { return &clock{t: testNow} }

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zap.NewNop()
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()
	return &domain.User{
		ID:           1,
		Username:     "alice",
		Email:        "a@x.com",
		Phone:        "+15550001",
		PasswordHash: "hashed_Secret123!",
		FirstName:    "Alice",
		Role:         domain.RoleEmployee,
		IsActive:     true,
		DateJoined:   testNow,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }
