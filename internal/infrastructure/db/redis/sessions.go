package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tanit/user-management/internal/core/ports"
)

// SessionRecorder stores login records in Redis.
// Key format: session:<email>; value is the RFC3339 login timestamp.
// Entries expire with the token TTL; nothing in the authorization path ever
// reads them back.
type SessionRecorder struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRecorder creates a SessionRecorder wrapping the given Redis client.
func NewSessionRecorder(client *redis.Client, ttl time.Duration) *SessionRecorder {
	return &SessionRecorder{client: client, ttl: ttl}
}

// Record persists one login record, overwriting any previous session for the
// same email.
func (s *SessionRecorder) Record(ctx context.Context, session ports.SessionInput) error {
	key := fmt.Sprintf("session:%s", session.Email)
	if err := s.client.Set(ctx, key, session.LoginAt.Format(time.RFC3339), s.ttl).Err(); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}
