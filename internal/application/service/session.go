package service

import (
	"context"
	"time"
)

// SessionStore remembers revoked tokens until they would have expired anyway.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
