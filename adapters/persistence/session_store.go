package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/campus-connect/internal/application/service"
)

const revokedSessionPrefix = "session:revoked:"

type redisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) service.SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func (s *redisSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, revokedSessionPrefix+tokenID, 1, ttl).Err()
}

func (s *redisSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.rdb.Get(ctx, revokedSessionPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
