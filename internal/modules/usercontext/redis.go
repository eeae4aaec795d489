// README: Context store backed by Redis, one JSON blob per user with a TTL.
package usercontext

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 24 * time.Hour

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func contextKey(userID string) string {
	return "jetzy:context:" + userID
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*UserContext, error) {
	raw, err := s.rdb.Get(ctx, contextKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load context %s: %w", userID, err)
	}

	var uc UserContext
	if err := json.Unmarshal(raw, &uc); err != nil {
		return nil, fmt.Errorf("decode context %s: %w", userID, err)
	}
	if uc.Preferences == nil {
		uc.Preferences = map[string]string{}
	}
	return &uc, nil
}

func (s *RedisStore) Put(ctx context.Context, uc *UserContext) error {
	raw, err := json.Marshal(uc)
	if err != nil {
		return fmt.Errorf("encode context %s: %w", uc.UserID, err)
	}
	if err := s.rdb.Set(ctx, contextKey(uc.UserID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save context %s: %w", uc.UserID, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
