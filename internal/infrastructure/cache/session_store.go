package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"telesalud-admin/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps one hash per browser session. Every write slides
// the session expiry.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) repository.SessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sid, key string, dest interface{}) (bool, error) {
	raw, err := s.client.HGet(ctx, sessionKeyPrefix+sid, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, dest)
}

func (s *RedisSessionStore) Set(ctx context.Context, sid, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, sessionKeyPrefix+sid, key, raw)
	pipe.Expire(ctx, sessionKeyPrefix+sid, s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisSessionStore) Delete(ctx context.Context, sid, key string) error {
	return s.client.HDel(ctx, sessionKeyPrefix+sid, key).Err()
}
