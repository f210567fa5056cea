package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"telesalud-admin/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const queryKeyPrefix = "query:"

// RedisQueryCache stores list results under a per-entity generation.
// Invalidate bumps the generation so every older key is unreachable and
// left to expire.
type RedisQueryCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func NewRedisQueryCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) repository.QueryCache {
	return &RedisQueryCache{client: client, ttl: ttl, log: log}
}

func (c *RedisQueryCache) Get(ctx context.Context, entity string, filter interface{}, dest interface{}) (bool, int64, error) {
	gen, err := c.generation(ctx, entity)
	if err != nil {
		return false, 0, err
	}
	key, err := queryKey(entity, gen, filter)
	if err != nil {
		return false, 0, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, gen, nil
	}
	if err != nil {
		return false, 0, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, gen, fmt.Errorf("decode cached %s: %w", entity, err)
	}
	return true, gen, nil
}

// Set writes under the given generation. After an Invalidate that key is
// never read again, so a late write of an older result is harmless.
func (c *RedisQueryCache) Set(ctx context.Context, entity string, generation int64, filter interface{}, value interface{}) error {
	key, err := queryKey(entity, generation, filter)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (c *RedisQueryCache) Invalidate(ctx context.Context, entity string) error {
	gen, err := c.client.Incr(ctx, generationKey(entity)).Result()
	if err != nil {
		return err
	}
	c.log.Debugf("Invalidated %s query cache, generation=%d", entity, gen)
	return nil
}

func (c *RedisQueryCache) generation(ctx context.Context, entity string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(entity)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return gen, nil
}

func queryKey(entity string, generation int64, filter interface{}) (string, error) {
	digest, err := FilterDigest(filter)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s:%d:%s", queryKeyPrefix, entity, generation, digest), nil
}

func generationKey(entity string) string {
	return queryKeyPrefix + "gen:" + entity
}

// FilterDigest hashes the JSON form of a filter. Absent fields are omitted
// from the JSON, so nil and empty filters share a digest.
func FilterDigest(filter interface{}) (string, error) {
	raw, err := json.Marshal(filter)
	if err != nil {
		return "", fmt.Errorf("encode filter: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8]), nil
}
