package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-forge/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisCache 以 Redis 儲存的補全快取，可在多個實例間共享
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache 創建 Redis 快取
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		prefix: "recipe-forge:",
	}
}

var _ Cache = (*RedisCache)(nil)

// Get 獲取快取
func (s *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			common.LogCacheMiss("redis")
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("redis")
	return val, nil
}

// Set 設置快取
func (s *RedisCache) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 連線由呼叫者擁有，這裡不關閉
func (s *RedisCache) Close() error {
	return nil
}
