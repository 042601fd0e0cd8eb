package cache

import (
	"context"
	"fmt"

	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore Redis 快取後端
type RedisStore struct {
	client *redis.Client
	config *config.Config
}

// NewRedisStore 創建 Redis 快取後端並測試連線
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 快取已連線",
		zap.String("addr", cfg.Cache.RedisAddr),
	)

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Get 查詢快取
func (s *RedisStore) Get(ctx context.Context, prompt string) (string, error) {
	value, err := s.client.Get(ctx, s.key(prompt)).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("redis")
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("redis")
	return value, nil
}

// Set 寫入快取
func (s *RedisStore) Set(ctx context.Context, prompt, value string) error {
	if err := s.client.Set(ctx, s.key(prompt), value, s.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// key 生成快取鍵
func (s *RedisStore) key(prompt string) string {
	return fmt.Sprintf("ai:response:%s", hashPrompt(prompt))
}

// Close 關閉 Redis 連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
