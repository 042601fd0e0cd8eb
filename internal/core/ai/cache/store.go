// Package cache 提供 AI 回應的快取層，支援記憶體與 Redis 兩種後端。
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"recipe-assistant/internal/infrastructure/config"
)

// Store 快取後端介面
type Store interface {
	// Get 查詢快取，未命中時回傳 common.ErrCacheMiss
	Get(ctx context.Context, prompt string) (string, error)
	// Set 寫入快取
	Set(ctx context.Context, prompt, value string) error
	// Close 釋放後端資源
	Close() error
}

// NewStore 依配置建立快取後端。快取停用時回傳 (nil, nil)。
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisStore(cfg)
	case "memory":
		return NewManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

// hashPrompt 計算 prompt 的 SHA-256 雜湊作為快取鍵
func hashPrompt(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(hash[:])
}
