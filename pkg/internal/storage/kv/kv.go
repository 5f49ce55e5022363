// Package kv 提供键值存储抽象，内存与 Redis 两种后端按工厂注册.
package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/yeisme/sitevault/pkg/configs"
)

// KVStore 键值存储接口，站点查询缓存等轻量数据走这里.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set ttl<=0 表示不过期.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Keys 按 glob 模式列举键，调试用途.
	Keys(ctx context.Context, pattern string) ([]string, error)
	Close() error
}

// Client 对外暴露的 KV 客户端.
type Client struct {
	KVStore
}

// KVType 后端类型标识.
type KVType string

const (
	KVTypeMemory KVType = "memory"
	KVTypeRedis  KVType = "redis"
)

// KVFactory 后端构造函数，config 的具体类型由各后端自行断言.
type KVFactory func(ctx context.Context, config any) (KVStore, error)

var kvFactories = make(map[KVType]KVFactory)

// RegisterKVFactory 注册后端工厂，各后端在 init 中调用.
func RegisterKVFactory(kvType KVType, factory KVFactory) {
	kvFactories[kvType] = factory
}

// GetRegisteredKVTypes 返回已注册的后端类型.
func GetRegisteredKVTypes() []KVType {
	types := make([]KVType, 0, len(kvFactories))
	for t := range kvFactories {
		types = append(types, t)
	}

	return types
}

// NewKVStore 按类型构造后端实例.
func NewKVStore(ctx context.Context, kvType KVType, config any) (KVStore, error) {
	factory, ok := kvFactories[kvType]
	if !ok {
		return nil, fmt.Errorf("unsupported KV type: %s", kvType)
	}

	return factory(ctx, config)
}

// NewKVClient 按配置构造 KV 客户端.
func NewKVClient(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().KV

	var backendCfg any
	if KVType(cfg.Type) == KVTypeRedis {
		backendCfg = &cfg.Redis
	}

	store, err := NewKVStore(ctx, KVType(cfg.Type), backendCfg)
	if err != nil {
		return nil, err
	}

	return &Client{KVStore: store}, nil
}
