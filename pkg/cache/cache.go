// Package cache 在 KV 存储上提供带 TTL 的泛型缓存，值用 sonic 编解码.
// 公共访问路径用它缓存 slug→站点 的查询结果：
//
//	c := cache.NewCache(kvStore)
//	site, err := cache.GetOrSet(ctx, c, "site:slug:my-blog", lookup, 30*time.Second)
//
// 缓存未命中不算错误；并发安全性取决于底层 KV 实现.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/sitevault/pkg/internal/storage/kv"
)

// Cache KV 存储上的缓存句柄.
type Cache struct {
	store kv.KVStore
}

// NewCache 创建缓存实例.
func NewCache(store kv.KVStore) *Cache {
	return &Cache{store: store}
}

// Get 读取并反序列化缓存值.
func Get[T any](ctx context.Context, c *Cache, key string) (T, error) {
	var value T

	data, err := c.store.Get(ctx, key)
	if err != nil {
		return value, err
	}

	if err := sonic.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("unmarshal cached value for %s: %w", key, err)
	}

	return value, nil
}

// Set 序列化并写入缓存值.
func Set[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}

	return c.store.Set(ctx, key, data, ttl)
}

// GetOrSet 命中直接返回；未命中先执行 getter 再回填.
// 回填失败不影响返回值，下次请求重新算.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, getter func() (T, error), ttl time.Duration) (T, error) {
	if value, err := Get[T](ctx, c, key); err == nil {
		return value, nil
	}

	value, err := getter()
	if err != nil {
		var zero T
		return zero, err
	}

	_ = Set(ctx, c, key, value, ttl)

	return value, nil
}

// Delete 删除缓存键.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}

// Exists 检查缓存键是否存在.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	return c.store.Exists(ctx, key)
}
