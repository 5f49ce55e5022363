package kv

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"
)

// memEntry 带过期时间的值，零值 expiresAt 表示永不过期.
type memEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryKV 进程内 KV 实现，过期键在读取时惰性清理.
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string]memEntry
}

// NewMemoryKV 创建内存 KV 实例，忽略配置参数.
func NewMemoryKV(ctx context.Context, config any) (KVStore, error) {
	return &MemoryKV{entries: make(map[string]memEntry)}, nil
}

// Get 获取键的值，过期键视同不存在.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}

	if entry.expired(time.Now()) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()

		return nil, fmt.Errorf("key not found: %s", key)
	}

	out := make([]byte, len(entry.data))
	copy(out, entry.data)

	return out, nil
}

// Set 设置键的值，ttl>0 时设定过期时间.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memEntry{data: make([]byte, len(value))}
	copy(entry.data, value)

	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()

	return nil
}

// Delete 删除键.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()

	return nil
}

// Exists 检查键是否存在且未过期.
func (m *MemoryKV) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	return ok && !entry.expired(time.Now()), nil
}

// Keys 按 glob 模式列举未过期的键，空模式等价于 "*".
func (m *MemoryKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}

	now := time.Now()
	keys := make([]string, 0)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for k, entry := range m.entries {
		if entry.expired(now) {
			continue
		}

		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}

	return keys, nil
}

// Close 内存实现无资源可释放.
func (m *MemoryKV) Close() error {
	return nil
}

func init() {
	RegisterKVFactory(KVTypeMemory, NewMemoryKV)
}
