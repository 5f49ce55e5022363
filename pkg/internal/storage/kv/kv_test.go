package kv_test

import (
	"context"
	"testing"
	"time"

	"github.com/yeisme/sitevault/pkg/internal/storage/kv"
)

// TestMemoryKVBasic 测试内存 KV 的基本 Set/Get/Delete.
func TestMemoryKVBasic(t *testing.T) {
	ctx := context.Background()

	store, err := kv.NewKVStore(ctx, kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	defer store.Close()

	if err := store.Set(ctx, "site:my-blog", []byte("payload"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := store.Get(ctx, "site:my-blog")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(got) != "payload" {
		t.Errorf("got %q, want %q", got, "payload")
	}

	exists, err := store.Exists(ctx, "site:my-blog")
	if err != nil || !exists {
		t.Errorf("exists = %v, %v; want true, nil", exists, err)
	}

	if err := store.Delete(ctx, "site:my-blog"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := store.Get(ctx, "site:my-blog"); err == nil {
		t.Error("expected error after delete, got nil")
	}
}

// TestMemoryKVTTLExpiry 测试内存 KV 的 TTL 过期.
func TestMemoryKVTTLExpiry(t *testing.T) {
	ctx := context.Background()

	store, err := kv.NewKVStore(ctx, kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	defer store.Close()

	if err := store.Set(ctx, "slug:expired", []byte("v"), time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// 未过期时可读
	if _, err := store.Get(ctx, "slug:expired"); err != nil {
		t.Fatalf("get before expiry failed: %v", err)
	}

	// 等待跨过过期点
	time.Sleep(1100 * time.Millisecond)

	if _, err := store.Get(ctx, "slug:expired"); err == nil {
		t.Error("expected error for expired key, got nil")
	}

	exists, _ := store.Exists(ctx, "slug:expired")
	if exists {
		t.Error("expected expired key to not exist")
	}
}

// TestMemoryKVKeys 测试键列举.
func TestMemoryKVKeys(t *testing.T) {
	ctx := context.Background()

	store, err := kv.NewKVStore(ctx, kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	defer store.Close()

	_ = store.Set(ctx, "a", []byte("1"), 0)
	_ = store.Set(ctx, "b", []byte("2"), 0)

	keys, err := store.Keys(ctx, "*")
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}

	if len(keys) != 2 {
		t.Errorf("got %d keys, want 2", len(keys))
	}
}

// TestUnsupportedKVType 测试未注册类型返回错误.
func TestUnsupportedKVType(t *testing.T) {
	_, err := kv.NewKVStore(context.Background(), kv.KVType("bogus"), nil)
	if err == nil {
		t.Error("expected error for unsupported type, got nil")
	}
}
