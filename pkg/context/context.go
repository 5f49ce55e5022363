// Package context 在请求上下文里携带存储管理器，并提供各客户端的类型化取值.
package context

import (
	"context"

	"github.com/yeisme/sitevault/pkg/internal/storage"
	dbc "github.com/yeisme/sitevault/pkg/internal/storage/db"
	kvc "github.com/yeisme/sitevault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/sitevault/pkg/internal/storage/mq"
	s3c "github.com/yeisme/sitevault/pkg/internal/storage/s3"
)

type contextKey int

const storageManagerKey contextKey = iota

// WithStorageManager 把存储管理器挂到 context 上.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, storageManagerKey, mgr)
}

// GetManager 取回存储管理器，未注入时返回 nil.
func GetManager(ctx context.Context) *storage.Manager {
	mgr, _ := ctx.Value(storageManagerKey).(*storage.Manager)

	return mgr
}

// GetS3Client 取 S3 客户端，管理器缺失时为 nil.
func GetS3Client(ctx context.Context) *s3c.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetS3Client()
	}

	return nil
}

// GetDBClient 取数据库客户端.
func GetDBClient(ctx context.Context) *dbc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetDBClient()
	}

	return nil
}

// GetMQClient 取消息队列客户端.
func GetMQClient(ctx context.Context) *mqc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetMQClient()
	}

	return nil
}

// GetKVClient 取 KV 客户端.
func GetKVClient(ctx context.Context) *kvc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetKVClient()
	}

	return nil
}
