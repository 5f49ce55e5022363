package service_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/model"
	s3c "github.com/yeisme/sitevault/pkg/internal/storage/s3"
)

// newTestDB 打开内存 sqlite 并迁移全部模型.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&model.Site{}, &model.Deployment{}, &model.SiteEnvVar{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

// testSiteCfg 测试用站点配置.
func testSiteCfg() configs.SiteConfig {
	return configs.SiteConfig{
		Bucket:           "sites",
		MaxFileSizeBytes: 1024 * 1024,
		MaxFileCount:     100,
		UploadTmpDir:     "/tmp/sitevault-test",
	}
}

// testS3Cfg 测试用 S3 配置.
func testS3Cfg() configs.S3Config {
	return configs.S3Config{Endpoint: "localhost:9000"}
}

// fakeStore 内存对象存储，可注入失败.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// putFailures 剩余的 Put 失败次数（所有 key 共享）
	putFailures int
	// deleteErr DeletePrefix 的注入错误
	deleteErr error
	// putHook 每次成功写入后调用，用来在上传与落库之间制造竞争
	putHook func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) PutObject(ctx context.Context, bucket, key string, content io.ReaderAt, size int64, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.putFailures > 0 {
		f.putFailures--

		return fmt.Errorf("injected put failure")
	}

	data := make([]byte, size)
	if _, err := content.ReadAt(data, 0); err != nil && err != io.EOF {
		return err
	}

	f.objects[bucket+"/"+key] = data

	if f.putHook != nil {
		f.putHook()
	}

	return nil
}

func (f *fakeStore) DeletePrefix(ctx context.Context, bucket, prefix string) (s3c.DeletePrefixResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return s3c.DeletePrefixResult{}, f.deleteErr
	}

	var result s3c.DeletePrefixResult

	full := bucket + "/" + prefix + "/"
	for k := range f.objects {
		if len(k) >= len(full) && k[:len(full)] == full {
			delete(f.objects, k)
			result.Deleted++
		}
	}

	return result, nil
}

// has 检查对象是否存在.
func (f *fakeStore) has(bucket, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.objects[bucket+"/"+key]

	return ok
}

// count 对象总数.
func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.objects)
}
