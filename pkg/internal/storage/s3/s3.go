// Package s3 处理对象存储操作，站点文件的上传、读取与清理都经由这里.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yeisme/sitevault/pkg/configs"
	nlog "github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/metrics"
	"github.com/yeisme/sitevault/pkg/retry"
)

const (
	// putAttempts 上传失败的最大尝试次数.
	putAttempts = 3
	// putRetryInterval 重试间隔（固定，不做指数退避）.
	putRetryInterval = time.Second
)

// Client 包装 MinIO 客户端.
type Client struct {
	*minio.Client
}

// New 初始化 MinIO 客户端，并确保站点桶存在.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().S3
	endpoint := cfg.Endpoint
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("sitevault", configs.AppVersion)

	client := &Client{Client: cli}

	bucket := configs.GetConfig().Site.Bucket
	if err := client.EnsureBucket(ctx, bucket); err != nil {
		return nil, err
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", bucket).Msg("s3 connected")

	return client, nil
}

// EnsureBucket 确保桶存在，不存在则创建.
func (c *Client) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}

	if !exists {
		if err := c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{
			Region: configs.GetConfig().S3.Region,
		}); err != nil {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}

		nlog.Logger().Info().Str("bucket", bucket).Msg("bucket created")
	}

	return nil
}

// PutObject 上传单个对象，瞬时失败时固定间隔重试.
// 每次尝试带独立超时，挂死的后端不会卡住部署.
// 调用方提供 io.ReaderAt 以便重试时从头重读.
func (c *Client) PutObject(ctx context.Context, bucket, key string, content io.ReaderAt, size int64, contentType string) error {
	attempt := 0

	err := retry.DoWithAttemptTimeout(ctx, putAttempts, putRetryInterval, opTimeout(), func(attemptCtx context.Context) error {
		attempt++
		if attempt > 1 {
			metrics.StorageRetryCounter.Inc()

			nlog.Logger().Warn().
				Str("bucket", bucket).
				Str("key", key).
				Int("attempt", attempt).
				Msg("retrying object upload")
		}

		reader := io.NewSectionReader(content, 0, size)

		_, putErr := c.Client.PutObject(attemptCtx, bucket, key, reader, size, minio.PutObjectOptions{
			ContentType: contentType,
		})

		return putErr
	})
	if err != nil {
		return fmt.Errorf("put object %s/%s: %w", bucket, key, err)
	}

	return nil
}

// opTimeout 单次对象操作超时，配置缺失时退到 30s.
func opTimeout() time.Duration {
	if d := configs.GetConfig().S3.GetOpTimeout(); d > 0 {
		return d
	}

	return 30 * time.Second
}

// GetObject 读取对象内容与元信息.
func (c *Client) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, minio.ObjectInfo, error) {
	obj, err := c.Client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, fmt.Errorf("get object %s/%s: %w", bucket, key, err)
	}

	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()

		return nil, minio.ObjectInfo{}, fmt.Errorf("stat object %s/%s: %w", bucket, key, err)
	}

	return obj, info, nil
}

// StatObject 查询对象元信息，不读取内容.
func (c *Client) StatObject(ctx context.Context, bucket, key string) (minio.ObjectInfo, error) {
	statCtx, cancel := context.WithTimeout(ctx, opTimeout())
	defer cancel()

	info, err := c.Client.StatObject(statCtx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return minio.ObjectInfo{}, fmt.Errorf("stat object %s/%s: %w", bucket, key, err)
	}

	return info, nil
}

// DeletePrefixResult 前缀删除的结果统计.
type DeletePrefixResult struct {
	Deleted int
	Errors  int
}

// DeletePrefix 删除前缀下的全部对象，逐个统计成败，不因单个失败中断.
func (c *Client) DeletePrefix(ctx context.Context, bucket, prefix string) (DeletePrefixResult, error) {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var result DeletePrefixResult

	for obj := range c.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			result.Errors++

			nlog.Logger().Error().Err(obj.Err).Str("prefix", prefix).Msg("list objects for delete")

			continue
		}

		if err := c.removeObject(ctx, bucket, obj.Key); err != nil {
			result.Errors++

			nlog.Logger().Error().Err(err).Str("key", obj.Key).Msg("remove object")

			continue
		}

		result.Deleted++
	}

	return result, nil
}

// removeObject 删除单个对象，独立超时，防止单个卡死的删除拖住整个前缀清理.
func (c *Client) removeObject(ctx context.Context, bucket, key string) error {
	rmCtx, cancel := context.WithTimeout(ctx, opTimeout())
	defer cancel()

	return c.RemoveObject(rmCtx, bucket, key, minio.RemoveObjectOptions{})
}

// ListPrefixes 列出桶内一级前缀（以 / 结尾的公共前缀）.
func (c *Client) ListPrefixes(ctx context.Context, bucket string) ([]string, error) {
	var prefixes []string

	for obj := range c.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: false}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list prefixes in %s: %w", bucket, obj.Err)
		}

		if strings.HasSuffix(obj.Key, "/") {
			prefixes = append(prefixes, strings.TrimSuffix(obj.Key, "/"))
		}
	}

	return prefixes, nil
}

// PublicURL 计算对象的公共访问地址.
// 优先使用配置的 public_base_url，否则回退到 S3 endpoint.
func PublicURL(siteCfg *configs.SiteConfig, s3Cfg *configs.S3Config, bucket, key string) string {
	base := siteCfg.PublicBaseURL
	if base == "" {
		base = s3Cfg.GetEndpointURL()
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(base, "/"), bucket, key)
}

// HealthCheck 简单的健康检查，通过列出桶来验证连接.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.ListBuckets(ctx)

	return err
}

// Close 关闭 S3 客户端连接（无实际操作，接口兼容）.
func (c *Client) Close() error {
	return nil
}

func (c *Client) GetConfig() configs.S3Config {
	return configs.GetConfig().S3
}
