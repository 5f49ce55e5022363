package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultSiteBucket       = "sites"             // 站点文件存储桶
	DefaultMaxFileSizeBytes = 10 * 1024 * 1024    // 单文件大小上限 10MB
	DefaultMaxFileCount     = 500                 // 单次上传文件数量上限
	DefaultUploadTmpDir     = "/tmp/sitevault"    // 上传暂存目录
	DefaultStagingTTLHours  = 24                  // 暂存目录保留时长（小时）
	DefaultServeCacheTTL    = 30                  // 公共访问站点查找缓存（秒）
	DefaultPublicBaseURL    = ""                  // 公共访问基地址，留空则从 S3 endpoint 推导
)

// SiteConfig 站点发布相关配置.
type SiteConfig struct {
	Bucket           string `mapstructure:"bucket"              rule:"required"`
	MaxFileSizeBytes int64  `mapstructure:"max_file_size_bytes" rule:"min=1"`
	MaxFileCount     int    `mapstructure:"max_file_count"      rule:"min=1"`
	UploadTmpDir     string `mapstructure:"upload_tmp_dir"      rule:"required"`
	StagingTTLHours  int    `mapstructure:"staging_ttl_hours"   rule:"min=1"`
	ServeCacheTTL    int    `mapstructure:"serve_cache_ttl"     rule:"min=0"`
	// PublicBaseURL 公共访问基地址（如 CDN 或反代域名）；为空时回退到 S3 endpoint.
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// GetServeCacheTTL 返回站点查找缓存 TTL.
func (c *SiteConfig) GetServeCacheTTL() time.Duration {
	return time.Duration(c.ServeCacheTTL) * time.Second
}

// GetStagingTTL 返回暂存目录保留时长.
func (c *SiteConfig) GetStagingTTL() time.Duration {
	return time.Duration(c.StagingTTLHours) * time.Hour
}

// setDefaults 设置站点配置的默认值.
func (c *SiteConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("site.bucket", DefaultSiteBucket)
	v.SetDefault("site.max_file_size_bytes", DefaultMaxFileSizeBytes)
	v.SetDefault("site.max_file_count", DefaultMaxFileCount)
	v.SetDefault("site.upload_tmp_dir", DefaultUploadTmpDir)
	v.SetDefault("site.staging_ttl_hours", DefaultStagingTTLHours)
	v.SetDefault("site.serve_cache_ttl", DefaultServeCacheTTL)
	v.SetDefault("site.public_base_url", DefaultPublicBaseURL)
}
