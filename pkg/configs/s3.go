package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// S3Config 对象存储连接配置（MinIO 或任意 S3 兼容服务）.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Region          string `mapstructure:"region"`
	// OpTimeoutSeconds 单次对象操作超时（秒）.上传重试的每次尝试单独计时.
	OpTimeoutSeconds int `mapstructure:"op_timeout_seconds" rule:"min=1"`
}

// GetEndpointURL 带协议前缀的端点地址.
func (c *S3Config) GetEndpointURL() string {
	if c.UseSSL {
		return fmt.Sprintf("https://%s", c.Endpoint)
	}

	return fmt.Sprintf("http://%s", c.Endpoint)
}

// GetOpTimeout 返回单次对象操作超时.
func (c *S3Config) GetOpTimeout() time.Duration {
	return time.Duration(c.OpTimeoutSeconds) * time.Second
}

func (c *S3Config) setDefaults(v *viper.Viper) {
	v.SetDefault("s3.endpoint", "localhost:9000")
	v.SetDefault("s3.access_key_id", "minioadmin")
	v.SetDefault("s3.secret_access_key", "minioadmin")
	v.SetDefault("s3.use_ssl", false)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.op_timeout_seconds", 30)
}
