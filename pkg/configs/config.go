// Package configs 管理 sitevault 的全部配置：数据库、对象存储、站点发布、
// 服务器与各类基础设施开关.配置来源按优先级为 环境变量 > 配置文件 > 默认值，
// 支持 YAML/JSON/TOML/dotenv 并可选热重载.
//
// 用法：
//
//	if err := configs.InitConfig("./"); err != nil {
//		log.Fatal(err)
//	}
//	cfg := configs.GetConfig()
//	fmt.Println(cfg.Site.Bucket)
package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AppVersion 应用版本，用于 S3 客户端标识和 metrics 标签.
const AppVersion = "1.0.0"

// AppConfig 全局应用程序配置，按子系统分节.
type AppConfig struct {
	DB             DBConfig             `mapstructure:"db"`
	S3             S3Config             `mapstructure:"s3"`
	Site           SiteConfig           `mapstructure:"site"`
	Server         ServerConfig         `mapstructure:"server"`
	Log            LogConfig            `mapstructure:"log"`
	Auth           AuthConfig           `mapstructure:"auth"`
	Metrics        MetricsConfig        `mapstructure:"metrics"`
	Tracing        TracingConfig        `mapstructure:"tracing"`
	RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	KV             KVConfig             `mapstructure:"kv"`
	MQ             MQConfig             `mapstructure:"mq"`
}

var (
	globalConfig AppConfig
	appViper     *viper.Viper
)

// defaulter 每个配置节自带默认值.
type defaulter interface {
	setDefaults(v *viper.Viper)
}

// sections 所有配置节，新增配置时在这里挂上即可.
func sections() []defaulter {
	return []defaulter{
		&ServerConfig{}, &DBConfig{}, &S3Config{}, &SiteConfig{},
		&LogConfig{}, &AuthConfig{}, &MetricsConfig{}, &TracingConfig{},
		&RateLimitConfig{}, &CircuitBreakerConfig{}, &KVConfig{}, &MQConfig{},
	}
}

// InitConfig 加载配置.path 可以是配置文件本身，也可以是包含
// config.{yaml,json,toml,env} 的目录；找不到文件时退回默认值加环境变量.
func InitConfig(path string) error {
	appViper = viper.New()

	for _, s := range sections() {
		s.setDefaults(appViper)
	}

	resolveConfigFile(appViper, path)

	appViper.AutomaticEnv()
	appViper.SetEnvPrefix("SITEVAULT")

	if err := appViper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if globalConfig.Server.ReloadConfig {
		watchConfig(appViper)
	}

	return nil
}

// resolveConfigFile 确定配置文件位置.path 为文件时直接使用（viper 按扩展名
// 识别格式）；为目录时依次探测支持的扩展名，同时保留 configs/ 子目录作为候选.
func resolveConfigFile(v *viper.Viper, path string) {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		v.SetConfigFile(path)

		return
	}

	v.SetConfigName("config")
	v.AddConfigPath(path)
	v.AddConfigPath(path + "/configs")

	for _, ext := range []string{"yaml", "yml", "json", "toml", "env", "dotenv"} {
		candidate := filepath.Join(path, "config."+ext)
		if _, err := os.Stat(candidate); err == nil {
			v.SetConfigFile(candidate)

			return
		}
	}
}

// watchConfig 配置文件变化时就地重新解析，失败保留旧配置.
func watchConfig(v *viper.Viper) {
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)

		if err := v.Unmarshal(&globalConfig); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	return &globalConfig
}

// GetViper 返回底层 viper 实例，config debug 命令用它导出生效配置.
func GetViper() *viper.Viper {
	return appViper
}
