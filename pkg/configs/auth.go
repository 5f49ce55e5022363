package configs

import "github.com/spf13/viper"

// AuthConfig 身份认证配置.身份由前置的 oauth2-proxy 注入请求头，
// 应用侧只做读取与路径放行.
type AuthConfig struct {
	// Enabled 关闭后所有请求按匿名处理，仅限本地开发.
	Enabled bool `mapstructure:"enabled"`
	// SkipPaths 免认证的路径前缀.公开站点访问（/sites）必须在列.
	SkipPaths []string `mapstructure:"skip_paths"`
	// DevAllowQuery 允许用 ?user= 冒充身份，便于无代理的本地调试.
	DevAllowQuery bool `mapstructure:"dev_allow_query"`
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.dev_allow_query", true)
	v.SetDefault("auth.skip_paths", []string{
		"/metrics",
		"/debug/pprof",
		"/api/v1/health",
		"/swagger",
		"/sites",
	})
}
