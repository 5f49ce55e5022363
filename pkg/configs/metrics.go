package configs

import "github.com/spf13/viper"

// MetricsConfig prometheus 指标配置.
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Endpoint       string `mapstructure:"endpoint"`        // 独立指标服务监听地址
	RuntimeMetrics bool   `mapstructure:"runtime_metrics"` // go runtime / process 采集器
	Pprof          bool   `mapstructure:"pprof"`
}

func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.endpoint", ":9090")
	v.SetDefault("metrics.runtime_metrics", true)
	v.SetDefault("metrics.pprof", false)
}
