package configs

import "github.com/spf13/viper"

// CircuitBreakerConfig 熔断配置.统计窗口内失败比例达到 FailureRate
// 且样本数不少于 MinRequests 时熔断打开.
type CircuitBreakerConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	FailureRate       float64 `mapstructure:"failure_rate"` // [0,1]
	MinRequests       uint32  `mapstructure:"min_requests"`
	IntervalSeconds   int     `mapstructure:"interval_seconds"`     // 统计窗口
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`      // 打开后的冷却
	MaxRequestsInHalf uint32  `mapstructure:"max_requests_in_half"` // 半开放行数
}

func (c *CircuitBreakerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("circuit_breaker.enabled", false)
	v.SetDefault("circuit_breaker.failure_rate", 0.5)
	v.SetDefault("circuit_breaker.min_requests", 20)
	v.SetDefault("circuit_breaker.interval_seconds", 60)
	v.SetDefault("circuit_breaker.timeout_seconds", 30)
	v.SetDefault("circuit_breaker.max_requests_in_half", 5)
}
