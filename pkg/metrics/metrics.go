// Package metrics 维护 sitevault 的 Prometheus 指标：HTTP 流量、部署结果与对象存储重试.
//
// 指标以包级变量暴露，业务代码直接打点：
//
//	metrics.DeploymentCounter.WithLabelValues("active").Inc()
//	metrics.StorageRetryCounter.Inc()
//
// InitMetrics 负责把所有指标挂到独立注册表，StartMetricsServer 再把
// /metrics（以及可选的 pprof）挂到 debug 引擎上.
package metrics

import (
	"net/http"
	_ "net/http/pprof" // 注册 pprof 端点到 DefaultServeMux

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/sitevault/pkg/configs"
)

var (
	// RequestCounter 按方法与路由统计 HTTP 请求数.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	// RequestDuration HTTP 请求耗时分布.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// ActiveConnections 当前活跃连接数.
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_connections",
			Help: "Number of active connections",
		},
	)

	// DeploymentCounter 按最终状态（active/failed）统计部署次数.
	DeploymentCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deployments_total",
			Help: "Total number of deployments by final status",
		},
		[]string{"status"},
	)

	// DeploymentDuration 单次部署耗时，从校验开始到部署记录落库.
	DeploymentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deploy_duration_seconds",
			Help:    "Deployment duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	// DeployedFilesCounter 成功部署写入的文件总数.
	DeployedFilesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "deployed_files_total",
			Help: "Total number of files uploaded by successful deployments",
		},
	)

	// StorageRetryCounter 对象存储操作的重试次数.
	StorageRetryCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storage_retries_total",
			Help: "Total number of retried object storage operations",
		},
	)
)

// registry 独立注册表，避免与第三方库塞进默认注册表的指标混在一起.
var registry = prometheus.NewRegistry()

// appCollectors sitevault 自有指标，InitMetrics 时一并注册.
var appCollectors = []prometheus.Collector{
	RequestCounter,
	RequestDuration,
	ActiveConnections,
	DeploymentCounter,
	DeploymentDuration,
	DeployedFilesCounter,
	StorageRetryCounter,
}

// InitMetrics 注册所有指标收集器.未启用时为空操作.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	registry.MustRegister(appCollectors...)

	return nil
}

// StartMetricsServer 把 /metrics 挂到 debug 引擎，按配置附带 pprof.
func StartMetricsServer(config configs.MetricsConfig, debugEngine *gin.Engine) error {
	if !config.Enabled {
		return nil
	}

	debugEngine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if config.Pprof {
		debugEngine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	return nil
}
