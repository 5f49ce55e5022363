package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// SiteRef 标识站点.
type SiteRef struct {
	SiteID  string `json:"site_id"`
	Slug    string `json:"slug"`
	OwnerID string `json:"owner_id,omitempty"`
}

// SiteCreatedPayload 站点注册完成.
type SiteCreatedPayload struct {
	Site SiteRef `json:"site"`
	Name string  `json:"name,omitempty"`
}

// SiteDeletedPayload 站点删除，含对象清理统计.
type SiteDeletedPayload struct {
	Site           SiteRef `json:"site"`
	ObjectsDeleted int     `json:"objects_deleted,omitempty"`
	ObjectsFailed  int     `json:"objects_failed,omitempty"`
}

// SiteDeployedPayload 部署完成.
type SiteDeployedPayload struct {
	Site         SiteRef `json:"site"`
	DeploymentID string  `json:"deployment_id"`
	Version      int     `json:"version"`
	FileCount    int     `json:"file_count"`
	TotalBytes   int64   `json:"total_bytes"`
	URL          string  `json:"url"`
	Fingerprint  string  `json:"fingerprint,omitempty"`
}

// SiteDeployFailedPayload 部署失败.
type SiteDeployFailedPayload struct {
	Site         SiteRef `json:"site"`
	DeploymentID string  `json:"deployment_id,omitempty"`
	Stage        string  `json:"stage,omitempty"` // validating/uploading/registering
	Error        string  `json:"error"`
}

// SiteEnvReplacedPayload 环境变量集合整体替换.
type SiteEnvReplacedPayload struct {
	Site  SiteRef `json:"site"`
	Count int     `json:"count"`
}
