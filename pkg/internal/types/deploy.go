package types

import "time"

// DeployRequest 部署请求.
type DeployRequest struct {
	// Replace 为 true 时先清空站点前缀下的旧对象再上传
	Replace bool `form:"replace" json:"replace"`
}

// DeploymentInfo 部署记录摘要.
type DeploymentInfo struct {
	ID         string     `json:"id"`
	SiteID     string     `json:"site_id"`
	Status     string     `json:"status"`
	Version    int        `json:"version"`
	FileCount  int        `json:"file_count"`
	TotalBytes int64      `json:"total_bytes"`
	DeployedAt *time.Time `json:"deployed_at,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// DeployResponse 部署结果.
// Warning 非空表示文件已全部写入但部署记录落库失败（部分成功）.
type DeployResponse struct {
	Success    bool            `json:"success"`
	URL        string          `json:"url,omitempty"`
	Warning    string          `json:"warning,omitempty"`
	Deployment *DeploymentInfo `json:"deployment,omitempty"`
}
