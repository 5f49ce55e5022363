package model

import (
	"time"
)

// 部署状态.
const (
	DeploymentStatusPending   = "pending"
	DeploymentStatusDeploying = "deploying"
	DeploymentStatusActive    = "active"
	DeploymentStatusFailed    = "failed"
)

// Deployment 部署记录，每次 deploy 产生一条，ID 为 ULID（时间有序）.
type Deployment struct {
	ID      string `gorm:"primaryKey;size:26" json:"id"`
	SiteID  string `gorm:"size:36;index"      json:"site_id"`
	OwnerID string `gorm:"size:255;index"     json:"owner_id"`
	Status  string `gorm:"size:32;index"      json:"status"`
	// DeployedURL 本次部署的访问地址
	DeployedURL string     `gorm:"size:1024" json:"deployed_url"`
	DeployedAt  *time.Time `json:"deployed_at,omitempty"`
	// Version 部署完成时站点的版本号
	Version    int   `json:"version"`
	FileCount  int   `json:"file_count"`
	TotalBytes int64 `json:"total_bytes"`
	// Fingerprint 文件集合的 xxhash 指纹，用于识别重复部署
	Fingerprint string `gorm:"size:32" json:"fingerprint"`
	// Error 失败时的原因摘要
	Error     string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
