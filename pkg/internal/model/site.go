package model

import (
	"time"
)

// 站点状态.
const (
	SiteStatusDraft  = "draft"  // 已注册未部署
	SiteStatusActive = "active" // 至少成功部署过一次
	SiteStatusFailed = "failed" // 最近一次部署失败且尚无在线版本
)

// Site 站点模型，slug 全局唯一，作为公共访问路径与对象键前缀.
type Site struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// OwnerID 所属用户，所有查询都带 owner 条件
	OwnerID string `gorm:"size:255;index" json:"owner_id"`
	Name    string `gorm:"size:255"       json:"name"`
	// Slug 公共访问标识，全局唯一
	Slug   string `gorm:"size:128;uniqueIndex" json:"slug"`
	Status string `gorm:"size:32;index"        json:"status"`
	// PublicURL 最近一次成功部署的访问地址，未部署时为空
	PublicURL *string `gorm:"size:1024" json:"public_url,omitempty"`
	// Version 成功部署次数，每次 MarkDeployed 原子递增
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
