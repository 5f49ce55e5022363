package model

import (
	"time"
)

// SiteEnvVar 站点环境变量，(site_id, key) 唯一.
// 值整体替换语义：POST env 时删除旧集合后写入新集合.
type SiteEnvVar struct {
	ID      uint   `gorm:"primaryKey"                               json:"-"`
	SiteID  string `gorm:"size:36;index:idx_site_env_key,unique"    json:"site_id"`
	OwnerID string `gorm:"size:255;index"                           json:"-"`
	Key     string `gorm:"size:255;index:idx_site_env_key,unique"   json:"key"`
	Value   string `gorm:"type:text"                                json:"value"`
	// IsSecret 仅为标记，值按原样存取，掩码由展示方自行处理
	IsSecret  bool      `json:"is_secret"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
