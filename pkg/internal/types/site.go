package types

import "time"

// CreateSiteRequest 注册站点请求.
type CreateSiteRequest struct {
	Name string `form:"name" json:"name" rule:"required,max=255"`
	Slug string `form:"slug" json:"slug" rule:"required,max=128,slug"`
}

// SiteResponse 站点信息.
type SiteResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	PublicURL *string   `json:"public_url,omitempty"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListSitesResponse 站点列表.
type ListSitesResponse struct {
	Sites []SiteResponse `json:"sites"`
	Total int            `json:"total"`
}

// DeleteSiteResponse 删除站点结果，附带对象清理统计.
type DeleteSiteResponse struct {
	Success        bool   `json:"success"`
	SiteID         string `json:"site_id"`
	ObjectsDeleted int    `json:"objects_deleted"`
	ObjectsFailed  int    `json:"objects_failed"`
}
