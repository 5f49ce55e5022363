package types

// EnvVarItem 单个环境变量.
type EnvVarItem struct {
	Key      string `json:"key"       rule:"required,max=255"`
	Value    string `json:"value"`
	IsSecret bool   `json:"is_secret"`
}

// ReplaceEnvRequest 整体替换站点环境变量集合.
// 空集合合法，表示清空.
type ReplaceEnvRequest struct {
	EnvVars []EnvVarItem `json:"env_vars"`
}

// EnvListResponse 环境变量列表.
type EnvListResponse struct {
	SiteID  string       `json:"site_id"`
	EnvVars []EnvVarItem `json:"env_vars"`
}

// ReplaceEnvResponse 替换结果.
type ReplaceEnvResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}
