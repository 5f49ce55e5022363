package types

// SkippedFile 被跳过的文件及原因（超出单文件大小上限等）.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// UploadResponse 上传暂存结果.
type UploadResponse struct {
	Success       bool          `json:"success"`
	SiteID        string        `json:"site_id"`
	FilesReceived int           `json:"files_received"`
	TotalBytes    int64         `json:"total_bytes"`
	Skipped       []SkippedFile `json:"skipped,omitempty"`
}
