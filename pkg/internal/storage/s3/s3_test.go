package s3_test

import (
	"testing"

	"github.com/yeisme/sitevault/pkg/configs"
	s3c "github.com/yeisme/sitevault/pkg/internal/storage/s3"
)

// TestPublicURLWithBaseURL 测试配置了公共基地址时的 URL 拼接.
func TestPublicURLWithBaseURL(t *testing.T) {
	siteCfg := &configs.SiteConfig{PublicBaseURL: "https://cdn.example.com/"}
	s3Cfg := &configs.S3Config{Endpoint: "localhost:9000"}

	got := s3c.PublicURL(siteCfg, s3Cfg, "sites", "my-blog/index.html")
	want := "https://cdn.example.com/sites/my-blog/index.html"

	if got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}

// TestPublicURLFallbackToEndpoint 测试未配置基地址时回退到 S3 endpoint.
func TestPublicURLFallbackToEndpoint(t *testing.T) {
	siteCfg := &configs.SiteConfig{}
	s3Cfg := &configs.S3Config{Endpoint: "localhost:9000", UseSSL: false}

	got := s3c.PublicURL(siteCfg, s3Cfg, "sites", "my-blog/index.html")
	want := "http://localhost:9000/sites/my-blog/index.html"

	if got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}

// TestPublicURLSSLEndpoint 测试启用 SSL 时使用 https.
func TestPublicURLSSLEndpoint(t *testing.T) {
	siteCfg := &configs.SiteConfig{}
	s3Cfg := &configs.S3Config{Endpoint: "minio.internal:9000", UseSSL: true}

	got := s3c.PublicURL(siteCfg, s3Cfg, "sites", "docs/app.js")
	want := "https://minio.internal:9000/sites/docs/app.js"

	if got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}
