package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/configs"
)

// AuthMiddleware 校验认证代理（oauth2-proxy 一类）注入的身份头.
// 身份取 X-Auth-Request-Email，缺失时退到 X-Forwarded-Email；
// skip_paths 前缀命中的路径（公共站点访问、metrics 等）直接放行；
// dev_allow_query 打开时允许 ?user= 兜底，只用于本地联调.
func AuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	skips := normalizeSkips(conf.SkipPaths)

	return func(c *gin.Context) {
		if !conf.Enabled || pathSkipped(c.Request.URL.Path, skips) {
			c.Next()
			return
		}

		if proxyIdentity(c) != "" {
			c.Next()
			return
		}

		if conf.DevAllowQuery && c.Query("user") != "" {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

// proxyIdentity 读出代理注入的用户身份，没有则返回空串.
func proxyIdentity(c *gin.Context) string {
	if email := strings.TrimSpace(c.GetHeader("X-Auth-Request-Email")); email != "" {
		return email
	}

	return strings.TrimSpace(c.GetHeader("X-Forwarded-Email"))
}

func normalizeSkips(raw []string) []string {
	skips := make([]string, 0, len(raw))

	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			skips = append(skips, p)
		}
	}

	return skips
}

func pathSkipped(path string, skips []string) bool {
	for _, p := range skips {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
