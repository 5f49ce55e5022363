package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/handle"
)

// RegisterPublicRoutes 注册公共站点访问路由（无认证、gzip 压缩）.
func RegisterPublicRoutes(e *gin.Engine) {
	publicRoutes := e.Group("/sites", gzip.Gzip(gzip.DefaultCompression))
	{
		publicRoutes.GET("/:slug/*filepath", handle.ServeSite)
	}
}
