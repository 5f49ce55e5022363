// Package api 将HTTP路由组绑定到gin引擎.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/router"
)

// RegisterGroup 注册全部路由：认证的 /api/v1 管理面与公共站点访问面.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	apiGroup := e.Group("/api/v1")
	{
		router.RegisterHealthCheckRoute(apiGroup)
		router.RegisterSiteRoutes(apiGroup)
	}

	router.RegisterPublicRoutes(e)
	router.RegisterSwaggerRoute(e)

	return e
}
