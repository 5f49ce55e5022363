// Package router 管理路由配置，用于设置HTTP服务的路由.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/handle"
)

// RegisterSiteRoutes 注册站点管理相关路由.
func RegisterSiteRoutes(g *gin.RouterGroup) {
	sitesRoutes := g.Group("/sites")
	{
		// 站点注册表
		sitesRoutes.POST("", handle.CreateSite)
		sitesRoutes.GET("", handle.ListSites)

		// 上传暂存（zip 包 / 文件夹），路径固定，需在 /:id 之前注册
		sitesRoutes.POST("/upload", handle.UploadSiteZip)
		sitesRoutes.POST("/upload-folder", handle.UploadSiteFolder)

		// 单个站点操作
		singleGroup := sitesRoutes.Group("/:id")
		{
			singleGroup.GET("", handle.GetSite)
			singleGroup.DELETE("", handle.DeleteSite)

			// 部署
			singleGroup.POST("/deploy", handle.DeploySite)
			singleGroup.GET("/deployments", handle.ListDeployments)

			// 环境变量（整体替换语义）
			singleGroup.GET("/env", handle.ListEnvVars)
			singleGroup.POST("/env", handle.ReplaceEnvVars)
		}
	}
}
