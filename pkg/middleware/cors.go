package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/configs"
)

// CORSMiddleware 跨域配置.站点内容本身走公共路由，API 这边放开所有来源，
// 真正的访问控制由认证代理承担.
func CORSMiddleware(cfg configs.ServerConfig) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	conf.AllowAllOrigins = true
	conf.AllowFiles = true
	conf.AddAllowHeaders("X-Auth-Request-Email", "X-Forwarded-Email")

	return cors.New(conf)
}
