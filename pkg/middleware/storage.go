package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/internal/storage"
)

// StorageMiddleware 把存储管理器挂到请求上下文，service 层从那里取客户端.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(
			context.WithStorageManager(c.Request.Context(), manager))

		c.Next()
	}
}
