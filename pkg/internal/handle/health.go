// Package handle 新增健康检查处理器实现.
package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/sitevault/pkg/context"
)

const timeout = 2 * time.Second

// Health 综合健康检查：进程存活 + 各存储组件状态.
//
//	@Summary		健康检查
//	@Description	返回服务与依赖组件（数据库、对象存储、消息队列）的健康状态
//	@Tags			健康检查
//	@Produce		json
//	@Success		200	{object}	map[string]string	"全部健康"
//	@Failure		503	{object}	map[string]string	"存在不健康组件"
//	@Router			/api/v1/health [get]
func Health(c *gin.Context) {
	components := gin.H{}
	healthy := true

	if err := pingDB(c); err != nil {
		components["db"] = err.Error()
		healthy = false
	} else {
		components["db"] = "ok"
	}

	if err := pingS3(c); err != nil {
		components["s3"] = err.Error()
		healthy = false
	} else {
		components["s3"] = "ok"
	}

	if mqc := ctxPkg.GetMQClient(c.Request.Context()); mqc == nil {
		components["mq"] = "disabled"
	} else {
		components["mq"] = "ok"
	}

	status := http.StatusOK
	statusText := "ok"

	if !healthy {
		status = http.StatusServiceUnavailable
		statusText = "unhealthy"
	}

	c.JSON(status, gin.H{"status": statusText, "components": components})
}

func pingDB(c *gin.Context) error {
	dbc := ctxPkg.GetDBClient(c.Request.Context())
	if dbc == nil || dbc.DB == nil {
		return errNotInitialized("db")
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	sqlDB, err := dbc.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func pingS3(c *gin.Context) error {
	s3cli := ctxPkg.GetS3Client(c.Request.Context())
	if s3cli == nil || s3cli.Client == nil {
		return errNotInitialized("s3")
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	return s3cli.HealthCheck(ctx)
}

type notInitializedError string

func (e notInitializedError) Error() string { return string(e) + " client not initialized" }

func errNotInitialized(component string) error { return notInitializedError(component) }
