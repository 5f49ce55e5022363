package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
	"github.com/yeisme/sitevault/pkg/log"
)

// ListEnvVars 处理环境变量列表请求.
//
//	@Summary		环境变量列表
//	@Description	列出站点的环境变量，按键名排序
//	@Tags			环境变量
//	@Produce		json
//	@Param			id	path		string					true	"站点ID"
//	@Success		200	{object}	types.EnvListResponse	"环境变量列表"
//	@Failure		400	{object}	map[string]string		"请求参数错误"
//	@Failure		404	{object}	map[string]string		"站点不存在"
//	@Failure		500	{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/sites/{id}/env [get]
func ListEnvVars(c *gin.Context) {
	l := log.Logger()

	siteID := c.Param("id")
	if siteID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing site ID"})
		return
	}

	user, err := checkUser(c)
	if user == "" || err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	svc := service.NewEnvVarService(c.Request.Context())

	resp, err := svc.List(c.Request.Context(), user, siteID)
	if err != nil {
		l.Error().Err(err).Str("site_id", siteID).Msg("failed to list env vars")
		writeServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// ReplaceEnvVars 处理环境变量整体替换请求.
//
//	@Summary		替换环境变量
//	@Description	整体替换站点的环境变量集合；空集合表示清空；重复键在任何删除发生前被拒绝
//	@Tags			环境变量
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"站点ID"
//	@Param			env		body		types.ReplaceEnvRequest	true	"新的环境变量集合"
//	@Success		200		{object}	types.ReplaceEnvResponse	"替换结果"
//	@Failure		400		{object}	map[string]string		"请求参数错误"
//	@Failure		404		{object}	map[string]string		"站点不存在"
//	@Failure		500		{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/sites/{id}/env [post]
func ReplaceEnvVars(c *gin.Context) {
	l := log.Logger()

	siteID := c.Param("id")
	if siteID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing site ID"})
		return
	}

	user, err := checkUser(c)
	if user == "" || err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	var req types.ReplaceEnvRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid replace env request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	svc := service.NewEnvVarService(c.Request.Context())

	resp, err := svc.ReplaceAll(c.Request.Context(), user, siteID, &req)
	if err != nil {
		l.Error().Err(err).Str("site_id", siteID).Msg("failed to replace env vars")
		writeServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}
