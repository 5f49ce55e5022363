package handle

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/ingest"
	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
	"github.com/yeisme/sitevault/pkg/log"
)

// DeploySite 处理部署请求：把暂存的文件清单发布为站点内容.
//
//	@Summary		部署站点
//	@Description	对已暂存的上传内容执行部署；replace=true 时先清空站点前缀下的旧对象
//	@Tags			部署
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"站点ID"
//	@Param			deploy	body		types.DeployRequest		false	"部署参数"
//	@Success		200		{object}	types.DeployResponse	"部署结果（warning 非空表示部分成功）"
//	@Failure		400		{object}	map[string]string		"请求参数错误或没有已暂存的上传"
//	@Failure		404		{object}	map[string]string		"站点不存在"
//	@Failure		500		{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/sites/{id}/deploy [post]
func DeploySite(c *gin.Context) {
	l := log.Logger()

	siteID := c.Param("id")
	if siteID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing site ID"})
		return
	}

	// 站点 ID 随后会拼进暂存目录路径，先校验形状，挡掉 .. 之类的路径穿越
	if _, err := uuid.Parse(siteID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid site ID"})
		return
	}

	user, err := checkUser(c)
	if user == "" || err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	var req types.DeployRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid deploy request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	cfg := configs.GetConfig().Site
	dir := stagingDir(&cfg, siteID)

	bundle, err := ingest.LoadStaged(dir)
	if err != nil {
		if errors.Is(err, ingest.ErrEmptyUpload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no staged upload for site, upload first"})
			return
		}

		l.Error().Err(err).Str("site_id", siteID).Msg("load staged bundle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewDeployService(c.Request.Context())

	resp, err := svc.Deploy(c.Request.Context(), user, siteID, bundle, req.Replace)
	if err != nil {
		l.Error().Err(err).Str("site_id", siteID).Msg("deploy failed")
		writeServiceError(c, err)

		return
	}

	// 部署成功后清掉暂存目录，失败时保留以便重试
	if resp.Warning == "" {
		if err := os.RemoveAll(dir); err != nil {
			l.Warn().Err(err).Str("site_id", siteID).Msg("clear staging dir after deploy")
		}
	}

	c.JSON(http.StatusOK, resp)
}
