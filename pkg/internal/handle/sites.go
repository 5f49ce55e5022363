package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
	"github.com/yeisme/sitevault/pkg/log"
)

// CreateSite 处理注册站点请求.
//
//	@Summary		注册站点
//	@Description	注册新站点，slug 全局唯一，初始状态为 draft
//	@Tags			站点管理
//	@Accept			json
//	@Produce		json
//	@Param			site	body		types.CreateSiteRequest	true	"注册站点请求"
//	@Success		201		{object}	types.SiteResponse		"站点信息"
//	@Failure		400		{object}	map[string]string		"请求参数错误"
//	@Failure		409		{object}	map[string]string		"slug 已被占用"
//	@Failure		500		{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/sites [post]
func CreateSite(c *gin.Context) {
	l := log.Logger()

	var req types.CreateSiteRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create site request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	user, err := checkUser(c)
	if user == "" || err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	svc := service.NewSiteService(c.Request.Context())

	resp, err := svc.CreateSite(c.Request.Context(), user, &req)
	if err != nil {
		l.Error().Err(err).Str("slug", req.Slug).Msg("failed to create site")
		writeServiceError(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListSites 处理站点列表请求.
//
//	@Summary		站点列表
//	@Description	列出当前用户的全部站点
//	@Tags			站点管理
//	@Produce		json
//	@Success		200	{object}	types.ListSitesResponse	"站点列表"
//	@Failure		400	{object}	map[string]string		"请求参数错误"
//	@Failure		500	{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/sites [get]
func ListSites(c *gin.Context) {
	l := log.Logger()

	user, err := checkUser(c)
	if user == "" || err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	svc := service.NewSiteService(c.Request.Context())

	resp, err := svc.ListSites(c.Request.Context(), user)
	if err != nil {
		l.Error().Err(err).Msg("failed to list sites")
		writeServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetSite 处理查询单个站点请求.
//
//	@Summary		查询站点
//	@Description	查询当前用户的指定站点
//	@Tags			站点管理
//	@Produce		json
//	@Param			id	path		string				true	"站点ID"
//	@Success		200	{object}	types.SiteResponse	"站点信息"
//	@Failure		400	{object}	map[string]string	"请求参数错误"
//	@Failure		404	{object}	map[string]string	"站点不存在"
//	@Failure		500	{object}	map[string]string	"服务器内部错误"
//	@Router			/api/v1/sites/{id} [get]
func GetSite(c *gin.Context) {
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

	svc := service.NewSiteService(c.Request.Context())

	site, err := svc.GetSiteForOwner(c.Request.Context(), user, siteID)
	if err != nil {
		l.Warn().Err(err).Str("site_id", siteID).Msg("failed to get site")
		writeServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, types.SiteResponse{
		ID:        site.ID,
		Name:      site.Name,
		Slug:      site.Slug,
		Status:    site.Status,
		PublicURL: site.PublicURL,
		Version:   site.Version,
		CreatedAt: site.CreatedAt,
		UpdatedAt: site.UpdatedAt,
	})
}

// DeleteSite 处理删除站点请求.
//
//	@Summary		删除站点
//	@Description	删除站点记录、部署历史与环境变量，并尽力清理对象存储中的站点文件
//	@Tags			站点管理
//	@Produce		json
//	@Param			id	path		string						true	"站点ID"
//	@Success		200	{object}	types.DeleteSiteResponse	"删除结果"
//	@Failure		400	{object}	map[string]string			"请求参数错误"
//	@Failure		404	{object}	map[string]string			"站点不存在"
//	@Failure		500	{object}	map[string]string			"服务器内部错误"
//	@Router			/api/v1/sites/{id} [delete]
func DeleteSite(c *gin.Context) {
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

	svc := service.NewSiteService(c.Request.Context())

	resp, err := svc.DeleteSite(c.Request.Context(), user, siteID)
	if err != nil {
		l.Error().Err(err).Str("site_id", siteID).Msg("failed to delete site")
		writeServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListDeployments 处理部署历史请求.
//
//	@Summary		部署历史
//	@Description	列出站点的部署记录，新的在前
//	@Tags			部署
//	@Produce		json
//	@Param			id	path		string					true	"站点ID"
//	@Success		200	{array}		types.DeploymentInfo	"部署记录"
//	@Failure		400	{object}	map[string]string		"请求参数错误"
//	@Failure		404	{object}	map[string]string		"站点不存在"
//	@Failure		500	{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/sites/{id}/deployments [get]
func ListDeployments(c *gin.Context) {
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

	svc := service.NewDeployService(c.Request.Context())

	infos, err := svc.ListDeployments(c.Request.Context(), user, siteID)
	if err != nil {
		l.Error().Err(err).Str("site_id", siteID).Msg("failed to list deployments")
		writeServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, infos)
}
