package handle

import (
	"archive/zip"
	"errors"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/ingest"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
	"github.com/yeisme/sitevault/pkg/log"
)

// stagingDir 站点的上传暂存目录：<upload_tmp_dir>/<site_id>.
func stagingDir(cfg *configs.SiteConfig, siteID string) string {
	return filepath.Join(cfg.UploadTmpDir, siteID)
}

// ingestLimits 从配置取上传约束.
func ingestLimits(cfg *configs.SiteConfig) ingest.Limits {
	return ingest.Limits{
		MaxFileSizeBytes: cfg.MaxFileSizeBytes,
		MaxFileCount:     cfg.MaxFileCount,
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugifyName 从站点名派生 slug：小写、非字母数字折叠为连字符.
func slugifyName(name string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")

	const maxSlugLen = 63
	if len(s) > maxSlugLen {
		s = strings.Trim(s[:maxSlugLen], "-")
	}

	return s
}

// resolveUploadSite 根据表单确定目标站点：site_id 指定已有站点，site_name 当场注册 draft 站点.
func resolveUploadSite(c *gin.Context, user string) (*model.Site, error) {
	svc := service.NewSiteService(c.Request.Context())

	if siteID := c.PostForm("site_id"); siteID != "" {
		return svc.GetSiteForOwner(c.Request.Context(), user, siteID)
	}

	name := c.PostForm("site_name")
	if name == "" {
		return nil, service.NewValidationError("site_id or site_name required")
	}

	slug := c.PostForm("site_slug")
	if slug == "" {
		slug = slugifyName(name)
	}

	resp, err := svc.CreateSite(c.Request.Context(), user, &types.CreateSiteRequest{Name: name, Slug: slug})
	if err != nil {
		return nil, err
	}

	return svc.GetSiteForOwner(c.Request.Context(), user, resp.ID)
}

// writeIngestError 把规范化阶段的错误映射到 HTTP 状态码.
func writeIngestError(c *gin.Context, err error) {
	var bad *ingest.BadPathError

	switch {
	case errors.As(err, &bad),
		errors.Is(err, ingest.ErrTooManyFiles),
		errors.Is(err, ingest.ErrEmptyUpload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// UploadSiteZip 处理 zip 包上传：解包、规范化并暂存，等待部署.
//
//	@Summary		上传站点 zip 包
//	@Description	上传单个 zip 包并暂存；通过 site_id 指定已有站点，或通过 site_name 当场注册 draft 站点
//	@Tags			上传
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file					true	"站点 zip 包"
//	@Param			site_id		formData	string					false	"站点ID"
//	@Param			site_name	formData	string					false	"站点名（site_id 缺省时当场注册）"
//	@Param			site_slug	formData	string					false	"站点 slug（缺省时由 site_name 派生）"
//	@Success		201			{object}	types.UploadResponse	"暂存结果"
//	@Failure		400			{object}	map[string]string		"请求参数错误"
//	@Failure		404			{object}	map[string]string		"站点不存在"
//	@Failure		500			{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/sites/upload [post]
func UploadSiteZip(c *gin.Context) {
	l := log.Logger()

	user, err := checkUser(c)
	if user == "" || err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn().Err(err).Msg("missing zip file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing zip file"})

		return
	}

	site, err := resolveUploadSite(c, user)
	if err != nil {
		l.Warn().Err(err).Msg("resolve upload site")
		writeServiceError(c, err)

		return
	}

	f, err := fh.Open()
	if err != nil {
		l.Error().Err(err).Msg("open uploaded zip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}
	defer func() { _ = f.Close() }()

	zr, err := zip.NewReader(f, fh.Size)
	if err != nil {
		l.Warn().Err(err).Str("site_id", site.ID).Msg("invalid zip archive")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zip archive"})

		return
	}

	cfg := configs.GetConfig().Site

	bundle, err := ingest.StageZip(zr, stagingDir(&cfg, site.ID), ingestLimits(&cfg))
	if err != nil {
		l.Warn().Err(err).Str("site_id", site.ID).Msg("stage zip failed")
		writeIngestError(c, err)

		return
	}

	l.Info().
		Str("site_id", site.ID).
		Str("slug", site.Slug).
		Int("files", len(bundle.Files)).
		Int64("bytes", bundle.TotalBytes).
		Int("skipped", len(bundle.Skipped)).
		Msg("zip staged")

	c.JSON(http.StatusCreated, uploadResponse(site.ID, bundle))
}

// UploadSiteFolder 处理文件夹上传：multipart files[] 携带相对路径.
//
//	@Summary		上传站点文件夹
//	@Description	以 multipart files[] 上传带相对路径的文件集合并暂存；目标站点语义与 zip 上传相同
//	@Tags			上传
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			files		formData	file					true	"站点文件（可多个，文件名为相对路径）"
//	@Param			site_id		formData	string					false	"站点ID"
//	@Param			site_name	formData	string					false	"站点名（site_id 缺省时当场注册）"
//	@Param			site_slug	formData	string					false	"站点 slug（缺省时由 site_name 派生）"
//	@Success		201			{object}	types.UploadResponse	"暂存结果"
//	@Failure		400			{object}	map[string]string		"请求参数错误"
//	@Failure		404			{object}	map[string]string		"站点不存在"
//	@Failure		500			{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/sites/upload-folder [post]
func UploadSiteFolder(c *gin.Context) {
	l := log.Logger()

	user, err := checkUser(c)
	if user == "" || err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		l.Warn().Err(err).Msg("invalid multipart form")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})

		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	site, err := resolveUploadSite(c, user)
	if err != nil {
		l.Warn().Err(err).Msg("resolve upload site")
		writeServiceError(c, err)

		return
	}

	cfg := configs.GetConfig().Site

	stager, err := ingest.NewStager(stagingDir(&cfg, site.ID), ingestLimits(&cfg))
	if err != nil {
		l.Error().Err(err).Str("site_id", site.ID).Msg("create staging dir")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			stager.Discard()
			l.Error().Err(err).Str("file", fh.Filename).Msg("open uploaded file")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

			return
		}

		err = stager.Add(fh.Filename, f)

		_ = f.Close()

		if err != nil {
			stager.Discard()
			l.Warn().Err(err).Str("site_id", site.ID).Str("file", fh.Filename).Msg("stage file failed")
			writeIngestError(c, err)

			return
		}
	}

	bundle, err := stager.Finalize()
	if err != nil {
		stager.Discard()
		l.Warn().Err(err).Str("site_id", site.ID).Msg("finalize staging failed")
		writeIngestError(c, err)

		return
	}

	l.Info().
		Str("site_id", site.ID).
		Str("slug", site.Slug).
		Int("files", len(bundle.Files)).
		Int64("bytes", bundle.TotalBytes).
		Int("skipped", len(bundle.Skipped)).
		Msg("folder staged")

	c.JSON(http.StatusCreated, uploadResponse(site.ID, bundle))
}

// uploadResponse 组装暂存结果.
func uploadResponse(siteID string, bundle *ingest.Bundle) *types.UploadResponse {
	resp := &types.UploadResponse{
		Success:       true,
		SiteID:        siteID,
		FilesReceived: len(bundle.Files),
		TotalBytes:    bundle.TotalBytes,
	}
	for _, s := range bundle.Skipped {
		resp.Skipped = append(resp.Skipped, types.SkippedFile{Path: s.Path, Reason: s.Reason})
	}

	return resp
}
