package handle

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"github.com/yeisme/sitevault/pkg/cache"
	"github.com/yeisme/sitevault/pkg/configs"
	ctxPkg "github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/log"
)

// objectReader 公共访问路径需要的对象读取操作，*s3.Client 满足该接口.
type objectReader interface {
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, minio.ObjectInfo, error)
}

// cachedSite 站点查找缓存里的最小字段集.
type cachedSite struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// siteResolver 按 slug 查找激活站点.
type siteResolver func(ctx context.Context, slug string) (*cachedSite, error)

// ServeSite 公共站点访问：返回存储的对象，目录路径与未命中路径回退到站点根 index.html.
//
//	@Summary		访问站点内容
//	@Description	按 slug 与相对路径返回已部署的站点文件；目录或未命中路径回退到根 index.html（SPA 风格）
//	@Tags			公共访问
//	@Produce		octet-stream
//	@Param			slug		path	string	true	"站点 slug"
//	@Param			filepath	path	string	false	"站点内相对路径"
//	@Success		200	{file}		file				"文件内容"
//	@Failure		404	{object}	map[string]string	"站点或文件不存在"
//	@Router			/sites/{slug}/{filepath} [get]
func ServeSite(c *gin.Context) {
	slug := c.Param("slug")

	store := ctxPkg.GetS3Client(c.Request.Context())
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage not initialized"})
		return
	}

	cfg := configs.GetConfig().Site

	serveSiteContent(c, store, resolverFromContext(c, &cfg), cfg.Bucket, slug, c.Param("filepath"))
}

// resolverFromContext 组装站点查找：KV 可用时用短 TTL 缓存包住 DB 查询.
func resolverFromContext(c *gin.Context, cfg *configs.SiteConfig) siteResolver {
	lookup := func(ctx context.Context, slug string) (*cachedSite, error) {
		svc := service.NewSiteService(ctx)

		site, err := svc.GetSiteBySlugActive(ctx, slug)
		if err != nil {
			return nil, err
		}

		return &cachedSite{ID: site.ID, Slug: site.Slug}, nil
	}

	kvClient := ctxPkg.GetKVClient(c.Request.Context())
	if kvClient == nil || cfg.ServeCacheTTL <= 0 {
		return lookup
	}

	siteCache := cache.NewCache(kvClient)

	return func(ctx context.Context, slug string) (*cachedSite, error) {
		return cache.GetOrSet(ctx, siteCache, "site:slug:"+slug, func() (*cachedSite, error) {
			return lookup(ctx, slug)
		}, cfg.GetServeCacheTTL())
	}
}

// serveSiteContent 解析站点并返回对象内容.
func serveSiteContent(c *gin.Context, store objectReader, resolve siteResolver, bucket, slug, path string) {
	l := log.Logger()

	site, err := resolve(c.Request.Context(), slug)
	if err != nil {
		if !service.IsNotFound(err) {
			l.Error().Err(err).Str("slug", slug).Msg("site lookup failed")
		}

		c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})

		return
	}

	key := objectKeyForPath(site.Slug, path)

	obj, info, err := store.GetObject(c.Request.Context(), bucket, key)
	if err != nil {
		// SPA 回退：未命中的路径退回根 index.html
		fallback := site.Slug + "/index.html"
		if key == fallback {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		obj, info, err = store.GetObject(c.Request.Context(), bucket, fallback)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
	}

	defer func() { _ = obj.Close() }()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, info.Size, contentType, obj, nil)
}

// objectKeyForPath 请求路径到对象键：空路径与目录路径指向 index.html.
func objectKeyForPath(slug, path string) string {
	path = strings.TrimPrefix(path, "/")
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index.html"
	}

	return slug + "/" + path
}
