// Package service 实现站点注册、部署编排与环境变量管理的业务逻辑.
package service

import (
	"context"
	"io"

	"gorm.io/gorm"

	"github.com/yeisme/sitevault/pkg/configs"
	ctxPkg "github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/internal/storage/mq"
	s3c "github.com/yeisme/sitevault/pkg/internal/storage/s3"
)

// ObjectStore 部署编排需要的对象存储操作子集，*s3.Client 满足该接口.
// 测试用假实现替换.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, content io.ReaderAt, size int64, contentType string) error
	DeletePrefix(ctx context.Context, bucket, prefix string) (s3c.DeletePrefixResult, error)
}

// deps 各 service 共享的依赖集合.
type deps struct {
	db      *gorm.DB
	store   ObjectStore
	mq      *mq.Client
	siteCfg configs.SiteConfig
	s3Cfg   configs.S3Config
}

// depsFromContext 从请求上下文的存储管理器装配依赖.
func depsFromContext(c context.Context) deps {
	d := deps{
		siteCfg: configs.GetConfig().Site,
		s3Cfg:   configs.GetConfig().S3,
	}

	if dbc := ctxPkg.GetDBClient(c); dbc != nil {
		d.db = dbc.GetDB()
	}

	if s3cli := ctxPkg.GetS3Client(c); s3cli != nil {
		d.store = s3cli
	}

	d.mq = ctxPkg.GetMQClient(c)

	return d
}

// publicURL 站点入口地址：<base>/<bucket>/<slug>/index.html.
func (d deps) publicURL(slug string) string {
	return s3c.PublicURL(&d.siteCfg, &d.s3Cfg, d.siteCfg.Bucket, slug+"/index.html")
}

// objectKey 站点文件的对象键：<slug>/<relativePath>.
func objectKey(slug, relPath string) string {
	return slug + "/" + relPath
}
