package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/oklog/ulid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/ingest"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/storage/mq"
	"github.com/yeisme/sitevault/pkg/internal/types"
	nlog "github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/metrics"
	"github.com/yeisme/sitevault/pkg/queue"
)

// uploadConcurrency 上传扇出的并发上限.
const uploadConcurrency = 8

// 部署阶段，失败事件里标注到哪一步.
const (
	stageValidating  = "validating"
	stageUploading   = "uploading"
	stageRegistering = "registering"
)

var ulidMu sync.Mutex

// newDeploymentID 生成时间有序的部署 ID.
func newDeploymentID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// DeployService 部署编排器.
type DeployService struct {
	deps
	sites *SiteService
}

// NewDeployService 从请求上下文装配部署服务.
func NewDeployService(c context.Context) *DeployService {
	d := depsFromContext(c)

	return &DeployService{deps: d, sites: &SiteService{deps: d}}
}

// NewDeployServiceWith 显式注入依赖（测试用）.
func NewDeployServiceWith(db *gorm.DB, store ObjectStore, mqClient *mq.Client, siteCfg configs.SiteConfig, s3Cfg configs.S3Config) *DeployService {
	d := deps{db: db, store: store, mq: mqClient, siteCfg: siteCfg, s3Cfg: s3Cfg}

	return &DeployService{deps: d, sites: &SiteService{deps: d}}
}

// Deploy 把规范化后的文件清单发布为站点内容.
//
// 流程：校验 → （可选）清空旧前缀 → 并发上传 → 更新站点与部署记录.
// 上传中任一不可恢复错误终止部署，已写入的对象保留；
// 文件全部写入后部署记录落库失败 → 返回部分成功（success + warning）.
func (ds *DeployService) Deploy(ctx context.Context, owner, siteID string, bundle *ingest.Bundle, replace bool) (*types.DeployResponse, error) {
	start := time.Now()

	site, err := ds.sites.GetSiteForOwner(ctx, owner, siteID)
	if err != nil {
		return nil, err
	}

	if bundle == nil || len(bundle.Files) == 0 {
		return nil, NewValidationError("empty upload")
	}

	dep := &model.Deployment{
		ID:          newDeploymentID(),
		SiteID:      site.ID,
		OwnerID:     owner,
		Status:      model.DeploymentStatusPending,
		FileCount:   len(bundle.Files),
		TotalBytes:  bundle.TotalBytes,
		Fingerprint: bundle.Fingerprint,
	}
	if err := ds.db.WithContext(ctx).Create(dep).Error; err != nil {
		return nil, fmt.Errorf("create deployment record: %w", err)
	}

	ds.setDeploymentStatus(ctx, dep.ID, model.DeploymentStatusDeploying, "")

	// replace=true 时先清空前缀，保证没有上一次部署的残留文件
	if replace {
		if _, err := ds.store.DeletePrefix(ctx, ds.siteCfg.Bucket, site.Slug); err != nil {
			return nil, ds.fail(ctx, site, dep, stageUploading, &StorageError{Op: "delete prefix", Err: err})
		}
	}

	if err := ds.uploadBundle(ctx, site.Slug, bundle); err != nil {
		return nil, ds.fail(ctx, site, dep, stageUploading, err)
	}

	url := ds.publicURL(site.Slug)

	// 文件已全部写入；此后注册失败只降级为警告，不再报失败
	version, err := ds.sites.MarkDeployed(ctx, owner, site.ID, url)
	if err != nil {
		nlog.Logger().Error().Err(err).
			Str("site_id", site.ID).
			Str("deployment_id", dep.ID).
			Msg("deployment record failed after storage success")

		ds.setDeploymentStatus(ctx, dep.ID, model.DeploymentStatusFailed, err.Error())
		metrics.DeploymentCounter.WithLabelValues(model.DeploymentStatusFailed).Inc()

		return &types.DeployResponse{
			Success: true,
			Warning: "deployment record failed",
			URL:     url,
		}, nil
	}

	now := time.Now()
	if err := ds.db.WithContext(ctx).Model(&model.Deployment{}).
		Where("id = ?", dep.ID).
		Updates(map[string]any{
			"status":       model.DeploymentStatusActive,
			"deployed_url": url,
			"deployed_at":  now,
			"version":      version,
		}).Error; err != nil {
		nlog.Logger().Error().Err(err).Str("deployment_id", dep.ID).Msg("finalize deployment record")
	}

	metrics.DeploymentCounter.WithLabelValues(model.DeploymentStatusActive).Inc()
	metrics.DeploymentDuration.Observe(time.Since(start).Seconds())
	metrics.DeployedFilesCounter.Add(float64(len(bundle.Files)))

	nlog.Logger().Info().
		Str("site_id", site.ID).
		Str("slug", site.Slug).
		Str("deployment_id", dep.ID).
		Int("version", version).
		Int("files", len(bundle.Files)).
		Int64("bytes", bundle.TotalBytes).
		Dur("took", time.Since(start)).
		Msg("site deployed")

	publishEvent(ds.mq, queue.TopicSiteDeployed, queue.SiteDeployedPayload{
		Site:         queue.SiteRef{SiteID: site.ID, Slug: site.Slug, OwnerID: owner},
		DeploymentID: dep.ID,
		Version:      version,
		FileCount:    len(bundle.Files),
		TotalBytes:   bundle.TotalBytes,
		URL:          url,
		Fingerprint:  bundle.Fingerprint,
	})

	return &types.DeployResponse{
		Success: true,
		URL:     url,
		Deployment: &types.DeploymentInfo{
			ID:         dep.ID,
			SiteID:     site.ID,
			Status:     model.DeploymentStatusActive,
			Version:    version,
			FileCount:  len(bundle.Files),
			TotalBytes: bundle.TotalBytes,
			DeployedAt: &now,
		},
	}, nil
}

// uploadBundle 并发上传全部文件，首个错误终止.
func (ds *DeployService) uploadBundle(ctx context.Context, slug string, bundle *ingest.Bundle) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	for _, file := range bundle.Files {
		g.Go(func() error {
			f, err := os.Open(file.LocalPath)
			if err != nil {
				return &StorageError{Op: "open staged file", Err: err}
			}
			defer f.Close()

			key := objectKey(slug, file.RelativePath)
			if err := ds.store.PutObject(gctx, ds.siteCfg.Bucket, key, f, file.Size, file.ContentType); err != nil {
				return &StorageError{Op: "put object", Err: err}
			}

			return nil
		})
	}

	return g.Wait()
}

// fail 标记部署失败并发出事件.已有在线版本的站点不回退状态.
func (ds *DeployService) fail(ctx context.Context, site *model.Site, dep *model.Deployment, stage string, cause error) error {
	ds.setDeploymentStatus(ctx, dep.ID, model.DeploymentStatusFailed, cause.Error())

	if err := ds.sites.MarkFailed(ctx, site.OwnerID, site.ID); err != nil {
		nlog.Logger().Error().Err(err).Str("site_id", site.ID).Msg("mark site failed")
	}

	metrics.DeploymentCounter.WithLabelValues(model.DeploymentStatusFailed).Inc()

	nlog.Logger().Error().Err(cause).
		Str("site_id", site.ID).
		Str("slug", site.Slug).
		Str("deployment_id", dep.ID).
		Str("stage", stage).
		Msg("deploy failed")

	publishEvent(ds.mq, queue.TopicSiteDeployFailed, queue.SiteDeployFailedPayload{
		Site:         queue.SiteRef{SiteID: site.ID, Slug: site.Slug, OwnerID: site.OwnerID},
		DeploymentID: dep.ID,
		Stage:        stage,
		Error:        cause.Error(),
	})

	return cause
}

// setDeploymentStatus 更新部署记录状态.
func (ds *DeployService) setDeploymentStatus(ctx context.Context, depID, status, errMsg string) {
	updates := map[string]any{"status": status}
	if errMsg != "" {
		updates["error"] = errMsg
	}

	if err := ds.db.WithContext(ctx).Model(&model.Deployment{}).
		Where("id = ?", depID).
		Updates(updates).Error; err != nil {
		nlog.Logger().Error().Err(err).Str("deployment_id", depID).Msg("update deployment status")
	}
}

// ListDeployments 站点的部署历史（新在前）.
func (ds *DeployService) ListDeployments(ctx context.Context, owner, siteID string) ([]types.DeploymentInfo, error) {
	if _, err := ds.sites.GetSiteForOwner(ctx, owner, siteID); err != nil {
		return nil, err
	}

	var deployments []model.Deployment

	err := ds.db.WithContext(ctx).
		Where("site_id = ? AND owner_id = ?", siteID, owner).
		Order("id DESC").
		Find(&deployments).Error
	if err != nil {
		return nil, fmt.Errorf("list deployments: %w", err)
	}

	infos := make([]types.DeploymentInfo, 0, len(deployments))
	for i := range deployments {
		d := &deployments[i]
		infos = append(infos, types.DeploymentInfo{
			ID:         d.ID,
			SiteID:     d.SiteID,
			Status:     d.Status,
			Version:    d.Version,
			FileCount:  d.FileCount,
			TotalBytes: d.TotalBytes,
			DeployedAt: d.DeployedAt,
			Error:      d.Error,
		})
	}

	return infos, nil
}
