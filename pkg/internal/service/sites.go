package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/storage/mq"
	"github.com/yeisme/sitevault/pkg/internal/types"
	nlog "github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/queue"
	"github.com/yeisme/sitevault/pkg/rule"
)

// SiteService 站点注册表.
type SiteService struct {
	deps
}

// NewSiteService 从请求上下文装配站点服务.
func NewSiteService(c context.Context) *SiteService {
	return &SiteService{deps: depsFromContext(c)}
}

// NewSiteServiceWith 显式注入依赖（测试用）.
func NewSiteServiceWith(db *gorm.DB, store ObjectStore, mqClient *mq.Client, siteCfg configs.SiteConfig, s3Cfg configs.S3Config) *SiteService {
	return &SiteService{deps: deps{db: db, store: store, mq: mqClient, siteCfg: siteCfg, s3Cfg: s3Cfg}}
}

// CreateSite 注册新站点，slug 全局唯一，初始状态 draft.
func (ss *SiteService) CreateSite(ctx context.Context, owner string, req *types.CreateSiteRequest) (*types.SiteResponse, error) {
	if err := rule.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid site: %v", err)
	}

	site := &model.Site{
		ID:      uuid.NewString(),
		OwnerID: owner,
		Name:    req.Name,
		Slug:    req.Slug,
		Status:  model.SiteStatusDraft,
	}

	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Site{}).Where("slug = ?", req.Slug).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return &ConflictError{Msg: fmt.Sprintf("slug already taken: %s", req.Slug)}
		}

		return tx.Create(site).Error
	})
	if err != nil {
		var ce *ConflictError
		if errors.As(err, &ce) {
			return nil, ce
		}
		// 唯一索引兜底并发创建
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Msg: fmt.Sprintf("slug already taken: %s", req.Slug)}
		}

		return nil, fmt.Errorf("create site: %w", err)
	}

	nlog.Logger().Info().
		Str("site_id", site.ID).
		Str("slug", site.Slug).
		Str("owner", owner).
		Msg("site created")

	publishEvent(ss.mq, queue.TopicSiteCreated, queue.SiteCreatedPayload{
		Site: queue.SiteRef{SiteID: site.ID, Slug: site.Slug, OwnerID: owner},
		Name: site.Name,
	})

	return siteToResponse(site), nil
}

// GetSiteForOwner 按 owner 范围查询站点.不存在与不属于该用户不可区分，都返回 NotFoundError.
func (ss *SiteService) GetSiteForOwner(ctx context.Context, owner, siteID string) (*model.Site, error) {
	var site model.Site

	err := ss.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", siteID, owner).
		First(&site).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "site", ID: siteID}
		}

		return nil, fmt.Errorf("get site: %w", err)
	}

	return &site, nil
}

// GetSiteBySlugActive 公共访问路径按 slug 查询激活站点.
func (ss *SiteService) GetSiteBySlugActive(ctx context.Context, slug string) (*model.Site, error) {
	var site model.Site

	err := ss.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, model.SiteStatusActive).
		First(&site).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "site", ID: slug}
		}

		return nil, fmt.Errorf("get site by slug: %w", err)
	}

	return &site, nil
}

// ListSites 列出当前用户全部站点.
func (ss *SiteService) ListSites(ctx context.Context, owner string) (*types.ListSitesResponse, error) {
	var sites []model.Site

	err := ss.db.WithContext(ctx).
		Where("owner_id = ?", owner).
		Order("created_at DESC").
		Find(&sites).Error
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}

	resp := &types.ListSitesResponse{
		Sites: make([]types.SiteResponse, 0, len(sites)),
		Total: len(sites),
	}
	for i := range sites {
		resp.Sites = append(resp.Sites, *siteToResponse(&sites[i]))
	}

	return resp, nil
}

// MarkDeployed 部署成功后更新站点：status=active、public_url、版本号在 SQL 里原子递增.
// 返回递增后的版本号.
func (ss *SiteService) MarkDeployed(ctx context.Context, owner, siteID, url string) (int, error) {
	res := ss.db.WithContext(ctx).Model(&model.Site{}).
		Where("id = ? AND owner_id = ?", siteID, owner).
		Updates(map[string]any{
			"status":     model.SiteStatusActive,
			"public_url": url,
			"version":    gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("mark deployed: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return 0, &NotFoundError{Resource: "site", ID: siteID}
	}

	var site model.Site
	if err := ss.db.WithContext(ctx).Where("id = ?", siteID).First(&site).Error; err != nil {
		return 0, fmt.Errorf("reload site after deploy: %w", err)
	}

	return site.Version, nil
}

// MarkFailed 部署失败时标记站点.已有在线版本的站点保持 active，不回退.
func (ss *SiteService) MarkFailed(ctx context.Context, owner, siteID string) error {
	res := ss.db.WithContext(ctx).Model(&model.Site{}).
		Where("id = ? AND owner_id = ? AND version = 0", siteID, owner).
		Update("status", model.SiteStatusFailed)
	if res.Error != nil {
		return fmt.Errorf("mark failed: %w", res.Error)
	}

	return nil
}

// DeleteSite 删除站点记录、部署历史与环境变量，随后尽力清理对象存储前缀.
// 对象清理失败不回滚删除，只计入统计（孤儿前缀由巡检任务报告）.
func (ss *SiteService) DeleteSite(ctx context.Context, owner, siteID string) (*types.DeleteSiteResponse, error) {
	site, err := ss.GetSiteForOwner(ctx, owner, siteID)
	if err != nil {
		return nil, err
	}

	err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_id = ?", siteID).Delete(&model.SiteEnvVar{}).Error; err != nil {
			return err
		}

		if err := tx.Where("site_id = ?", siteID).Delete(&model.Deployment{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ? AND owner_id = ?", siteID, owner).Delete(&model.Site{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("delete site: %w", err)
	}

	resp := &types.DeleteSiteResponse{Success: true, SiteID: siteID}

	if ss.store != nil {
		result, delErr := ss.store.DeletePrefix(ctx, ss.siteCfg.Bucket, site.Slug)
		if delErr != nil {
			nlog.Logger().Error().Err(delErr).Str("slug", site.Slug).Msg("delete site prefix")
		}

		resp.ObjectsDeleted = result.Deleted
		resp.ObjectsFailed = result.Errors
	}

	nlog.Logger().Info().
		Str("site_id", siteID).
		Str("slug", site.Slug).
		Int("objects_deleted", resp.ObjectsDeleted).
		Int("objects_failed", resp.ObjectsFailed).
		Msg("site deleted")

	publishEvent(ss.mq, queue.TopicSiteDeleted, queue.SiteDeletedPayload{
		Site:           queue.SiteRef{SiteID: siteID, Slug: site.Slug, OwnerID: owner},
		ObjectsDeleted: resp.ObjectsDeleted,
		ObjectsFailed:  resp.ObjectsFailed,
	})

	return resp, nil
}

// siteToResponse 转换为响应结构.
func siteToResponse(s *model.Site) *types.SiteResponse {
	return &types.SiteResponse{
		ID:        s.ID,
		Name:      s.Name,
		Slug:      s.Slug,
		Status:    s.Status,
		PublicURL: s.PublicURL,
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
