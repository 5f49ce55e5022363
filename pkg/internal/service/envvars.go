package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/types"
	nlog "github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/queue"
)

// EnvVarService 站点环境变量，整体替换语义.
type EnvVarService struct {
	deps
	sites *SiteService
}

// NewEnvVarService 从请求上下文装配环境变量服务.
func NewEnvVarService(c context.Context) *EnvVarService {
	d := depsFromContext(c)

	return &EnvVarService{deps: d, sites: &SiteService{deps: d}}
}

// NewEnvVarServiceWith 显式注入依赖（测试用）.
func NewEnvVarServiceWith(db *gorm.DB, siteCfg configs.SiteConfig, s3Cfg configs.S3Config) *EnvVarService {
	d := deps{db: db, siteCfg: siteCfg, s3Cfg: s3Cfg}

	return &EnvVarService{deps: d, sites: &SiteService{deps: d}}
}

// List 列出站点环境变量.没有任何变量时返回空列表而非错误.
func (es *EnvVarService) List(ctx context.Context, owner, siteID string) (*types.EnvListResponse, error) {
	if _, err := es.sites.GetSiteForOwner(ctx, owner, siteID); err != nil {
		return nil, err
	}

	var vars []model.SiteEnvVar

	err := es.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("key ASC").
		Find(&vars).Error
	if err != nil {
		return nil, fmt.Errorf("list env vars: %w", err)
	}

	resp := &types.EnvListResponse{
		SiteID:  siteID,
		EnvVars: make([]types.EnvVarItem, 0, len(vars)),
	}
	for _, v := range vars {
		resp.EnvVars = append(resp.EnvVars, types.EnvVarItem{
			Key:      v.Key,
			Value:    v.Value,
			IsSecret: v.IsSecret,
		})
	}

	return resp, nil
}

// ReplaceAll 整体替换环境变量集合：一个事务内先删全量再插入.
// 输入里出现重复键在任何删除发生前就拒绝；空集合合法，表示清空.
func (es *EnvVarService) ReplaceAll(ctx context.Context, owner, siteID string, req *types.ReplaceEnvRequest) (*types.ReplaceEnvResponse, error) {
	site, err := es.sites.GetSiteForOwner(ctx, owner, siteID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(req.EnvVars))
	for _, item := range req.EnvVars {
		if item.Key == "" {
			return nil, NewValidationError("env var key must not be empty")
		}

		if _, dup := seen[item.Key]; dup {
			return nil, NewValidationError("duplicate env var key: %s", item.Key)
		}

		seen[item.Key] = struct{}{}
	}

	err = es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_id = ?", siteID).Delete(&model.SiteEnvVar{}).Error; err != nil {
			return err
		}

		for _, item := range req.EnvVars {
			record := model.SiteEnvVar{
				SiteID:   siteID,
				OwnerID:  owner,
				Key:      item.Key,
				Value:    item.Value,
				IsSecret: item.IsSecret,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("replace env vars: %w", err)
	}

	nlog.Logger().Info().
		Str("site_id", siteID).
		Int("count", len(req.EnvVars)).
		Msg("env vars replaced")

	publishEvent(es.mq, queue.TopicSiteEnvReplaced, queue.SiteEnvReplacedPayload{
		Site:  queue.SiteRef{SiteID: siteID, Slug: site.Slug, OwnerID: owner},
		Count: len(req.EnvVars),
	})

	return &types.ReplaceEnvResponse{Success: true, Count: len(req.EnvVars)}, nil
}
