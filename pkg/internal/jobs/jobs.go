// Package jobs 提供站点发布的后台巡检任务，使用 gocron/v2 库.
//
// 两个任务：
//   - 暂存目录清扫：删除超过保留时长仍未部署的上传暂存目录
//   - 孤儿前缀巡检：对象存储里存在、站点注册表里已不存在的前缀只告警，
//     不自动删除，留给人工对账
package jobs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/storage"
	"github.com/yeisme/sitevault/pkg/log"
)

const (
	sweepInterval = 1 * time.Hour
	auditInterval = 6 * time.Hour
)

// Runner 持有已启动的调度器.
type Runner struct {
	scheduler gocron.Scheduler
}

// Start 注册并启动全部巡检任务.
func Start(ctx context.Context, manager *storage.Manager, cfg *configs.AppConfig) (*Runner, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	if _, err := s.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(func() { sweepStaging(cfg.Site) }),
		gocron.WithName("staging-sweep"),
	); err != nil {
		return nil, err
	}

	if _, err := s.NewJob(
		gocron.DurationJob(auditInterval),
		gocron.NewTask(func() { auditOrphanPrefixes(ctx, manager, cfg.Site) }),
		gocron.WithName("orphan-prefix-audit"),
	); err != nil {
		return nil, err
	}

	s.Start()

	return &Runner{scheduler: s}, nil
}

// Stop 停止调度器.
func (r *Runner) Stop() error {
	return r.scheduler.Shutdown()
}

// sweepStaging 删除超过保留时长的暂存目录.
func sweepStaging(cfg configs.SiteConfig) {
	l := log.Logger()

	entries, err := os.ReadDir(cfg.UploadTmpDir)
	if err != nil {
		if !os.IsNotExist(err) {
			l.Error().Err(err).Str("dir", cfg.UploadTmpDir).Msg("read staging root")
		}

		return
	}

	cutoff := time.Now().Add(-cfg.GetStagingTTL())
	removed := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		dir := filepath.Join(cfg.UploadTmpDir, entry.Name())
		if err := os.RemoveAll(dir); err != nil {
			l.Error().Err(err).Str("dir", dir).Msg("remove stale staging dir")
			continue
		}

		removed++
	}

	if removed > 0 {
		l.Info().Int("removed", removed).Msg("stale staging dirs swept")
	}
}

// auditOrphanPrefixes 报告存储里没有对应站点的前缀.
func auditOrphanPrefixes(ctx context.Context, manager *storage.Manager, cfg configs.SiteConfig) {
	l := log.Logger()

	if manager == nil || manager.S3 == nil || manager.DB == nil {
		return
	}

	prefixes, err := manager.S3.ListPrefixes(ctx, cfg.Bucket)
	if err != nil {
		l.Error().Err(err).Str("bucket", cfg.Bucket).Msg("list prefixes for audit")
		return
	}

	var slugs []string
	if err := manager.DB.GetDB().WithContext(ctx).
		Model(&model.Site{}).
		Pluck("slug", &slugs).Error; err != nil {
		l.Error().Err(err).Msg("list slugs for audit")
		return
	}

	known := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		known[s] = struct{}{}
	}

	for _, p := range prefixes {
		if _, ok := known[p]; !ok {
			l.Warn().Str("prefix", p).Str("bucket", cfg.Bucket).Msg("orphan storage prefix, needs manual reconciliation")
		}
	}
}
