package service_test

import (
	"context"
	"testing"

	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
)

// TestCreateSite 测试站点注册与初始状态.
func TestCreateSite(t *testing.T) {
	db := newTestDB(t)
	ss := service.NewSiteServiceWith(db, newFakeStore(), nil, testSiteCfg(), testS3Cfg())
	ctx := context.Background()

	resp, err := ss.CreateSite(ctx, "alice@example.com", &types.CreateSiteRequest{
		Name: "My Blog",
		Slug: "my-blog",
	})
	if err != nil {
		t.Fatalf("CreateSite failed: %v", err)
	}

	if resp.Status != model.SiteStatusDraft {
		t.Errorf("status = %q, want draft", resp.Status)
	}

	if resp.Version != 0 {
		t.Errorf("version = %d, want 0", resp.Version)
	}

	if resp.PublicURL != nil {
		t.Errorf("public url = %v, want nil before deploy", *resp.PublicURL)
	}

	if resp.ID == "" {
		t.Error("expected non-empty site id")
	}
}

// TestCreateSiteSlugConflict 测试 slug 全局唯一.
func TestCreateSiteSlugConflict(t *testing.T) {
	db := newTestDB(t)
	ss := service.NewSiteServiceWith(db, newFakeStore(), nil, testSiteCfg(), testS3Cfg())
	ctx := context.Background()

	if _, err := ss.CreateSite(ctx, "alice@example.com", &types.CreateSiteRequest{Name: "A", Slug: "taken"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// 其他用户也不能占用同一 slug
	_, err := ss.CreateSite(ctx, "bob@example.com", &types.CreateSiteRequest{Name: "B", Slug: "taken"})
	if !service.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

// TestCreateSiteInvalidSlug 测试非法 slug 被拒绝.
func TestCreateSiteInvalidSlug(t *testing.T) {
	db := newTestDB(t)
	ss := service.NewSiteServiceWith(db, newFakeStore(), nil, testSiteCfg(), testS3Cfg())

	_, err := ss.CreateSite(context.Background(), "alice@example.com", &types.CreateSiteRequest{
		Name: "Bad",
		Slug: "Not A Slug",
	})
	if !service.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// TestGetSiteOwnershipIsolation 测试其他用户的站点不可见，且与不存在不可区分.
func TestGetSiteOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	ss := service.NewSiteServiceWith(db, newFakeStore(), nil, testSiteCfg(), testS3Cfg())
	ctx := context.Background()

	created, err := ss.CreateSite(ctx, "alice@example.com", &types.CreateSiteRequest{Name: "A", Slug: "alice-site"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 属主可以取到
	if _, err := ss.GetSiteForOwner(ctx, "alice@example.com", created.ID); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}

	// 其他用户取不到
	_, errForeign := ss.GetSiteForOwner(ctx, "bob@example.com", created.ID)
	if !service.IsNotFound(errForeign) {
		t.Fatalf("expected NotFoundError for foreign owner, got %v", errForeign)
	}

	// 完全不存在的 ID
	_, errMissing := ss.GetSiteForOwner(ctx, "alice@example.com", "00000000-0000-0000-0000-000000000000")
	if !service.IsNotFound(errMissing) {
		t.Fatalf("expected NotFoundError for missing site, got %v", errMissing)
	}

	// 两种情况的错误信息形态一致（不可区分）
	if service.IsNotFound(errForeign) != service.IsNotFound(errMissing) {
		t.Error("foreign and missing should be indistinguishable")
	}
}

// TestListSitesScopedToOwner 测试列表只含当前用户的站点.
func TestListSitesScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	ss := service.NewSiteServiceWith(db, newFakeStore(), nil, testSiteCfg(), testS3Cfg())
	ctx := context.Background()

	_, _ = ss.CreateSite(ctx, "alice@example.com", &types.CreateSiteRequest{Name: "A1", Slug: "a1"})
	_, _ = ss.CreateSite(ctx, "alice@example.com", &types.CreateSiteRequest{Name: "A2", Slug: "a2"})
	_, _ = ss.CreateSite(ctx, "bob@example.com", &types.CreateSiteRequest{Name: "B1", Slug: "b1"})

	resp, err := ss.ListSites(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if resp.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Total)
	}
}

// TestMarkDeployedIncrementsVersion 测试版本号原子递增、状态翻转.
func TestMarkDeployedIncrementsVersion(t *testing.T) {
	db := newTestDB(t)
	ss := service.NewSiteServiceWith(db, newFakeStore(), nil, testSiteCfg(), testS3Cfg())
	ctx := context.Background()

	created, err := ss.CreateSite(ctx, "alice@example.com", &types.CreateSiteRequest{Name: "A", Slug: "v-test"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	v1, err := ss.MarkDeployed(ctx, "alice@example.com", created.ID, "http://example.com/sites/v-test/index.html")
	if err != nil {
		t.Fatalf("first MarkDeployed failed: %v", err)
	}

	if v1 != 1 {
		t.Errorf("version after first deploy = %d, want 1", v1)
	}

	v2, err := ss.MarkDeployed(ctx, "alice@example.com", created.ID, "http://example.com/sites/v-test/index.html")
	if err != nil {
		t.Fatalf("second MarkDeployed failed: %v", err)
	}

	if v2 != 2 {
		t.Errorf("version after second deploy = %d, want 2", v2)
	}

	site, err := ss.GetSiteForOwner(ctx, "alice@example.com", created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if site.Status != model.SiteStatusActive {
		t.Errorf("status = %q, want active", site.Status)
	}

	if site.PublicURL == nil || *site.PublicURL == "" {
		t.Error("expected public url after deploy")
	}
}

// TestMarkDeployedForeignOwner 测试非属主不能标记部署.
func TestMarkDeployedForeignOwner(t *testing.T) {
	db := newTestDB(t)
	ss := service.NewSiteServiceWith(db, newFakeStore(), nil, testSiteCfg(), testS3Cfg())
	ctx := context.Background()

	created, _ := ss.CreateSite(ctx, "alice@example.com", &types.CreateSiteRequest{Name: "A", Slug: "md-own"})

	_, err := ss.MarkDeployed(ctx, "bob@example.com", created.ID, "http://x")
	if !service.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

// TestDeleteSiteRemovesRowAndObjects 测试删除站点清理记录与对象.
func TestDeleteSiteRemovesRowAndObjects(t *testing.T) {
	db := newTestDB(t)
	store := newFakeStore()
	ss := service.NewSiteServiceWith(db, store, nil, testSiteCfg(), testS3Cfg())
	ctx := context.Background()

	created, _ := ss.CreateSite(ctx, "alice@example.com", &types.CreateSiteRequest{Name: "A", Slug: "del-me"})

	// 预置两个对象
	store.objects["sites/del-me/index.html"] = []byte("x")
	store.objects["sites/del-me/app.js"] = []byte("y")

	resp, err := ss.DeleteSite(ctx, "alice@example.com", created.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if !resp.Success || resp.ObjectsDeleted != 2 {
		t.Errorf("resp = %+v, want success with 2 objects deleted", resp)
	}

	if _, err := ss.GetSiteForOwner(ctx, "alice@example.com", created.ID); !service.IsNotFound(err) {
		t.Fatalf("expected site gone, got %v", err)
	}

	if store.count() != 0 {
		t.Errorf("store still has %d objects", store.count())
	}
}

// TestDeleteSiteFreesSlug 测试删除后 slug 可以被重新注册（包括其他用户）.
func TestDeleteSiteFreesSlug(t *testing.T) {
	db := newTestDB(t)
	ss := service.NewSiteServiceWith(db, newFakeStore(), nil, testSiteCfg(), testS3Cfg())
	ctx := context.Background()

	created, err := ss.CreateSite(ctx, "alice@example.com", &types.CreateSiteRequest{Name: "A", Slug: "reuse-me"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := ss.DeleteSite(ctx, "alice@example.com", created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	recreated, err := ss.CreateSite(ctx, "bob@example.com", &types.CreateSiteRequest{Name: "B", Slug: "reuse-me"})
	if err != nil {
		t.Fatalf("recreate with freed slug failed: %v", err)
	}

	if recreated.ID == created.ID {
		t.Error("recreated site reused old id")
	}

	if recreated.Status != model.SiteStatusDraft {
		t.Errorf("recreated status = %q, want draft", recreated.Status)
	}
}

// TestDeleteSitePrefixFailureStillDeletesRow 测试对象清理失败不回滚删除.
func TestDeleteSitePrefixFailureStillDeletesRow(t *testing.T) {
	db := newTestDB(t)
	store := newFakeStore()
	store.deleteErr = context.DeadlineExceeded
	ss := service.NewSiteServiceWith(db, store, nil, testSiteCfg(), testS3Cfg())
	ctx := context.Background()

	created, _ := ss.CreateSite(ctx, "alice@example.com", &types.CreateSiteRequest{Name: "A", Slug: "del-fail"})

	resp, err := ss.DeleteSite(ctx, "alice@example.com", created.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if !resp.Success {
		t.Error("expected success despite prefix cleanup failure")
	}

	if _, err := ss.GetSiteForOwner(ctx, "alice@example.com", created.ID); !service.IsNotFound(err) {
		t.Fatalf("expected site gone, got %v", err)
	}
}
