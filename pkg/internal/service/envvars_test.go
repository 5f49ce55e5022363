package service_test

import (
	"context"
	"testing"

	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
)

// newEnvFixture 建好站点并返回环境变量服务.
func newEnvFixture(t *testing.T, slug string) (*service.EnvVarService, string) {
	t.Helper()

	db := newTestDB(t)
	es := service.NewEnvVarServiceWith(db, testSiteCfg(), testS3Cfg())

	ss := service.NewSiteServiceWith(db, newFakeStore(), nil, testSiteCfg(), testS3Cfg())
	created, err := ss.CreateSite(context.Background(), "alice@example.com", &types.CreateSiteRequest{
		Name: "Env " + slug,
		Slug: slug,
	})
	if err != nil {
		t.Fatalf("create site: %v", err)
	}

	return es, created.ID
}

// TestReplaceAllAndList 测试整体替换后的读取，按键名排序.
func TestReplaceAllAndList(t *testing.T) {
	es, siteID := newEnvFixture(t, "env-basic")
	ctx := context.Background()

	resp, err := es.ReplaceAll(ctx, "alice@example.com", siteID, &types.ReplaceEnvRequest{
		EnvVars: []types.EnvVarItem{
			{Key: "ZULU", Value: "z"},
			{Key: "API_URL", Value: "https://api.example.com"},
			{Key: "SECRET_TOKEN", Value: "s3cret", IsSecret: true},
		},
	})
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if !resp.Success || resp.Count != 3 {
		t.Errorf("resp = %+v, want success with count 3", resp)
	}

	list, err := es.List(ctx, "alice@example.com", siteID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(list.EnvVars) != 3 {
		t.Fatalf("len = %d, want 3", len(list.EnvVars))
	}

	wantOrder := []string{"API_URL", "SECRET_TOKEN", "ZULU"}
	for i, want := range wantOrder {
		if list.EnvVars[i].Key != want {
			t.Errorf("key[%d] = %q, want %q", i, list.EnvVars[i].Key, want)
		}
	}

	if !list.EnvVars[1].IsSecret {
		t.Error("SECRET_TOKEN should keep is_secret flag")
	}

	// is_secret 只是标记，值原样返回
	if list.EnvVars[1].Value != "s3cret" {
		t.Errorf("secret value = %q, want raw value", list.EnvVars[1].Value)
	}
}

// TestReplaceAllIsWholesale 测试替换不保留旧集合里的键.
func TestReplaceAllIsWholesale(t *testing.T) {
	es, siteID := newEnvFixture(t, "env-swap")
	ctx := context.Background()

	if _, err := es.ReplaceAll(ctx, "alice@example.com", siteID, &types.ReplaceEnvRequest{
		EnvVars: []types.EnvVarItem{{Key: "OLD", Value: "1"}, {Key: "KEEP", Value: "1"}},
	}); err != nil {
		t.Fatalf("first replace failed: %v", err)
	}

	if _, err := es.ReplaceAll(ctx, "alice@example.com", siteID, &types.ReplaceEnvRequest{
		EnvVars: []types.EnvVarItem{{Key: "KEEP", Value: "2"}},
	}); err != nil {
		t.Fatalf("second replace failed: %v", err)
	}

	list, err := es.List(ctx, "alice@example.com", siteID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(list.EnvVars) != 1 {
		t.Fatalf("len = %d, want 1", len(list.EnvVars))
	}

	if list.EnvVars[0].Key != "KEEP" || list.EnvVars[0].Value != "2" {
		t.Errorf("got %+v, want KEEP=2", list.EnvVars[0])
	}
}

// TestReplaceAllEmptyClears 测试空集合清空全部变量.
func TestReplaceAllEmptyClears(t *testing.T) {
	es, siteID := newEnvFixture(t, "env-clear")
	ctx := context.Background()

	if _, err := es.ReplaceAll(ctx, "alice@example.com", siteID, &types.ReplaceEnvRequest{
		EnvVars: []types.EnvVarItem{{Key: "A", Value: "1"}},
	}); err != nil {
		t.Fatalf("seed replace failed: %v", err)
	}

	resp, err := es.ReplaceAll(ctx, "alice@example.com", siteID, &types.ReplaceEnvRequest{})
	if err != nil {
		t.Fatalf("empty replace failed: %v", err)
	}

	if resp.Count != 0 {
		t.Errorf("count = %d, want 0", resp.Count)
	}

	list, err := es.List(ctx, "alice@example.com", siteID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(list.EnvVars) != 0 {
		t.Errorf("len = %d, want 0 after clear", len(list.EnvVars))
	}
}

// TestReplaceAllDuplicateKeyRejectedBeforeDelete 测试重复键在删除发生前拒绝，旧集合完好.
func TestReplaceAllDuplicateKeyRejectedBeforeDelete(t *testing.T) {
	es, siteID := newEnvFixture(t, "env-dup")
	ctx := context.Background()

	if _, err := es.ReplaceAll(ctx, "alice@example.com", siteID, &types.ReplaceEnvRequest{
		EnvVars: []types.EnvVarItem{{Key: "SURVIVOR", Value: "1"}},
	}); err != nil {
		t.Fatalf("seed replace failed: %v", err)
	}

	_, err := es.ReplaceAll(ctx, "alice@example.com", siteID, &types.ReplaceEnvRequest{
		EnvVars: []types.EnvVarItem{
			{Key: "DUP", Value: "a"},
			{Key: "DUP", Value: "b"},
		},
	})
	if !service.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	list, err := es.List(ctx, "alice@example.com", siteID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(list.EnvVars) != 1 || list.EnvVars[0].Key != "SURVIVOR" {
		t.Errorf("old set damaged: %+v", list.EnvVars)
	}
}

// TestReplaceAllEmptyKeyRejected 测试空键拒绝.
func TestReplaceAllEmptyKeyRejected(t *testing.T) {
	es, siteID := newEnvFixture(t, "env-blank")

	_, err := es.ReplaceAll(context.Background(), "alice@example.com", siteID, &types.ReplaceEnvRequest{
		EnvVars: []types.EnvVarItem{{Key: "", Value: "x"}},
	})
	if !service.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// TestEnvVarsOwnershipIsolation 测试其他用户既读不到也改不了.
func TestEnvVarsOwnershipIsolation(t *testing.T) {
	es, siteID := newEnvFixture(t, "env-own")
	ctx := context.Background()

	if _, err := es.List(ctx, "bob@example.com", siteID); !service.IsNotFound(err) {
		t.Fatalf("expected NotFoundError on foreign list, got %v", err)
	}

	_, err := es.ReplaceAll(ctx, "bob@example.com", siteID, &types.ReplaceEnvRequest{
		EnvVars: []types.EnvVarItem{{Key: "X", Value: "1"}},
	})
	if !service.IsNotFound(err) {
		t.Fatalf("expected NotFoundError on foreign replace, got %v", err)
	}
}

// TestListEmptyReturnsEmptySlice 测试无变量时返回空列表而非错误.
func TestListEmptyReturnsEmptySlice(t *testing.T) {
	es, siteID := newEnvFixture(t, "env-none")

	list, err := es.List(context.Background(), "alice@example.com", siteID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if list.EnvVars == nil || len(list.EnvVars) != 0 {
		t.Errorf("want empty non-nil slice, got %#v", list.EnvVars)
	}
}
