package ingest_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/yeisme/sitevault/pkg/internal/ingest"
)

// buildZip 构造内存 zip 供测试使用.
func buildZip(t *testing.T, entries map[string]string) *zip.Reader {
	t.Helper()

	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)

	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}

		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}

	return zr
}

// TestSanitizePath 测试路径校验规则.
func TestSanitizePath(t *testing.T) {
	cases := []struct {
		path string
		ok   bool
	}{
		{"index.html", true},
		{"assets/app.js", true},
		{"deep/nested/dir/file.css", true},
		{"", false},
		{"/etc/passwd", false},
		{"../escape.html", false},
		{"dir/../escape.html", false},
		{"dir/./file.html", false},
		{"dir//file.html", false},
		{"dir\\file.html", false},
	}

	for _, c := range cases {
		_, err := ingest.SanitizePath(c.path)
		if c.ok && err != nil {
			t.Errorf("path %q: expected valid, got %v", c.path, err)
		}

		if !c.ok && err == nil {
			t.Errorf("path %q: expected error, got nil", c.path)
		}

		if !c.ok {
			var bad *ingest.BadPathError
			if err != nil && !errors.As(err, &bad) {
				t.Errorf("path %q: expected BadPathError, got %T", c.path, err)
			}
		}
	}
}

// TestContentTypeFor 测试内容类型推断与回退.
func TestContentTypeFor(t *testing.T) {
	if ct := ingest.ContentTypeFor("app.js"); !strings.Contains(ct, "javascript") {
		t.Errorf("js content type = %q", ct)
	}

	if ct := ingest.ContentTypeFor("index.html"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("html content type = %q", ct)
	}

	if ct := ingest.ContentTypeFor("binaryblob"); ct != "application/octet-stream" {
		t.Errorf("fallback content type = %q", ct)
	}
}

// TestStageZipHappyPath 测试 zip 解包规范化.
func TestStageZipHappyPath(t *testing.T) {
	zr := buildZip(t, map[string]string{
		"index.html":    "<html></html>",
		"assets/app.js": "console.log(1)",
	})

	bundle, err := ingest.StageZip(zr, t.TempDir()+"/stage", ingest.Limits{
		MaxFileSizeBytes: 1024,
		MaxFileCount:     10,
	})
	if err != nil {
		t.Fatalf("StageZip failed: %v", err)
	}

	if len(bundle.Files) != 2 {
		t.Fatalf("got %d files, want 2", len(bundle.Files))
	}

	// 路径有序
	if bundle.Files[0].RelativePath != "assets/app.js" || bundle.Files[1].RelativePath != "index.html" {
		t.Errorf("files not sorted: %+v", bundle.Files)
	}

	if bundle.Fingerprint == "" {
		t.Error("expected non-empty fingerprint")
	}

	if bundle.TotalBytes != int64(len("<html></html>")+len("console.log(1)")) {
		t.Errorf("total bytes = %d", bundle.TotalBytes)
	}
}

// TestStageZipRejectsTraversal 测试 zip 内路径穿越被拒绝.
func TestStageZipRejectsTraversal(t *testing.T) {
	zr := buildZip(t, map[string]string{
		"../evil.html": "x",
	})

	_, err := ingest.StageZip(zr, t.TempDir()+"/stage", ingest.Limits{MaxFileCount: 10})

	var bad *ingest.BadPathError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadPathError, got %v", err)
	}
}

// TestStageZipTooManyFiles 测试数量超限整批拒绝.
func TestStageZipTooManyFiles(t *testing.T) {
	zr := buildZip(t, map[string]string{
		"a.html": "a",
		"b.html": "b",
		"c.html": "c",
	})

	_, err := ingest.StageZip(zr, t.TempDir()+"/stage", ingest.Limits{MaxFileCount: 2})
	if !errors.Is(err, ingest.ErrTooManyFiles) {
		t.Fatalf("expected ErrTooManyFiles, got %v", err)
	}
}

// TestStagerSkipsOversized 测试单文件超限被跳过，批次继续.
func TestStagerSkipsOversized(t *testing.T) {
	stager, err := ingest.NewStager(t.TempDir()+"/stage", ingest.Limits{
		MaxFileSizeBytes: 4,
		MaxFileCount:     10,
	})
	if err != nil {
		t.Fatalf("NewStager: %v", err)
	}

	if err := stager.Add("big.bin", strings.NewReader("too large content")); err != nil {
		t.Fatalf("Add big: %v", err)
	}

	if err := stager.Add("ok.txt", strings.NewReader("ok")); err != nil {
		t.Fatalf("Add ok: %v", err)
	}

	bundle, err := stager.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if len(bundle.Files) != 1 || bundle.Files[0].RelativePath != "ok.txt" {
		t.Errorf("files = %+v, want only ok.txt", bundle.Files)
	}

	if len(bundle.Skipped) != 1 || bundle.Skipped[0].Path != "big.bin" {
		t.Errorf("skipped = %+v, want big.bin", bundle.Skipped)
	}
}

// TestStagerEmptyAfterSkip 测试全部被跳过时报空上传.
func TestStagerEmptyAfterSkip(t *testing.T) {
	stager, err := ingest.NewStager(t.TempDir()+"/stage", ingest.Limits{
		MaxFileSizeBytes: 1,
		MaxFileCount:     10,
	})
	if err != nil {
		t.Fatalf("NewStager: %v", err)
	}

	if err := stager.Add("big.bin", strings.NewReader("xx")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if _, err := stager.Finalize(); !errors.Is(err, ingest.ErrEmptyUpload) {
		t.Fatalf("expected ErrEmptyUpload, got %v", err)
	}
}

// TestLoadStagedRoundTrip 测试部署请求可从暂存目录重建清单.
func TestLoadStagedRoundTrip(t *testing.T) {
	dir := t.TempDir() + "/stage"

	stager, err := ingest.NewStager(dir, ingest.Limits{MaxFileCount: 10})
	if err != nil {
		t.Fatalf("NewStager: %v", err)
	}

	_ = stager.Add("index.html", strings.NewReader("<html></html>"))
	_ = stager.Add("assets/app.js", strings.NewReader("js"))

	staged, err := stager.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	loaded, err := ingest.LoadStaged(dir)
	if err != nil {
		t.Fatalf("LoadStaged: %v", err)
	}

	if len(loaded.Files) != len(staged.Files) {
		t.Fatalf("loaded %d files, staged %d", len(loaded.Files), len(staged.Files))
	}

	if loaded.Fingerprint != staged.Fingerprint {
		t.Errorf("fingerprint mismatch: %s vs %s", loaded.Fingerprint, staged.Fingerprint)
	}
}

// TestLoadStagedMissingDir 测试缺失暂存目录按空上传处理.
func TestLoadStagedMissingDir(t *testing.T) {
	_, err := ingest.LoadStaged(t.TempDir() + "/nope")
	if !errors.Is(err, ingest.ErrEmptyUpload) {
		t.Fatalf("expected ErrEmptyUpload, got %v", err)
	}
}
