package handle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"github.com/yeisme/sitevault/pkg/internal/service"
)

// fakeReader 内存对象读取.
type fakeReader struct {
	objects map[string]string
}

func (f *fakeReader) GetObject(_ context.Context, bucket, key string) (io.ReadCloser, minio.ObjectInfo, error) {
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, minio.ObjectInfo{}, fmt.Errorf("object %s/%s not found", bucket, key)
	}

	return io.NopCloser(bytes.NewReader([]byte(data))), minio.ObjectInfo{
		Size:        int64(len(data)),
		ContentType: "text/html",
	}, nil
}

// newServeRouter 把假存储与假站点表接到公共访问路由上.
func newServeRouter(store *fakeReader, activeSlugs ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	active := map[string]bool{}
	for _, s := range activeSlugs {
		active[s] = true
	}

	resolve := func(_ context.Context, slug string) (*cachedSite, error) {
		if !active[slug] {
			return nil, &service.NotFoundError{Resource: "site", ID: slug}
		}

		return &cachedSite{ID: "site-" + slug, Slug: slug}, nil
	}

	r := gin.New()
	r.GET("/sites/:slug/*filepath", func(c *gin.Context) {
		serveSiteContent(c, store, resolve, "sites", c.Param("slug"), c.Param("filepath"))
	})

	return r
}

func TestServeSiteFetchesObject(t *testing.T) {
	store := &fakeReader{objects: map[string]string{
		"sites/blog/index.html":    "<html>home</html>",
		"sites/blog/assets/app.js": "console.log(1)",
	}}
	r := newServeRouter(store, "blog")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sites/blog/assets/app.js", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if w.Body.String() != "console.log(1)" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestServeSiteRootServesIndex(t *testing.T) {
	store := &fakeReader{objects: map[string]string{
		"sites/blog/index.html": "<html>home</html>",
	}}
	r := newServeRouter(store, "blog")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sites/blog/", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if w.Body.String() != "<html>home</html>" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestServeSiteSPAFallback(t *testing.T) {
	store := &fakeReader{objects: map[string]string{
		"sites/blog/index.html": "<html>spa</html>",
	}}
	r := newServeRouter(store, "blog")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sites/blog/some/deep/route", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 via index fallback", w.Code)
	}

	if w.Body.String() != "<html>spa</html>" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestServeSiteMissingEverything(t *testing.T) {
	store := &fakeReader{objects: map[string]string{}}
	r := newServeRouter(store, "blog")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sites/blog/missing.css", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestServeSiteUnknownSite(t *testing.T) {
	store := &fakeReader{objects: map[string]string{
		"sites/blog/index.html": "<html></html>",
	}}
	r := newServeRouter(store) // 没有任何激活站点

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sites/blog/index.html", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for inactive site", w.Code)
	}
}

func TestObjectKeyForPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/", "blog/index.html"},
		{"", "blog/index.html"},
		{"/docs/", "blog/docs/index.html"},
		{"/assets/app.js", "blog/assets/app.js"},
	}

	for _, tc := range cases {
		if got := objectKeyForPath("blog", tc.path); got != tc.want {
			t.Errorf("objectKeyForPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestSlugifyName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"My Blog", "my-blog"},
		{"  Hello,  World!  ", "hello-world"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER_case.name", "upper-case-name"},
	}

	for _, tc := range cases {
		if got := slugifyName(tc.name); got != tc.want {
			t.Errorf("slugifyName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
