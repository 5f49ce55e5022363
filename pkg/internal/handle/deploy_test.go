package handle

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// TestDeploySiteRejectsMalformedID 测试非 UUID 的站点 ID 在触碰暂存目录前被拒绝.
func TestDeploySiteRejectsMalformedID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, id := range []string{"..", "../../etc", "not-a-uuid", "%2e%2e"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/sites/x/deploy", nil)
		c.Params = gin.Params{{Key: "id", Value: id}}

		DeploySite(c)

		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: status = %d, want 400", id, w.Code)
		}
	}
}
