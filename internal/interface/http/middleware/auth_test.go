package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardedRouter(auth *AdminAuth) *gin.Engine {
	r := gin.New()
	r.DELETE("/loans/:id", auth.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func doDelete(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/loans/1", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestAdminAuth_Disabled 未配置口令时鉴权关闭
func TestAdminAuth_Disabled(t *testing.T) {
	auth := NewAdminAuth(jwt.NewManager("secret", time.Hour), false)
	r := newGuardedRouter(auth)

	w := doDelete(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestAdminAuth_RequireAdmin 启用鉴权后的令牌校验
func TestAdminAuth_RequireAdmin(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour)
	auth := NewAdminAuth(manager, true)
	r := newGuardedRouter(auth)

	t.Run("缺少令牌返回401", func(t *testing.T) {
		w := doDelete(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("格式错误的Authorization头返回401", func(t *testing.T) {
		w := doDelete(r, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("伪造令牌返回401", func(t *testing.T) {
		other := jwt.NewManager("other-secret", time.Hour)
		token, err := other.GenerateAdminToken()
		require.NoError(t, err)

		w := doDelete(r, "Bearer "+token.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("过期令牌返回401", func(t *testing.T) {
		expired := jwt.NewManager("secret", -time.Minute)
		token, err := expired.GenerateAdminToken()
		require.NoError(t, err)

		w := doDelete(r, "Bearer "+token.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("合法管理令牌放行", func(t *testing.T) {
		token, err := manager.GenerateAdminToken()
		require.NoError(t, err)

		w := doDelete(r, "Bearer "+token.AccessToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
