package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/response"
)

// AdminAuth 管理操作鉴权中间件
// 未配置admin_secret_hash时鉴权关闭，所有请求直接放行
type AdminAuth struct {
	jwtManager *jwt.Manager
	enabled    bool
}

// NewAdminAuth 创建管理鉴权中间件
func NewAdminAuth(jwtManager *jwt.Manager, enabled bool) *AdminAuth {
	return &AdminAuth{jwtManager: jwtManager, enabled: enabled}
}

// Enabled 鉴权是否生效
func (a *AdminAuth) Enabled() bool {
	return a.enabled
}

// RequireAdmin 校验Bearer令牌并要求admin角色
func (a *AdminAuth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.enabled {
			c.Next()
			return
		}

		token := extractBearerToken(c)
		if token == "" {
			response.Error(c, apperrors.New(apperrors.ErrCodeUnauthorized, "缺少认证令牌"))
			c.Abort()
			return
		}

		claims, err := a.jwtManager.ParseToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if claims.Role != "admin" {
			response.Error(c, apperrors.New(apperrors.ErrCodeUnauthorized, "权限不足"))
			c.Abort()
			return
		}

		c.Set("role", claims.Role)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
