package handler

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/response"
)

// AuthHandler 管理令牌签发处理器
// 仅在配置了admin_secret_hash时注册路由
type AuthHandler struct {
	jwtManager      *jwt.Manager
	adminSecretHash string
}

// NewAuthHandler 创建令牌处理器
func NewAuthHandler(jwtManager *jwt.Manager, adminSecretHash string) *AuthHandler {
	return &AuthHandler{
		jwtManager:      jwtManager,
		adminSecretHash: adminSecretHash,
	}
}

// IssueToken 校验管理口令后签发admin令牌
// @Summary      签发管理令牌
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.TokenRequest true "管理口令"
// @Success      200 {object} response.Response{data=dto.TokenResponse}
// @Failure      401 {object} response.Response "口令错误"
// @Router       /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.adminSecretHash), []byte(req.Secret)); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeUnauthorized, "管理口令错误"))
		return
	}

	token, err := h.jwtManager.GenerateAdminToken()
	if err != nil {
		response.Error(c, apperrors.Wrap(err, "令牌签发失败"))
		return
	}

	response.Success(c, &dto.TokenResponse{
		AccessToken: token.AccessToken,
		ExpiresIn:   token.ExpiresIn,
	})
}
