package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// TestManager_GenerateAndParse 测试签发与解析往返
func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour)

	token, err := m.GenerateAdminToken()
	require.NoError(t, err)

	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, int64(7200), token.ExpiresIn)

	claims, err := m.ParseToken(token.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "library", claims.Issuer)
	assert.Equal(t, "admin", claims.Subject)
}

// TestManager_ParseToken_Invalid 测试非法令牌
func TestManager_ParseToken_Invalid(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	t.Run("乱码令牌", func(t *testing.T) {
		_, err := m.ParseToken("not-a-jwt")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("密钥不匹配", func(t *testing.T) {
		other := NewManager("other-secret", time.Hour)
		token, err := other.GenerateAdminToken()
		require.NoError(t, err)

		_, err = m.ParseToken(token.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("过期令牌", func(t *testing.T) {
		expired := NewManager("test-secret", -time.Minute)
		token, err := expired.GenerateAdminToken()
		require.NoError(t, err)

		_, err = m.ParseToken(token.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})
}
