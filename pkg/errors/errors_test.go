package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAppError_HTTPStatus 测试错误码到HTTP状态码的映射
func TestAppError_HTTPStatus(t *testing.T) {
	cases := []struct {
		name   string
		code   int
		status int
	}{
		{"业务冲突映射400", ErrCodeNoCopies, http.StatusBadRequest},
		{"参数错误映射400", ErrCodeInvalidParams, http.StatusBadRequest},
		{"未认证映射401", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"Token过期映射401", ErrCodeTokenExpired, http.StatusUnauthorized},
		{"资源不存在映射404", ErrCodeBookNotFound, http.StatusNotFound},
		{"通用404", ErrCodeNotFound, http.StatusNotFound},
		{"内部错误映射500", ErrCodeInternal, http.StatusInternalServerError},
		{"数据库错误映射500", ErrCodeDatabaseError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, New(tc.code, "x").HTTPStatus())
		})
	}
}

// TestAppError_Unwrap 测试错误链
func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	wrapped := Wrap(inner, "数据库错误")

	assert.ErrorIs(t, wrapped, inner)
	assert.Equal(t, ErrCodeInternal, wrapped.Code)
}

// TestAppError_Error 测试错误文本
func TestAppError_Error(t *testing.T) {
	plain := New(ErrCodeBookNotFound, "图书不存在")
	assert.Equal(t, "[40401] 图书不存在", plain.Error())

	wrapped := Wrap(errors.New("timeout"), "系统内部错误")
	assert.Contains(t, wrapped.Error(), "timeout")
}

// TestGetAppError 测试错误提取
func TestGetAppError(t *testing.T) {
	t.Run("AppError原样返回", func(t *testing.T) {
		appErr := New(ErrCodeNoCopies, "无可借副本")
		assert.Same(t, appErr, GetAppError(appErr))
	})

	t.Run("包装过的AppError也能提取", func(t *testing.T) {
		appErr := New(ErrCodeNoCopies, "无可借副本")
		wrapped := fmt.Errorf("执行借出: %w", appErr)
		assert.Same(t, appErr, GetAppError(wrapped))
	})

	t.Run("普通错误转为内部错误", func(t *testing.T) {
		got := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.NotContains(t, got.Message, "boom", "内部细节不外泄")
	})
}

// TestIsAppError 测试类型判断
func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(New(ErrCodeInternal, "x")))
	assert.False(t, IsAppError(errors.New("plain")))
}
