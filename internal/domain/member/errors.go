package member

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 会员领域错误定义
var (
	// ErrMemberNotFound 会员不存在
	ErrMemberNotFound = apperrors.New(apperrors.ErrCodeMemberNotFound, "会员不存在")

	// ErrEmailDuplicate 邮箱已存在
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "该邮箱已被注册")

	// ErrMissingFields 必填字段缺失
	ErrMissingFields = apperrors.New(apperrors.ErrCodeInvalidParams, "name、email为必填字段")

	// ErrMissingQuery 搜索关键词缺失
	ErrMissingQuery = apperrors.New(apperrors.ErrCodeInvalidParams, "搜索关键词不能为空")

	// ErrHasActiveLoans 存在未归还的借阅
	ErrHasActiveLoans = apperrors.New(apperrors.ErrCodeHasActiveLoans, "该会员存在未归还的借阅，请先归还全部图书")
)
