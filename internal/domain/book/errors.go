package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrMissingFields 必填字段缺失
	ErrMissingFields = apperrors.New(apperrors.ErrCodeInvalidParams, "isbn、title、author为必填字段")

	// ErrInvalidCopies 副本数不合法
	ErrInvalidCopies = apperrors.New(apperrors.ErrCodeInvalidParams, "副本数不能为负数")

	// ErrMissingQuery 搜索关键词缺失
	ErrMissingQuery = apperrors.New(apperrors.ErrCodeInvalidParams, "搜索关键词不能为空")

	// ErrHasActiveLoans 存在未归还的借阅
	ErrHasActiveLoans = apperrors.New(apperrors.ErrCodeHasActiveLoans, "该图书存在未归还的借阅，不能删除")
)
