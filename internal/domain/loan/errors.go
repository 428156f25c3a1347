package loan

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "借阅记录不存在")

	// ErrNoCopiesAvailable 无可借副本
	ErrNoCopiesAvailable = apperrors.New(apperrors.ErrCodeNoCopies, "该图书暂无可借副本")

	// ErrDuplicateActiveLoan 同一会员重复借阅同一图书
	ErrDuplicateActiveLoan = apperrors.New(apperrors.ErrCodeDuplicateLoan, "该会员已借阅此图书且尚未归还")

	// ErrAlreadyReturned 已归还
	ErrAlreadyReturned = apperrors.New(apperrors.ErrCodeAlreadyReturned, "该图书已归还")

	// ErrNotActive 记录非借出状态
	ErrNotActive = apperrors.New(apperrors.ErrCodeLoanNotActive, "只有借出中的记录可以续借")

	// ErrInvalidTransition 非法状态转换
	ErrInvalidTransition = apperrors.New(apperrors.ErrCodeBusinessError, "借阅状态不允许此操作")

	// ErrInvalidStatus 非法状态过滤值
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "status取值只能是active、returned或overdue")
)
