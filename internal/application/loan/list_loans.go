package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
)

// ListLoansUseCase 借阅列表/详情查询用例
type ListLoansUseCase struct {
	loanRepo loan.Repository
}

// NewListLoansUseCase 创建列表查询用例
func NewListLoansUseCase(loanRepo loan.Repository) *ListLoansUseCase {
	return &ListLoansUseCase{loanRepo: loanRepo}
}

// Execute 查询借阅列表
// statusFilter为空串时不过滤；非法状态值返回参数错误
func (uc *ListLoansUseCase) Execute(ctx context.Context, statusFilter string) ([]*loan.Detail, error) {
	var status *loan.Status
	if statusFilter != "" {
		s := loan.Status(statusFilter)
		if !s.Valid() {
			return nil, loan.ErrInvalidStatus
		}
		status = &s
	}

	return uc.loanRepo.FindAll(ctx, status)
}

// Get 查询单条借阅记录（附带会员/图书摘要）
func (uc *ListLoansUseCase) Get(ctx context.Context, loanID uint) (*loan.Detail, error) {
	return uc.loanRepo.FindDetailByID(ctx, loanID)
}
