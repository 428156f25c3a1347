package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
)

// DeleteLoanUseCase 硬删除用例（管理操作）
// 绕过状态机直接删除账本条目，用于数据清理，
// 路由层可按配置要求管理员令牌
type DeleteLoanUseCase struct {
	loanRepo   loan.Repository
	statsCache StatsCache
}

// NewDeleteLoanUseCase 创建硬删除用例
func NewDeleteLoanUseCase(loanRepo loan.Repository, statsCache StatsCache) *DeleteLoanUseCase {
	return &DeleteLoanUseCase{
		loanRepo:   loanRepo,
		statsCache: statsCache,
	}
}

// Execute 执行硬删除
func (uc *DeleteLoanUseCase) Execute(ctx context.Context, loanID uint) error {
	if err := uc.loanRepo.Delete(ctx, loanID); err != nil {
		return err
	}

	uc.statsCache.Invalidate(ctx)
	return nil
}
