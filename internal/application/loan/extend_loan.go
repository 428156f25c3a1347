package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
)

// ExtendLoanUseCase 续借用例
type ExtendLoanUseCase struct {
	loanRepo   loan.Repository
	txManager  TxManager
	statsCache StatsCache
}

// NewExtendLoanUseCase 创建续借用例
func NewExtendLoanUseCase(loanRepo loan.Repository, txManager TxManager, statsCache StatsCache) *ExtendLoanUseCase {
	return &ExtendLoanUseCase{
		loanRepo:   loanRepo,
		txManager:  txManager,
		statsCache: statsCache,
	}
}

// ExtendLoanResult 续借结果（附带实际续借天数，响应提示用）
type ExtendLoanResult struct {
	Detail *loan.Detail
	Days   int
}

// Execute 执行续借
// days<=0时取默认7天；只有active状态可以续借
func (uc *ExtendLoanUseCase) Execute(ctx context.Context, loanID uint, days int) (*ExtendLoanResult, error) {
	if days <= 0 {
		days = loan.DefaultExtensionDays
	}

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		l, err := uc.loanRepo.LockByID(txCtx, loanID)
		if err != nil {
			return err
		}

		if err := l.Extend(days); err != nil {
			return err
		}

		return uc.loanRepo.Update(txCtx, l)
	})
	if err != nil {
		return nil, err
	}

	// 应还时间变化影响overdue统计口径
	uc.statsCache.Invalidate(ctx)

	detail, err := uc.loanRepo.FindDetailByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	return &ExtendLoanResult{Detail: detail, Days: days}, nil
}
