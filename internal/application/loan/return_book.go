package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/metrics"
)

// ReturnBookUseCase 归还用例
type ReturnBookUseCase struct {
	loanRepo   loan.Repository
	txManager  TxManager
	statsCache StatsCache
}

// NewReturnBookUseCase 创建归还用例
func NewReturnBookUseCase(loanRepo loan.Repository, txManager TxManager, statsCache StatsCache) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		loanRepo:   loanRepo,
		txManager:  txManager,
		statsCache: statsCache,
	}
}

// Execute 执行归还
// 记录行锁防止并发重复归还；已归还的记录返回冲突错误
func (uc *ReturnBookUseCase) Execute(ctx context.Context, loanID uint) (*loan.Detail, error) {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		l, err := uc.loanRepo.LockByID(txCtx, loanID)
		if err != nil {
			return err
		}

		if err := l.Return(time.Now()); err != nil {
			return err
		}

		return uc.loanRepo.Update(txCtx, l)
	})
	if err != nil {
		return nil, err
	}

	uc.statsCache.Invalidate(ctx)
	metrics.IncCounter(metrics.LoansReturnedTotal)

	return uc.loanRepo.FindDetailByID(ctx, loanID)
}
