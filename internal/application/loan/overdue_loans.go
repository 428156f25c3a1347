package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/metrics"
)

// OverdueLoansUseCase 逾期查询用例（惰性扫描）
//
// 没有后台定时任务，overdue状态只在本用例被调用时落库。
// 存储的status因此只是机会性刷新的缓存：两次调用之间，
// 已过期的记录在库里仍是active。需要真值的读方应比较due_at。
type OverdueLoansUseCase struct {
	loanRepo   loan.Repository
	statsCache StatsCache
}

// NewOverdueLoansUseCase 创建逾期查询用例
func NewOverdueLoansUseCase(loanRepo loan.Repository, statsCache StatsCache) *OverdueLoansUseCase {
	return &OverdueLoansUseCase{
		loanRepo:   loanRepo,
		statsCache: statsCache,
	}
}

// Execute 扫描并返回逾期记录
// 先用一条UPDATE把过期的active批量标记为overdue，再查overdue列表。
// 重复调用幂等：首次扫描后没有新过期记录时UPDATE影响0行，
// 列表仍返回所有逾期未归还的记录，按应还时间升序。
func (uc *OverdueLoansUseCase) Execute(ctx context.Context) ([]*loan.Detail, error) {
	now := time.Now()

	marked, err := uc.loanRepo.SweepOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	if marked > 0 {
		uc.statsCache.Invalidate(ctx)
		metrics.AddCounter(metrics.OverdueSweepMarked, float64(marked))
	}

	return uc.loanRepo.FindOverdue(ctx, now)
}
