package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
)

// LoanStatsUseCase 借阅统计用例
type LoanStatsUseCase struct {
	loanRepo   loan.Repository
	statsCache StatsCache
}

// NewLoanStatsUseCase 创建统计用例
func NewLoanStatsUseCase(loanRepo loan.Repository, statsCache StatsCache) *LoanStatsUseCase {
	return &LoanStatsUseCase{
		loanRepo:   loanRepo,
		statsCache: statsCache,
	}
}

// Execute 查询借阅统计
// 四个计数来自一条聚合查询，是单次一致性读的快照；
// 缓存命中时返回至多TTL之前的快照，账本写入会主动失效缓存
func (uc *LoanStatsUseCase) Execute(ctx context.Context) (*loan.Stats, error) {
	if cached, err := uc.statsCache.Get(ctx); err == nil && cached != nil {
		return cached, nil
	}

	stats, err := uc.loanRepo.GetStats(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	uc.statsCache.Set(ctx, stats)
	return stats, nil
}
