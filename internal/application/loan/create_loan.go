package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/pkg/metrics"
)

// TxManager 事务管理器接口（消费方定义，便于Mock）
// 生产实现是mysql.TxManager
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// StatsCache 统计缓存接口
// 生产实现是redis.StatsCache；缓存只加速GetStats，不是真值
type StatsCache interface {
	Get(ctx context.Context) (*loan.Stats, error)
	Set(ctx context.Context, stats *loan.Stats)
	Invalidate(ctx context.Context)
}

// CreateLoanUseCase 借出用例
// 账本的核心写路径：可用性检查与写入必须原子
type CreateLoanUseCase struct {
	loanRepo   loan.Repository
	memberRepo member.Repository
	bookRepo   book.Repository
	txManager  TxManager
	statsCache StatsCache
}

// NewCreateLoanUseCase 创建借出用例
func NewCreateLoanUseCase(
	loanRepo loan.Repository,
	memberRepo member.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	statsCache StatsCache,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		loanRepo:   loanRepo,
		memberRepo: memberRepo,
		bookRepo:   bookRepo,
		txManager:  txManager,
		statsCache: statsCache,
	}
}

// CreateLoanRequest 借出请求
type CreateLoanRequest struct {
	MemberID uint
	BookID   uint
	DueAt    *time.Time // 为nil时默认借出时间+14天
}

// Execute 执行借出
//
// 并发控制：检查和写入之间不允许其他借出插队，否则最后一册副本
// 会被借出两次。整个流程在一个事务内，按会员→图书的固定顺序
// SELECT FOR UPDATE，图书行锁即该图书借出的串行化点：
//  1. 锁定会员行（存在性检查）
//  2. 锁定图书行
//  3. 统计该图书当前借出数，>=副本数则拒绝
//  4. 检查该会员是否已借此书未还
//  5. 写入active记录，COMMIT释放锁
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req CreateLoanRequest) (*loan.Detail, error) {
	var created *loan.Loan

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定顺序固定为会员→图书，防止死锁
		if _, err := uc.memberRepo.LockByID(txCtx, req.MemberID); err != nil {
			return err
		}

		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		activeCount, err := uc.loanRepo.CountActiveByBook(txCtx, req.BookID)
		if err != nil {
			return err
		}
		if activeCount >= int64(b.Copies) {
			metrics.IncCounterVec(metrics.LoansRejectedTotal, "no_copies")
			return loan.ErrNoCopiesAvailable
		}

		exists, err := uc.loanRepo.HasActiveLoan(txCtx, req.MemberID, req.BookID)
		if err != nil {
			return err
		}
		if exists {
			metrics.IncCounterVec(metrics.LoansRejectedTotal, "duplicate_loan")
			return loan.ErrDuplicateActiveLoan
		}

		created = loan.NewLoan(req.MemberID, req.BookID, req.DueAt)
		return uc.loanRepo.Create(txCtx, created)
	})
	if err != nil {
		return nil, err
	}

	uc.statsCache.Invalidate(ctx)
	metrics.IncCounter(metrics.LoansCreatedTotal)

	// 富化读在事务外执行，仅用于展示
	return uc.loanRepo.FindDetailByID(ctx, created.ID)
}
