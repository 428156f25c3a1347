package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
)

// TxManager 事务管理器接口（消费方定义，便于Mock）
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DeleteBookUseCase 图书删除用例
// 删除守卫与会员侧对称：存在未归还借阅时拒绝删除。
// 守卫跨图书/借阅两个聚合，因此放在应用层而非领域服务
type DeleteBookUseCase struct {
	bookRepo  book.Repository
	loanRepo  loan.Repository
	txManager TxManager
}

// NewDeleteBookUseCase 创建图书删除用例
func NewDeleteBookUseCase(bookRepo book.Repository, loanRepo loan.Repository, txManager TxManager) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookRepo:  bookRepo,
		loanRepo:  loanRepo,
		txManager: txManager,
	}
}

// Execute 执行删除
// 图书行锁挡住并发借出：借出用例同样先锁图书行，
// 二者在这一行上串行，守卫检查后不会再有新借出插入
func (uc *DeleteBookUseCase) Execute(ctx context.Context, bookID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.bookRepo.LockByID(txCtx, bookID); err != nil {
			return err
		}

		activeCount, err := uc.loanRepo.CountActiveByBook(txCtx, bookID)
		if err != nil {
			return err
		}
		if activeCount > 0 {
			return book.ErrHasActiveLoans
		}

		return uc.bookRepo.Delete(txCtx, bookID)
	})
}
