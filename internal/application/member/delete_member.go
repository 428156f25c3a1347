package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
)

// TxManager 事务管理器接口（消费方定义，便于Mock）
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DeleteMemberUseCase 会员删除用例
// 存在未归还借阅时拒绝删除；守卫跨会员/借阅两个聚合
type DeleteMemberUseCase struct {
	memberRepo member.Repository
	loanRepo   loan.Repository
	txManager  TxManager
}

// NewDeleteMemberUseCase 创建会员删除用例
func NewDeleteMemberUseCase(memberRepo member.Repository, loanRepo loan.Repository, txManager TxManager) *DeleteMemberUseCase {
	return &DeleteMemberUseCase{
		memberRepo: memberRepo,
		loanRepo:   loanRepo,
		txManager:  txManager,
	}
}

// Execute 执行删除
// 会员行锁与借出用例的会员行锁互斥，守卫检查后不会再有新借出插入
func (uc *DeleteMemberUseCase) Execute(ctx context.Context, memberID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.memberRepo.LockByID(txCtx, memberID); err != nil {
			return err
		}

		activeCount, err := uc.loanRepo.CountActiveByMember(txCtx, memberID)
		if err != nil {
			return err
		}
		if activeCount > 0 {
			return member.ErrHasActiveLoans
		}

		return uc.memberRepo.Delete(txCtx, memberID)
	})
}
