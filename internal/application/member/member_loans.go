package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
)

// MemberLoansUseCase 会员借阅查询用例
// 会员不存在时返回404，与直接查空列表区分开
type MemberLoansUseCase struct {
	memberRepo member.Repository
	loanRepo   loan.Repository
}

// NewMemberLoansUseCase 创建会员借阅查询用例
func NewMemberLoansUseCase(memberRepo member.Repository, loanRepo loan.Repository) *MemberLoansUseCase {
	return &MemberLoansUseCase{
		memberRepo: memberRepo,
		loanRepo:   loanRepo,
	}
}

// Execute 查询会员的借阅记录
// activeOnly为true时只返回借出中的记录
func (uc *MemberLoansUseCase) Execute(ctx context.Context, memberID uint, activeOnly bool) ([]*loan.Detail, error) {
	if _, err := uc.memberRepo.FindByID(ctx, memberID); err != nil {
		return nil, err
	}

	return uc.loanRepo.FindByMember(ctx, memberID, activeOnly)
}
