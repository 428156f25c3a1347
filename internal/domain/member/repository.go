package member

import (
	"context"
)

// Repository 会员仓储接口（依赖倒置）
type Repository interface {
	// Create 创建会员
	Create(ctx context.Context, member *Member) error

	// FindByID 根据ID查找会员
	FindByID(ctx context.Context, id uint) (*Member, error)

	// FindByEmail 根据邮箱查找会员（入参需已规范化）
	FindByEmail(ctx context.Context, email string) (*Member, error)

	// FindAll 查询全部会员，按joined_at降序
	FindAll(ctx context.Context) ([]*Member, error)

	// Search 关键词搜索（name/email子串匹配，不区分大小写）
	Search(ctx context.Context, query string) ([]*Member, error)

	// Update 更新会员信息
	Update(ctx context.Context, member *Member) error

	// Delete 删除会员
	Delete(ctx context.Context, id uint) error

	// LockByID 悲观锁查询会员（SELECT FOR UPDATE）
	// 借出与删除在事务内以此为会员的串行化点
	LockByID(ctx context.Context, id uint) (*Member, error)
}
