package loan

import (
	"context"
	"time"
)

// Repository 借阅账本仓储接口（依赖倒置）
// 所有读写都尊重context中传递的事务DB
type Repository interface {
	// Create 写入借阅记录
	Create(ctx context.Context, loan *Loan) error

	// FindByID 根据ID查找借阅记录
	FindByID(ctx context.Context, id uint) (*Loan, error)

	// FindDetailByID 根据ID查找并附带会员/图书摘要
	FindDetailByID(ctx context.Context, id uint) (*Detail, error)

	// LockByID 悲观锁查询借阅记录（SELECT FOR UPDATE）
	// 归还/续借在事务内以此为记录的串行化点
	LockByID(ctx context.Context, id uint) (*Loan, error)

	// FindAll 查询借阅记录，status为nil时不过滤，按loaned_at降序
	FindAll(ctx context.Context, status *Status) ([]*Detail, error)

	// FindByMember 查询某会员的借阅记录，activeOnly只看未归还的，按loaned_at降序
	FindByMember(ctx context.Context, memberID uint, activeOnly bool) ([]*Detail, error)

	// Update 更新借阅记录
	Update(ctx context.Context, loan *Loan) error

	// Delete 硬删除借阅记录（管理操作，绕过状态规则）
	Delete(ctx context.Context, id uint) error

	// CountActiveByBook 统计某图书当前借出数（按未归还口径，含已标记overdue的记录）
	// 副本可用性判断依赖此计数，必须在持有图书行锁的事务内调用
	CountActiveByBook(ctx context.Context, bookID uint) (int64, error)

	// CountActiveByMember 统计某会员当前借出数（未归还口径，删除守卫用）
	CountActiveByMember(ctx context.Context, memberID uint) (int64, error)

	// HasActiveLoan 会员是否已借出该图书且未归还
	HasActiveLoan(ctx context.Context, memberID, bookID uint) (bool, error)

	// SweepOverdue 过期扫描：把所有已过应还时间的active记录标记为overdue
	// 单条UPDATE原子完成，返回被标记的行数
	SweepOverdue(ctx context.Context, now time.Time) (int64, error)

	// FindOverdue 查询逾期未归还的记录，按due_at升序
	// 需在SweepOverdue之后调用，结果只含status=overdue的行
	FindOverdue(ctx context.Context, now time.Time) ([]*Detail, error)

	// GetStats 单次聚合查询得到一致性快照统计
	// overdue口径：已标记overdue + 已过期但尚未扫描的active
	GetStats(ctx context.Context, now time.Time) (*Stats, error)
}
