package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// loanRepository 借阅账本仓储实现（MySQL）
// 设计说明：
// 1. 读侧富化用Preload加载会员/图书摘要，避免N+1
// 2. 过期扫描是单条UPDATE，不逐行读改写
// 3. 统计用一条GROUP BY聚合，保证单次一致性读
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Create 写入借阅记录
func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := &LoanModel{
		MemberID:   l.MemberID,
		BookID:     l.BookID,
		LoanedAt:   l.LoanedAt,
		DueAt:      l.DueAt,
		ReturnedAt: l.ReturnedAt,
		Status:     string(l.Status),
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找借阅记录
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toLoanEntity(&model), nil
}

// FindDetailByID 根据ID查找并附带会员/图书摘要
func (r *loanRepository) FindDetailByID(ctx context.Context, id uint) (*loan.Detail, error) {
	var model LoanModel
	err := getDB(ctx, r.db).
		Preload("Member").
		Preload("Book").
		First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toLoanDetail(&model), nil
}

// LockByID 悲观锁查询借阅记录
// SELECT FOR UPDATE锁定行，必须在事务内调用
func (r *loanRepository) LockByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "锁定借阅记录失败")
	}

	return toLoanEntity(&model), nil
}

// FindAll 查询借阅记录，按借出时间降序
func (r *loanRepository) FindAll(ctx context.Context, status *loan.Status) ([]*loan.Detail, error) {
	query := getDB(ctx, r.db).
		Preload("Member").
		Preload("Book").
		Order("loaned_at DESC")

	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var models []LoanModel
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询借阅列表失败")
	}
	return toLoanDetails(models), nil
}

// FindByMember 查询某会员的借阅记录
func (r *loanRepository) FindByMember(ctx context.Context, memberID uint, activeOnly bool) ([]*loan.Detail, error) {
	query := getDB(ctx, r.db).
		Preload("Member").
		Preload("Book").
		Where("member_id = ?", memberID).
		Order("loaned_at DESC")

	if activeOnly {
		// 未归还口径：扫描把active改成overdue，但书仍在会员手里
		query = query.Where("returned_at IS NULL")
	}

	var models []LoanModel
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询会员借阅记录失败")
	}
	return toLoanDetails(models), nil
}

// Update 更新借阅记录
func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	model := &LoanModel{
		ID:         l.ID,
		MemberID:   l.MemberID,
		BookID:     l.BookID,
		LoanedAt:   l.LoanedAt,
		DueAt:      l.DueAt,
		ReturnedAt: l.ReturnedAt,
		Status:     string(l.Status),
		CreatedAt:  l.CreatedAt,
	}

	// Save不会写入零值关联，Omit关联字段防止误级联
	if err := getDB(ctx, r.db).Omit("Member", "Book").Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新借阅记录失败")
	}

	l.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 硬删除借阅记录
func (r *loanRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&LoanModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除借阅记录失败")
	}
	if result.RowsAffected == 0 {
		return loan.ErrLoanNotFound
	}

	return nil
}

// CountActiveByBook 统计某图书当前借出数
// 按returned_at判断而非status：逾期未归还的副本同样不可借。
// 调用方需持有图书行锁，否则计数与写入之间存在竞态
func (r *loanRepository) CountActiveByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).
		Model(&LoanModel{}).
		Where("book_id = ? AND returned_at IS NULL", bookID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计借出数失败")
	}
	return count, nil
}

// CountActiveByMember 统计某会员当前借出数
func (r *loanRepository) CountActiveByMember(ctx context.Context, memberID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).
		Model(&LoanModel{}).
		Where("member_id = ? AND returned_at IS NULL", memberID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计会员借出数失败")
	}
	return count, nil
}

// HasActiveLoan 会员是否已借出该图书且未归还
func (r *loanRepository) HasActiveLoan(ctx context.Context, memberID, bookID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).
		Model(&LoanModel{}).
		Where("member_id = ? AND book_id = ? AND returned_at IS NULL", memberID, bookID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询重复借阅失败")
	}
	return count > 0, nil
}

// SweepOverdue 过期扫描
// UPDATE loans SET status='overdue' WHERE status='active' AND due_at < now
func (r *loanRepository) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := getDB(ctx, r.db).
		Model(&LoanModel{}).
		Where("status = ? AND due_at < ?", string(loan.StatusActive), now).
		Updates(map[string]interface{}{
			"status":     string(loan.StatusOverdue),
			"updated_at": now,
		})

	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "过期扫描失败")
	}
	return result.RowsAffected, nil
}

// FindOverdue 查询逾期未归还的记录，按应还时间升序
func (r *loanRepository) FindOverdue(ctx context.Context, now time.Time) ([]*loan.Detail, error) {
	var models []LoanModel
	err := getDB(ctx, r.db).
		Preload("Member").
		Preload("Book").
		Where("status = ? AND due_at < ?", string(loan.StatusOverdue), now).
		Order("due_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询逾期记录失败")
	}
	return toLoanDetails(models), nil
}

// statsRow GetStats的扫描行
type statsRow struct {
	Status  string
	Cnt     int64
	PastDue int64
}

// GetStats 单次聚合查询得到一致性快照统计
// 一条GROUP BY同时取各状态条数与其中已过期的条数，
// overdue口径 = 已标记overdue + 已过期但尚未扫描的active
func (r *loanRepository) GetStats(ctx context.Context, now time.Time) (*loan.Stats, error) {
	var rows []statsRow
	err := getDB(ctx, r.db).
		Model(&LoanModel{}).
		Select("status, COUNT(*) AS cnt, SUM(CASE WHEN returned_at IS NULL AND due_at < ? THEN 1 ELSE 0 END) AS past_due", now).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询借阅统计失败")
	}

	return statsFromRows(rows), nil
}

// statsFromRows 聚合行 → 统计快照
// 四个桶互斥：已过期未扫描的active行计入overdue的同时从active扣除，
// 保证total = active + returned + overdue恒成立
func statsFromRows(rows []statsRow) *loan.Stats {
	stats := &loan.Stats{}
	for _, row := range rows {
		stats.Total += row.Cnt
		switch loan.Status(row.Status) {
		case loan.StatusActive:
			stats.Active += row.Cnt - row.PastDue
			stats.Overdue += row.PastDue
		case loan.StatusReturned:
			stats.Returned += row.Cnt
		case loan.StatusOverdue:
			stats.Overdue += row.Cnt
		}
	}
	return stats
}

// =========================================
// 辅助函数：模型转换
// =========================================

// toLoanEntity GORM模型 → 领域实体
func toLoanEntity(model *LoanModel) *loan.Loan {
	return &loan.Loan{
		ID:         model.ID,
		MemberID:   model.MemberID,
		BookID:     model.BookID,
		LoanedAt:   model.LoanedAt,
		DueAt:      model.DueAt,
		ReturnedAt: model.ReturnedAt,
		Status:     loan.Status(model.Status),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// toLoanDetail GORM模型 → 富化借阅记录
func toLoanDetail(model *LoanModel) *loan.Detail {
	return &loan.Detail{
		Loan: *toLoanEntity(model),
		Member: loan.MemberSummary{
			Name:  model.Member.Name,
			Email: model.Member.Email,
		},
		Book: loan.BookSummary{
			Title:  model.Book.Title,
			Author: model.Book.Author,
			ISBN:   model.Book.ISBN,
		},
	}
}

func toLoanDetails(models []LoanModel) []*loan.Detail {
	details := make([]*loan.Detail, len(models))
	for i := range models {
		details[i] = toLoanDetail(&models[i])
	}
	return details
}
