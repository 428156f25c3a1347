package loan

import (
	"time"
)

// 借阅周期默认值
const (
	// DefaultLoanDays 默认借期（天）
	DefaultLoanDays = 14

	// DefaultExtensionDays 默认续借天数
	DefaultExtensionDays = 7
)

// Status 借阅状态
// 状态流转：active → returned；active → overdue → returned；returned为终态
type Status string

const (
	StatusActive   Status = "active"   // 借出中
	StatusReturned Status = "returned" // 已归还
	StatusOverdue  Status = "overdue"  // 已逾期（未归还）
)

// Valid 判断是否为合法状态值
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusReturned, StatusOverdue:
		return true
	}
	return false
}

// CanTransitionTo 检查是否可以转换到目标状态
// 状态机防止非法跳转（如returned → active）
func (s Status) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusActive:   {StatusReturned, StatusOverdue},
		StatusOverdue:  {StatusReturned},
		StatusReturned: {},
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Loan 借阅记录实体（账本条目）
// 设计说明：
// 1. MemberID/BookID是弱引用，不承载聚合所有权
// 2. 存储的Status是机会性刷新的缓存：overdue只在扫描时落库，
//    需要真值的调用方应直接比较DueAt与当前时间
// 3. ReturnedAt非空当且仅当Status==returned
type Loan struct {
	ID         uint
	MemberID   uint
	BookID     uint
	LoanedAt   time.Time  // 借出时间
	DueAt      time.Time  // 应还时间
	ReturnedAt *time.Time // 归还时间（未归还为nil）
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewLoan 创建借阅记录（工厂方法）
// dueAt为nil时默认借出时间+14天
func NewLoan(memberID, bookID uint, dueAt *time.Time) *Loan {
	now := time.Now()
	due := now.AddDate(0, 0, DefaultLoanDays)
	if dueAt != nil {
		due = *dueAt
	}
	return &Loan{
		MemberID:  memberID,
		BookID:    bookID,
		LoanedAt:  now,
		DueAt:     due,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TransitionTo 状态转换
func (l *Loan) TransitionTo(target Status) error {
	if !l.Status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	l.Status = target
	l.UpdatedAt = time.Now()
	return nil
}

// Return 归还（领域行为）
// 业务规则：已归还的记录不能重复归还；ReturnedAt与状态同步落笔
func (l *Loan) Return(now time.Time) error {
	if l.Status == StatusReturned {
		return ErrAlreadyReturned
	}
	if err := l.TransitionTo(StatusReturned); err != nil {
		return err
	}
	l.ReturnedAt = &now
	return nil
}

// Extend 续借（领域行为）
// 业务规则：只有active状态可以续借；days<=0时取默认7天
// 累计续借次数不设上限（馆方策略自行约束）
func (l *Loan) Extend(days int) error {
	if l.Status != StatusActive {
		return ErrNotActive
	}
	if days <= 0 {
		days = DefaultExtensionDays
	}
	l.DueAt = l.DueAt.AddDate(0, 0, days)
	l.UpdatedAt = time.Now()
	return nil
}

// MarkOverdue 标记逾期（过期扫描用）
func (l *Loan) MarkOverdue() error {
	return l.TransitionTo(StatusOverdue)
}

// IsPastDue 是否已过应还时间（真值判断，不依赖存储状态）
func (l *Loan) IsPastDue(now time.Time) bool {
	return l.ReturnedAt == nil && l.DueAt.Before(now)
}

// MemberSummary 借阅响应中的会员摘要（读侧富化，非聚合引用）
type MemberSummary struct {
	Name  string
	Email string
}

// BookSummary 借阅响应中的图书摘要
type BookSummary struct {
	Title  string
	Author string
	ISBN   string
}

// Detail 附带会员/图书摘要的借阅记录
// 富化数据来自独立的读查询，仅用于展示，不参与不变量判断
type Detail struct {
	Loan
	Member MemberSummary
	Book   BookSummary
}

// Stats 借阅统计
// Overdue按真值口径统计：已标记overdue的记录加上已过期但尚未扫描的active记录
type Stats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Returned int64 `json:"returned"`
	Overdue  int64 `json:"overdue"`
}
