package loan

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
)

// 内存版仓储与事务管理器，仅用于单元测试。
// fakeTxManager用互斥锁模拟数据库行锁的串行化效果：
// 同一时刻只有一个事务体在执行，与生产实现的FOR UPDATE语义一致。

type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// fakeStatsCache 记录调用次数的统计缓存
type fakeStatsCache struct {
	mu          sync.Mutex
	stats       *loan.Stats
	invalidated int
	sets        int
}

func (c *fakeStatsCache) Get(_ context.Context) (*loan.Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats, nil
}

func (c *fakeStatsCache) Set(_ context.Context, stats *loan.Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = stats
	c.sets++
}

func (c *fakeStatsCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = nil
	c.invalidated++
}

// fakeLoanRepo 内存借阅账本
type fakeLoanRepo struct {
	mu      sync.Mutex
	loans   map[uint]*loan.Loan
	members map[uint]*member.Member
	books   map[uint]*book.Book
	nextID  uint
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{
		loans:   make(map[uint]*loan.Loan),
		members: make(map[uint]*member.Member),
		books:   make(map[uint]*book.Book),
		nextID:  1,
	}
}

// addMember 预置会员（测试夹具）
func (r *fakeLoanRepo) addMember(m *member.Member) {
	r.members[m.ID] = m
}

// addBook 预置图书（测试夹具）
func (r *fakeLoanRepo) addBook(b *book.Book) {
	r.books[b.ID] = b
}

func (r *fakeLoanRepo) Create(_ context.Context, l *loan.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = r.nextID
	r.nextID++
	copied := *l
	r.loans[l.ID] = &copied
	return nil
}

func (r *fakeLoanRepo) FindByID(_ context.Context, id uint) (*loan.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok {
		return nil, loan.ErrLoanNotFound
	}
	copied := *l
	return &copied, nil
}

func (r *fakeLoanRepo) FindDetailByID(ctx context.Context, id uint) (*loan.Detail, error) {
	l, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.toDetail(l), nil
}

func (r *fakeLoanRepo) LockByID(ctx context.Context, id uint) (*loan.Loan, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeLoanRepo) FindAll(_ context.Context, status *loan.Status) ([]*loan.Detail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*loan.Detail
	for _, l := range r.loans {
		if status != nil && l.Status != *status {
			continue
		}
		copied := *l
		out = append(out, r.toDetail(&copied))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoanedAt.After(out[j].LoanedAt) })
	return out, nil
}

func (r *fakeLoanRepo) FindByMember(_ context.Context, memberID uint, activeOnly bool) ([]*loan.Detail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*loan.Detail
	for _, l := range r.loans {
		if l.MemberID != memberID {
			continue
		}
		if activeOnly && l.ReturnedAt != nil {
			continue
		}
		copied := *l
		out = append(out, r.toDetail(&copied))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoanedAt.After(out[j].LoanedAt) })
	return out, nil
}

func (r *fakeLoanRepo) Update(_ context.Context, l *loan.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.loans[l.ID]; !ok {
		return loan.ErrLoanNotFound
	}
	copied := *l
	r.loans[l.ID] = &copied
	return nil
}

func (r *fakeLoanRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.loans[id]; !ok {
		return loan.ErrLoanNotFound
	}
	delete(r.loans, id)
	return nil
}

func (r *fakeLoanRepo) CountActiveByBook(_ context.Context, bookID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, l := range r.loans {
		if l.BookID == bookID && l.ReturnedAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *fakeLoanRepo) CountActiveByMember(_ context.Context, memberID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, l := range r.loans {
		if l.MemberID == memberID && l.ReturnedAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *fakeLoanRepo) HasActiveLoan(_ context.Context, memberID, bookID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.loans {
		if l.MemberID == memberID && l.BookID == bookID && l.ReturnedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLoanRepo) SweepOverdue(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var marked int64
	for _, l := range r.loans {
		if l.Status == loan.StatusActive && l.DueAt.Before(now) {
			l.Status = loan.StatusOverdue
			marked++
		}
	}
	return marked, nil
}

func (r *fakeLoanRepo) FindOverdue(_ context.Context, now time.Time) ([]*loan.Detail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*loan.Detail
	for _, l := range r.loans {
		if l.Status == loan.StatusOverdue && l.DueAt.Before(now) {
			copied := *l
			out = append(out, r.toDetail(&copied))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out, nil
}

func (r *fakeLoanRepo) GetStats(_ context.Context, now time.Time) (*loan.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &loan.Stats{}
	for _, l := range r.loans {
		stats.Total++
		switch {
		case l.Status == loan.StatusReturned:
			stats.Returned++
		case l.Status == loan.StatusOverdue || l.DueAt.Before(now):
			stats.Overdue++
		default:
			stats.Active++
		}
	}
	return stats, nil
}

func (r *fakeLoanRepo) toDetail(l *loan.Loan) *loan.Detail {
	d := &loan.Detail{Loan: *l}
	if m, ok := r.members[l.MemberID]; ok {
		d.Member = loan.MemberSummary{Name: m.Name, Email: m.Email}
	}
	if b, ok := r.books[l.BookID]; ok {
		d.Book = loan.BookSummary{Title: b.Title, Author: b.Author, ISBN: b.ISBN}
	}
	return d
}

// fakeMemberRepo 只实现借出路径用到的方法，其余直接panic暴露误用
type fakeMemberRepo struct {
	members map[uint]*member.Member
}

func newFakeMemberRepo(members ...*member.Member) *fakeMemberRepo {
	r := &fakeMemberRepo{members: make(map[uint]*member.Member)}
	for _, m := range members {
		r.members[m.ID] = m
	}
	return r
}

func (r *fakeMemberRepo) FindByID(_ context.Context, id uint) (*member.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, member.ErrMemberNotFound
	}
	return m, nil
}

func (r *fakeMemberRepo) LockByID(ctx context.Context, id uint) (*member.Member, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeMemberRepo) Create(context.Context, *member.Member) error   { panic("not implemented") }
func (r *fakeMemberRepo) FindByEmail(context.Context, string) (*member.Member, error) {
	panic("not implemented")
}
func (r *fakeMemberRepo) FindAll(context.Context) ([]*member.Member, error) {
	panic("not implemented")
}
func (r *fakeMemberRepo) Search(context.Context, string) ([]*member.Member, error) {
	panic("not implemented")
}
func (r *fakeMemberRepo) Update(context.Context, *member.Member) error { panic("not implemented") }
func (r *fakeMemberRepo) Delete(context.Context, uint) error           { panic("not implemented") }

// fakeBookRepo 只实现借出路径用到的方法
type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) Create(context.Context, *book.Book) error { panic("not implemented") }
func (r *fakeBookRepo) FindByISBN(context.Context, string) (*book.Book, error) {
	panic("not implemented")
}
func (r *fakeBookRepo) FindAll(context.Context) ([]*book.Book, error) { panic("not implemented") }
func (r *fakeBookRepo) Search(context.Context, string) ([]*book.Book, error) {
	panic("not implemented")
}
func (r *fakeBookRepo) Update(context.Context, *book.Book) error { panic("not implemented") }
func (r *fakeBookRepo) Delete(context.Context, uint) error       { panic("not implemented") }
