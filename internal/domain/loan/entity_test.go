package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStatus_Valid 测试状态值合法性
func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusReturned.Valid())
	assert.True(t, StatusOverdue.Valid())
	assert.False(t, Status("pending").Valid())
	assert.False(t, Status("").Valid())
}

// TestStatus_CanTransitionTo 测试状态机流转规则
func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("active可以流转到returned和overdue", func(t *testing.T) {
		assert.True(t, StatusActive.CanTransitionTo(StatusReturned))
		assert.True(t, StatusActive.CanTransitionTo(StatusOverdue))
	})

	t.Run("overdue只能流转到returned", func(t *testing.T) {
		assert.True(t, StatusOverdue.CanTransitionTo(StatusReturned))
		assert.False(t, StatusOverdue.CanTransitionTo(StatusActive))
	})

	t.Run("returned是终态", func(t *testing.T) {
		assert.False(t, StatusReturned.CanTransitionTo(StatusActive))
		assert.False(t, StatusReturned.CanTransitionTo(StatusOverdue))
	})
}

// TestNewLoan 测试借阅记录工厂方法
func TestNewLoan(t *testing.T) {
	t.Run("缺省应还时间为借出时间加14天", func(t *testing.T) {
		l := NewLoan(1, 2, nil)

		assert.Equal(t, uint(1), l.MemberID)
		assert.Equal(t, uint(2), l.BookID)
		assert.Equal(t, StatusActive, l.Status)
		assert.Nil(t, l.ReturnedAt)

		expected := l.LoanedAt.AddDate(0, 0, DefaultLoanDays)
		assert.Equal(t, expected, l.DueAt)
	})

	t.Run("指定应还时间时直接采用", func(t *testing.T) {
		due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		l := NewLoan(1, 2, &due)
		assert.Equal(t, due, l.DueAt)
	})
}

// TestLoan_Return 测试归还行为
func TestLoan_Return(t *testing.T) {
	now := time.Now()

	t.Run("借出中的记录可以归还", func(t *testing.T) {
		l := NewLoan(1, 2, nil)
		require.NoError(t, l.Return(now))

		assert.Equal(t, StatusReturned, l.Status)
		require.NotNil(t, l.ReturnedAt)
		assert.Equal(t, now, *l.ReturnedAt)
	})

	t.Run("逾期的记录仍可归还", func(t *testing.T) {
		l := NewLoan(1, 2, nil)
		require.NoError(t, l.MarkOverdue())
		require.NoError(t, l.Return(now))
		assert.Equal(t, StatusReturned, l.Status)
	})

	t.Run("重复归还返回错误", func(t *testing.T) {
		l := NewLoan(1, 2, nil)
		require.NoError(t, l.Return(now))

		err := l.Return(now)
		assert.ErrorIs(t, err, ErrAlreadyReturned)
	})
}

// TestLoan_Extend 测试续借行为
func TestLoan_Extend(t *testing.T) {
	t.Run("指定天数顺延应还时间", func(t *testing.T) {
		l := NewLoan(1, 2, nil)
		originalDue := l.DueAt

		require.NoError(t, l.Extend(10))
		assert.Equal(t, originalDue.AddDate(0, 0, 10), l.DueAt)
	})

	t.Run("天数缺省为7天", func(t *testing.T) {
		l := NewLoan(1, 2, nil)
		originalDue := l.DueAt

		require.NoError(t, l.Extend(0))
		assert.Equal(t, originalDue.AddDate(0, 0, DefaultExtensionDays), l.DueAt)
	})

	t.Run("可以多次续借", func(t *testing.T) {
		l := NewLoan(1, 2, nil)
		originalDue := l.DueAt

		require.NoError(t, l.Extend(7))
		require.NoError(t, l.Extend(7))
		assert.Equal(t, originalDue.AddDate(0, 0, 14), l.DueAt)
	})

	t.Run("已归还的记录不能续借", func(t *testing.T) {
		l := NewLoan(1, 2, nil)
		require.NoError(t, l.Return(time.Now()))

		err := l.Extend(7)
		assert.ErrorIs(t, err, ErrNotActive)
	})

	t.Run("已标记逾期的记录不能续借", func(t *testing.T) {
		l := NewLoan(1, 2, nil)
		require.NoError(t, l.MarkOverdue())

		err := l.Extend(7)
		assert.ErrorIs(t, err, ErrNotActive)
	})
}

// TestLoan_IsPastDue 测试逾期真值判断
func TestLoan_IsPastDue(t *testing.T) {
	now := time.Now()

	t.Run("未到期不算逾期", func(t *testing.T) {
		l := NewLoan(1, 2, nil)
		assert.False(t, l.IsPastDue(now))
	})

	t.Run("过了应还时间且未归还算逾期", func(t *testing.T) {
		due := now.AddDate(0, 0, -1)
		l := NewLoan(1, 2, &due)
		assert.True(t, l.IsPastDue(now))
	})

	t.Run("已归还的记录不算逾期", func(t *testing.T) {
		due := now.AddDate(0, 0, -1)
		l := NewLoan(1, 2, &due)
		require.NoError(t, l.Return(now))
		assert.False(t, l.IsPastDue(now))
	})
}

// TestLoan_TransitionTo 测试非法状态跳转
func TestLoan_TransitionTo(t *testing.T) {
	l := NewLoan(1, 2, nil)
	require.NoError(t, l.Return(time.Now()))

	err := l.TransitionTo(StatusActive)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
