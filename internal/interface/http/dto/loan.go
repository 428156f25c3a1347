package dto

import (
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
)

// CreateLoanRequest 借书请求
// due_at可选，缺省为借出时间+14天，JSON格式为RFC3339
type CreateLoanRequest struct {
	MemberID uint       `json:"member_id" binding:"required" example:"1"`
	BookID   uint       `json:"book_id" binding:"required" example:"1"`
	DueAt    *time.Time `json:"due_at"`
}

// ExtendLoanRequest 续借请求，days缺省为7天
type ExtendLoanRequest struct {
	Days int `json:"days" binding:"omitempty,min=1" example:"7"`
}

// LoanMember 借阅记录中内嵌的会员摘要
type LoanMember struct {
	Name  string `json:"name" example:"张小明"`
	Email string `json:"email" example:"xiaoming@example.com"`
}

// LoanBook 借阅记录中内嵌的图书摘要
type LoanBook struct {
	Title  string `json:"title" example:"Go语言实战"`
	Author string `json:"author" example:"威廉·肯尼迪"`
	ISBN   string `json:"isbn" example:"9787115428028"`
}

// LoanResponse 借阅记录响应，附带会员与图书摘要
type LoanResponse struct {
	ID         uint        `json:"id" example:"1"`
	MemberID   uint        `json:"member_id" example:"1"`
	BookID     uint        `json:"book_id" example:"1"`
	Member     *LoanMember `json:"member,omitempty"`
	Book       *LoanBook   `json:"book,omitempty"`
	LoanedAt   time.Time   `json:"loaned_at"`
	DueAt      time.Time   `json:"due_at"`
	ReturnedAt *time.Time  `json:"returned_at"`
	Status     loan.Status `json:"status" example:"active"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// FromLoan 裸借阅实体 → 响应DTO（不含摘要）
func FromLoan(l *loan.Loan) *LoanResponse {
	return &LoanResponse{
		ID:         l.ID,
		MemberID:   l.MemberID,
		BookID:     l.BookID,
		LoanedAt:   l.LoanedAt,
		DueAt:      l.DueAt,
		ReturnedAt: l.ReturnedAt,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// FromLoanDetail 带关联信息的借阅记录 → 响应DTO
func FromLoanDetail(d *loan.Detail) *LoanResponse {
	resp := FromLoan(&d.Loan)
	resp.Member = &LoanMember{Name: d.Member.Name, Email: d.Member.Email}
	resp.Book = &LoanBook{Title: d.Book.Title, Author: d.Book.Author, ISBN: d.Book.ISBN}
	return resp
}

// FromLoanDetails 批量转换
func FromLoanDetails(details []*loan.Detail) []*LoanResponse {
	out := make([]*LoanResponse, len(details))
	for i, d := range details {
		out[i] = FromLoanDetail(d)
	}
	return out
}

// StatsResponse 借阅统计响应
type StatsResponse struct {
	Total    int64 `json:"total" example:"42"`
	Active   int64 `json:"active" example:"10"`
	Returned int64 `json:"returned" example:"30"`
	Overdue  int64 `json:"overdue" example:"2"`
}

// FromStats 统计快照 → 响应DTO
func FromStats(s *loan.Stats) *StatsResponse {
	return &StatsResponse{
		Total:    s.Total,
		Active:   s.Active,
		Returned: s.Returned,
		Overdue:  s.Overdue,
	}
}
