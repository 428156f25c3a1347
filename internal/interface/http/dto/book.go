package dto

import (
	"time"

	"github.com/xiebiao/library/internal/domain/book"
)

// CreateBookRequest 图书登记请求
// binding tag由gin的validator校验，isbn/title/author必填
type CreateBookRequest struct {
	ISBN   string `json:"isbn" binding:"required" example:"9787115428028"`
	Title  string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	Copies *int   `json:"copies" binding:"omitempty,min=0" example:"3"` // 缺省1册
}

// UpdateBookRequest 图书更新请求
// 指针字段区分"未提供"和"显式置零"，未提供的字段保持原值
type UpdateBookRequest struct {
	ISBN   *string `json:"isbn" binding:"omitempty,min=1"`
	Title  *string `json:"title" binding:"omitempty,min=1,max=200"`
	Author *string `json:"author" binding:"omitempty,min=1,max=100"`
	Copies *int    `json:"copies" binding:"omitempty,min=0"`
}

// ToParams 转换为领域层更新参数
func (r UpdateBookRequest) ToParams() book.UpdateParams {
	return book.UpdateParams{
		ISBN:   r.ISBN,
		Title:  r.Title,
		Author: r.Author,
		Copies: r.Copies,
	}
}

// BookResponse 图书响应
type BookResponse struct {
	ID        uint      `json:"id" example:"1"`
	ISBN      string    `json:"isbn" example:"9787115428028"`
	Title     string    `json:"title" example:"Go语言实战"`
	Author    string    `json:"author" example:"威廉·肯尼迪"`
	Copies    int       `json:"copies" example:"3"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromBook 领域实体 → 响应DTO
func FromBook(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:        b.ID,
		ISBN:      b.ISBN,
		Title:     b.Title,
		Author:    b.Author,
		Copies:    b.Copies,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromBooks 批量转换
func FromBooks(books []*book.Book) []*BookResponse {
	out := make([]*BookResponse, len(books))
	for i, b := range books {
		out[i] = FromBook(b)
	}
	return out
}
