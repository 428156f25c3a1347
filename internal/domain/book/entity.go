package book

import (
	"time"
)

// Book 图书实体（聚合根）
// 设计说明：
// 1. ISBN是业务唯一标识（数据库层保证唯一性）
// 2. Copies是馆藏副本总数，借出数量不能超过它
// 3. 借阅记录只按ID弱引用图书，不属于本聚合
type Book struct {
	ID        uint
	ISBN      string // ISBN号（国际标准书号）
	Title     string // 书名
	Author    string // 作者
	Copies    int    // 馆藏副本数
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书（工厂方法）
// copies为nil时默认1册
func NewBook(isbn, title, author string, copies *int) *Book {
	c := 1
	if copies != nil {
		c = *copies
	}
	now := time.Now()
	return &Book{
		ISBN:      isbn,
		Title:     title,
		Author:    author,
		Copies:    c,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateParams 图书更新参数
// 指针字段区分"未提供"和"显式置零"
type UpdateParams struct {
	ISBN   *string
	Title  *string
	Author *string
	Copies *int
}

// Apply 应用部分更新（领域行为）
// 只覆盖提供的字段，校验由调用方的领域服务负责
func (b *Book) Apply(params UpdateParams) {
	if params.ISBN != nil {
		b.ISBN = *params.ISBN
	}
	if params.Title != nil {
		b.Title = *params.Title
	}
	if params.Author != nil {
		b.Author = *params.Author
	}
	if params.Copies != nil {
		b.Copies = *params.Copies
	}
	b.UpdatedAt = time.Now()
}
