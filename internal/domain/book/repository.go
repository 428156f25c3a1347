package book

import (
	"context"
)

// Repository 图书仓储接口（依赖倒置）
// 由domain层定义接口，infrastructure层实现，便于Mock测试
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// FindAll 查询全部图书
	FindAll(ctx context.Context) ([]*Book, error)

	// Search 关键词搜索（title/author/isbn子串匹配，不区分大小写）
	Search(ctx context.Context, query string) ([]*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	Delete(ctx context.Context, id uint) error

	// LockByID 悲观锁查询图书（SELECT FOR UPDATE）
	// 借出与删除在事务内以此为图书的串行化点
	LockByID(ctx context.Context, id uint) (*Book, error)
}
