package book

import (
	"context"
	"errors"
	"strings"
)

// Service 图书领域服务接口
// 封装单聚合的业务规则校验（跨聚合的删除守卫在应用层）
type Service interface {
	// CreateBook 登记新图书
	// 业务规则：isbn/title/author非空；isbn不能重复；copies>=0，缺省1
	CreateBook(ctx context.Context, isbn, title, author string, copies *int) (*Book, error)

	// GetBookByID 根据ID获取图书
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookByISBN 根据ISBN获取图书
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// ListBooks 查询全部图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// SearchBooks 关键词搜索
	SearchBooks(ctx context.Context, query string) ([]*Book, error)

	// UpdateBook 部分更新图书
	// 业务规则：isbn变更时重新校验唯一性
	UpdateBook(ctx context.Context, id uint, params UpdateParams) (*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 登记新图书
func (s *service) CreateBook(ctx context.Context, isbn, title, author string, copies *int) (*Book, error) {
	isbn = strings.TrimSpace(isbn)
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if isbn == "" || title == "" || author == "" {
		return nil, ErrMissingFields
	}
	if copies != nil && *copies < 0 {
		return nil, ErrInvalidCopies
	}

	// 先查重，数据库唯一索引兜底并发写入
	if _, err := s.repo.FindByISBN(ctx, isbn); err == nil {
		return nil, ErrISBNDuplicate
	} else if !errors.Is(err, ErrBookNotFound) {
		return nil, err
	}

	b := NewBook(isbn, title, author, copies)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookByISBN 根据ISBN获取图书
func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

// ListBooks 查询全部图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.FindAll(ctx)
}

// SearchBooks 关键词搜索
func (s *service) SearchBooks(ctx context.Context, query string) ([]*Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrMissingQuery
	}
	return s.repo.Search(ctx, query)
}

// UpdateBook 部分更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, params UpdateParams) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Copies != nil && *params.Copies < 0 {
		return nil, ErrInvalidCopies
	}

	// isbn变更时重新校验唯一性
	if params.ISBN != nil {
		newISBN := strings.TrimSpace(*params.ISBN)
		if newISBN == "" {
			return nil, ErrMissingFields
		}
		params.ISBN = &newISBN
		if newISBN != b.ISBN {
			if _, err := s.repo.FindByISBN(ctx, newISBN); err == nil {
				return nil, ErrISBNDuplicate
			} else if !errors.Is(err, ErrBookNotFound) {
				return nil, err
			}
		}
	}

	b.Apply(params)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
