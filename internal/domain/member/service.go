package member

import (
	"context"
	"errors"
	"strings"
)

// Service 会员领域服务接口
// 跨聚合的删除守卫与借阅查询在应用层
type Service interface {
	// RegisterMember 注册新会员
	// 业务规则：name/email非空；email不区分大小写唯一
	RegisterMember(ctx context.Context, name, email string) (*Member, error)

	// GetMemberByID 根据ID获取会员
	GetMemberByID(ctx context.Context, id uint) (*Member, error)

	// GetMemberByEmail 根据邮箱获取会员
	GetMemberByEmail(ctx context.Context, email string) (*Member, error)

	// ListMembers 查询全部会员
	ListMembers(ctx context.Context) ([]*Member, error)

	// SearchMembers 关键词搜索
	SearchMembers(ctx context.Context, query string) ([]*Member, error)

	// UpdateMember 部分更新会员
	// 业务规则：email变更时重新校验唯一性
	UpdateMember(ctx context.Context, id uint, params UpdateParams) (*Member, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建会员领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// RegisterMember 注册新会员
func (s *service) RegisterMember(ctx context.Context, name, email string) (*Member, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" || email == "" {
		return nil, ErrMissingFields
	}

	// 先查重，数据库唯一索引兜底并发写入
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailDuplicate
	} else if !errors.Is(err, ErrMemberNotFound) {
		return nil, err
	}

	m := NewMember(name, email)
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetMemberByID 根据ID获取会员
func (s *service) GetMemberByID(ctx context.Context, id uint) (*Member, error) {
	return s.repo.FindByID(ctx, id)
}

// GetMemberByEmail 根据邮箱获取会员
func (s *service) GetMemberByEmail(ctx context.Context, email string) (*Member, error) {
	return s.repo.FindByEmail(ctx, NormalizeEmail(email))
}

// ListMembers 查询全部会员
func (s *service) ListMembers(ctx context.Context) ([]*Member, error) {
	return s.repo.FindAll(ctx)
}

// SearchMembers 关键词搜索
func (s *service) SearchMembers(ctx context.Context, query string) ([]*Member, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrMissingQuery
	}
	return s.repo.Search(ctx, query)
}

// UpdateMember 部分更新会员
func (s *service) UpdateMember(ctx context.Context, id uint, params UpdateParams) (*Member, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Email != nil {
		newEmail := NormalizeEmail(*params.Email)
		if newEmail == "" {
			return nil, ErrMissingFields
		}
		params.Email = &newEmail
		if newEmail != m.Email {
			if _, err := s.repo.FindByEmail(ctx, newEmail); err == nil {
				return nil, ErrEmailDuplicate
			} else if !errors.Is(err, ErrMemberNotFound) {
				return nil, err
			}
		}
	}

	m.Apply(params)
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
