package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/member"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// memberRepository 会员仓储实现（MySQL）
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建会员仓储
func NewMemberRepository(db *gorm.DB) member.Repository {
	return &memberRepository{db: db}
}

// Create 创建会员
func (r *memberRepository) Create(ctx context.Context, m *member.Member) error {
	model := &MemberModel{
		Name:     m.Name,
		Email:    m.Email,
		JoinedAt: m.JoinedAt,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return member.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建会员失败")
	}

	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	m.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找会员
func (r *memberRepository) FindByID(ctx context.Context, id uint) (*member.Member, error) {
	var model MemberModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "查询会员失败")
	}

	return toMemberEntity(&model), nil
}

// FindByEmail 根据邮箱查找会员
func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	var model MemberModel
	err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "查询会员失败")
	}

	return toMemberEntity(&model), nil
}

// FindAll 查询全部会员，按入会时间降序
func (r *memberRepository) FindAll(ctx context.Context) ([]*member.Member, error) {
	var models []MemberModel
	if err := getDB(ctx, r.db).Order("joined_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询会员列表失败")
	}
	return toMemberEntities(models), nil
}

// Search 关键词搜索
func (r *memberRepository) Search(ctx context.Context, query string) ([]*member.Member, error) {
	keyword := "%" + escapeLike(query) + "%"

	var models []MemberModel
	err := getDB(ctx, r.db).
		Where("name LIKE ? OR email LIKE ?", keyword, keyword).
		Order("joined_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "搜索会员失败")
	}
	return toMemberEntities(models), nil
}

// Update 更新会员信息
func (r *memberRepository) Update(ctx context.Context, m *member.Member) error {
	model := &MemberModel{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		JoinedAt:  m.JoinedAt,
		CreatedAt: m.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return member.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "更新会员失败")
	}

	m.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除会员
func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&MemberModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除会员失败")
	}
	if result.RowsAffected == 0 {
		return member.ErrMemberNotFound
	}

	return nil
}

// LockByID 悲观锁查询会员
func (r *memberRepository) LockByID(ctx context.Context, id uint) (*member.Member, error) {
	var model MemberModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "锁定会员失败")
	}

	return toMemberEntity(&model), nil
}

// =========================================
// 辅助函数：模型转换
// =========================================

// toMemberEntity GORM模型 → 领域实体
func toMemberEntity(model *MemberModel) *member.Member {
	return &member.Member{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		JoinedAt:  model.JoinedAt,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toMemberEntities(models []MemberModel) []*member.Member {
	members := make([]*member.Member, len(models))
	for i := range models {
		members[i] = toMemberEntity(&models[i])
	}
	return members
}
