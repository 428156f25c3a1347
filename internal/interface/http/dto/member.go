package dto

import (
	"time"

	"github.com/xiebiao/library/internal/domain/member"
)

// RegisterMemberRequest 会员注册请求
type RegisterMemberRequest struct {
	Name  string `json:"name" binding:"required,max=100" example:"张小明"`
	Email string `json:"email" binding:"required,email" example:"xiaoming@example.com"`
}

// UpdateMemberRequest 会员更新请求，指针字段支持部分更新
type UpdateMemberRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// ToParams 转换为领域层更新参数
func (r UpdateMemberRequest) ToParams() member.UpdateParams {
	return member.UpdateParams{
		Name:  r.Name,
		Email: r.Email,
	}
}

// MemberResponse 会员响应
type MemberResponse struct {
	ID        uint      `json:"id" example:"1"`
	Name      string    `json:"name" example:"张小明"`
	Email     string    `json:"email" example:"xiaoming@example.com"`
	JoinedAt  time.Time `json:"joined_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromMember 领域实体 → 响应DTO
func FromMember(m *member.Member) *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		JoinedAt:  m.JoinedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromMembers 批量转换
func FromMembers(members []*member.Member) []*MemberResponse {
	out := make([]*MemberResponse, len(members))
	for i, m := range members {
		out[i] = FromMember(m)
	}
	return out
}
