package member

import (
	"strings"
	"time"
)

// Member 会员实体（聚合根）
// 设计说明：
// 1. Email是业务唯一标识，入库前统一转小写
// 2. 借阅记录只按ID弱引用会员，删除守卫在应用层实现
type Member struct {
	ID        uint
	Name      string // 姓名
	Email     string // 邮箱（小写，全局唯一）
	JoinedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMember 创建新会员（工厂方法）
func NewMember(name, email string) *Member {
	now := time.Now()
	return &Member{
		Name:      name,
		Email:     NormalizeEmail(email),
		JoinedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeEmail 邮箱规范化（去空白并转小写）
// 唯一性检查和查询都基于规范化后的值
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UpdateParams 会员更新参数
// 指针字段区分"未提供"和"显式置空"
type UpdateParams struct {
	Name  *string
	Email *string
}

// Apply 应用部分更新（领域行为）
func (m *Member) Apply(params UpdateParams) {
	if params.Name != nil {
		m.Name = *params.Name
	}
	if params.Email != nil {
		m.Email = NormalizeEmail(*params.Email)
	}
	m.UpdatedAt = time.Now()
}
