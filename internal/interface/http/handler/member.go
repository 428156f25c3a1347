package handler

import (
	"github.com/gin-gonic/gin"

	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// MemberHandler 会员HTTP处理器
type MemberHandler struct {
	memberService       member.Service
	deleteMemberUseCase *appmember.DeleteMemberUseCase
	memberLoansUseCase  *appmember.MemberLoansUseCase
}

// NewMemberHandler 创建会员处理器
func NewMemberHandler(
	memberService member.Service,
	deleteMemberUseCase *appmember.DeleteMemberUseCase,
	memberLoansUseCase *appmember.MemberLoansUseCase,
) *MemberHandler {
	return &MemberHandler{
		memberService:       memberService,
		deleteMemberUseCase: deleteMemberUseCase,
		memberLoansUseCase:  memberLoansUseCase,
	}
}

// RegisterMember 注册新会员
// @Summary      注册会员
// @Description  注册新会员，邮箱唯一且统一转为小写
// @Tags         会员
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterMemberRequest true "会员信息"
// @Success      201 {object} response.Response{data=dto.MemberResponse}
// @Failure      400 {object} response.Response "参数错误或邮箱重复"
// @Router       /members [post]
func (h *MemberHandler) RegisterMember(c *gin.Context) {
	var req dto.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	m, err := h.memberService.RegisterMember(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "会员注册成功", dto.FromMember(m))
}

// ListMembers 查询全部会员
// @Summary      会员列表
// @Tags         会员
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.MemberResponse}
// @Router       /members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.memberService.ListMembers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(members), dto.FromMembers(members))
}

// SearchMembers 关键词搜索会员
// @Summary      搜索会员
// @Description  对name/email做不区分大小写的子串匹配
// @Tags         会员
// @Produce      json
// @Param        query query string true "搜索关键词"
// @Success      200 {object} response.Response{data=[]dto.MemberResponse}
// @Failure      400 {object} response.Response "关键词为空"
// @Router       /members/search [get]
func (h *MemberHandler) SearchMembers(c *gin.Context) {
	members, err := h.memberService.SearchMembers(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(members), dto.FromMembers(members))
}

// GetMemberByEmail 根据邮箱获取会员
// @Summary      按邮箱查询会员
// @Tags         会员
// @Produce      json
// @Param        email path string true "邮箱"
// @Success      200 {object} response.Response{data=dto.MemberResponse}
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /members/email/{email} [get]
func (h *MemberHandler) GetMemberByEmail(c *gin.Context) {
	m, err := h.memberService.GetMemberByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromMember(m))
}

// GetMember 根据ID获取会员
// @Summary      查询会员
// @Tags         会员
// @Produce      json
// @Param        id path int true "会员ID"
// @Success      200 {object} response.Response{data=dto.MemberResponse}
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /members/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	m, err := h.memberService.GetMemberByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromMember(m))
}

// UpdateMember 部分更新会员
// @Summary      更新会员
// @Description  只更新请求中携带的字段，邮箱变更时重新校验唯一性
// @Tags         会员
// @Accept       json
// @Produce      json
// @Param        id path int true "会员ID"
// @Param        request body dto.UpdateMemberRequest true "待更新字段"
// @Success      200 {object} response.Response{data=dto.MemberResponse}
// @Failure      400 {object} response.Response "参数错误或邮箱重复"
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /members/{id} [put]
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	m, err := h.memberService.UpdateMember(c.Request.Context(), id, req.ToParams())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "会员更新成功", dto.FromMember(m))
}

// DeleteMember 删除会员
// @Summary      删除会员
// @Description  存在未归还借阅的会员不能删除
// @Tags         会员
// @Produce      json
// @Param        id path int true "会员ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "存在未归还的借阅"
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /members/{id} [delete]
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteMemberUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "会员已删除", nil)
}

// MemberLoans 会员借阅历史
// @Summary      会员借阅记录
// @Tags         会员
// @Produce      json
// @Param        id path int true "会员ID"
// @Success      200 {object} response.Response{data=[]dto.LoanResponse}
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /members/{id}/loans [get]
func (h *MemberHandler) MemberLoans(c *gin.Context) {
	h.memberLoans(c, false)
}

// MemberActiveLoans 会员未归还的借阅
// @Summary      会员在借记录
// @Tags         会员
// @Produce      json
// @Param        id path int true "会员ID"
// @Success      200 {object} response.Response{data=[]dto.LoanResponse}
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /members/{id}/active-loans [get]
func (h *MemberHandler) MemberActiveLoans(c *gin.Context) {
	h.memberLoans(c, true)
}

func (h *MemberHandler) memberLoans(c *gin.Context, activeOnly bool) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	loans, err := h.memberLoansUseCase.Execute(c.Request.Context(), id, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(loans), dto.FromLoanDetails(loans))
}
