package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	createLoanUseCase   *apploan.CreateLoanUseCase
	returnBookUseCase   *apploan.ReturnBookUseCase
	extendLoanUseCase   *apploan.ExtendLoanUseCase
	listLoansUseCase    *apploan.ListLoansUseCase
	overdueLoansUseCase *apploan.OverdueLoansUseCase
	loanStatsUseCase    *apploan.LoanStatsUseCase
	deleteLoanUseCase   *apploan.DeleteLoanUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	createLoanUseCase *apploan.CreateLoanUseCase,
	returnBookUseCase *apploan.ReturnBookUseCase,
	extendLoanUseCase *apploan.ExtendLoanUseCase,
	listLoansUseCase *apploan.ListLoansUseCase,
	overdueLoansUseCase *apploan.OverdueLoansUseCase,
	loanStatsUseCase *apploan.LoanStatsUseCase,
	deleteLoanUseCase *apploan.DeleteLoanUseCase,
) *LoanHandler {
	return &LoanHandler{
		createLoanUseCase:   createLoanUseCase,
		returnBookUseCase:   returnBookUseCase,
		extendLoanUseCase:   extendLoanUseCase,
		listLoansUseCase:    listLoansUseCase,
		overdueLoansUseCase: overdueLoansUseCase,
		loanStatsUseCase:    loanStatsUseCase,
		deleteLoanUseCase:   deleteLoanUseCase,
	}
}

// CreateLoan 借出图书
// @Summary      借书
// @Description  校验会员存在、有可借副本、无重复在借记录后创建借阅，due_at缺省为借出时间+14天
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLoanRequest true "借书请求"
// @Success      201 {object} response.Response{data=dto.LoanResponse}
// @Failure      400 {object} response.Response "无可借副本或重复借阅"
// @Failure      404 {object} response.Response "会员或图书不存在"
// @Router       /loans [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	detail, err := h.createLoanUseCase.Execute(c.Request.Context(), apploan.CreateLoanRequest{
		MemberID: req.MemberID,
		BookID:   req.BookID,
		DueAt:    req.DueAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "图书借出成功", dto.FromLoanDetail(detail))
}

// ListLoans 查询借阅记录
// @Summary      借阅列表
// @Description  可按status过滤（active/returned/overdue），按借出时间倒序
// @Tags         借阅
// @Produce      json
// @Param        status query string false "状态过滤" Enums(active, returned, overdue)
// @Success      200 {object} response.Response{data=[]dto.LoanResponse}
// @Failure      400 {object} response.Response "非法的status"
// @Router       /loans [get]
func (h *LoanHandler) ListLoans(c *gin.Context) {
	loans, err := h.listLoansUseCase.Execute(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(loans), dto.FromLoanDetails(loans))
}

// OverdueLoans 查询逾期借阅
// @Summary      逾期列表
// @Description  先把已过期的在借记录标记为overdue，再返回全部逾期未归还记录，按到期时间升序
// @Tags         借阅
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.LoanResponse}
// @Router       /loans/overdue [get]
func (h *LoanHandler) OverdueLoans(c *gin.Context) {
	loans, err := h.overdueLoansUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(loans), dto.FromLoanDetails(loans))
}

// LoanStats 借阅统计
// @Summary      借阅统计
// @Description  单次快照统计，total=active+returned+overdue恒成立
// @Tags         借阅
// @Produce      json
// @Success      200 {object} response.Response{data=dto.StatsResponse}
// @Router       /loans/stats [get]
func (h *LoanHandler) LoanStats(c *gin.Context) {
	stats, err := h.loanStatsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromStats(stats))
}

// GetLoan 根据ID获取借阅记录
// @Summary      查询借阅记录
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=dto.LoanResponse}
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.listLoansUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromLoanDetail(detail))
}

// ReturnBook 归还图书
// @Summary      还书
// @Description  已归还的记录重复还书返回错误
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=dto.LoanResponse}
// @Failure      400 {object} response.Response "记录已归还"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /loans/{id}/return [put]
func (h *LoanHandler) ReturnBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.returnBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "图书归还成功", dto.FromLoanDetail(detail))
}

// ExtendLoan 续借
// @Summary      续借
// @Description  仅在借记录可续借，天数缺省7天
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        id path int true "借阅记录ID"
// @Param        request body dto.ExtendLoanRequest false "续借天数"
// @Success      200 {object} response.Response{data=dto.LoanResponse}
// @Failure      400 {object} response.Response "记录非在借状态"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /loans/{id}/extend [put]
func (h *LoanHandler) ExtendLoan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	// 请求体可省略，省略时使用缺省续借天数
	var req dto.ExtendLoanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
			return
		}
	}

	result, err := h.extendLoanUseCase.Execute(c.Request.Context(), id, req.Days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, fmt.Sprintf("续借%d天成功", result.Days), dto.FromLoanDetail(result.Detail))
}

// DeleteLoan 删除借阅记录（管理操作）
// @Summary      删除借阅记录
// @Description  硬删除台账记录，仅供管理维护使用
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "未认证"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteLoanUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "借阅记录已删除", nil)
}
