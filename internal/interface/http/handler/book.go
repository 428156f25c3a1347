package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	bookService       book.Service
	deleteBookUseCase *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(bookService book.Service, deleteBookUseCase *appbook.DeleteBookUseCase) *BookHandler {
	return &BookHandler{
		bookService:       bookService,
		deleteBookUseCase: deleteBookUseCase,
	}
}

// parseIDParam 解析路径中的数字ID，非法时写入400响应
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, apperrors.New(apperrors.ErrCodeInvalidParams, "无效的ID"))
		return 0, false
	}
	return uint(id), true
}

// CreateBook 登记新图书
// @Summary      登记图书
// @Description  登记一种新图书，ISBN唯一，副本数缺省为1
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误或ISBN重复"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	b, err := h.bookService.CreateBook(c.Request.Context(), req.ISBN, req.Title, req.Author, req.Copies)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "图书登记成功", dto.FromBook(b))
}

// ListBooks 查询全部图书
// @Summary      图书列表
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.bookService.ListBooks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(books), dto.FromBooks(books))
}

// SearchBooks 关键词搜索图书
// @Summary      搜索图书
// @Description  对title/author/isbn做不区分大小写的子串匹配
// @Tags         图书
// @Produce      json
// @Param        query query string true "搜索关键词"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "关键词为空"
// @Router       /books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	books, err := h.bookService.SearchBooks(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(books), dto.FromBooks(books))
}

// GetBookByISBN 根据ISBN获取图书
// @Summary      按ISBN查询图书
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/isbn/{isbn} [get]
func (h *BookHandler) GetBookByISBN(c *gin.Context) {
	b, err := h.bookService.GetBookByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromBook(b))
}

// GetBook 根据ID获取图书
// @Summary      查询图书
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	b, err := h.bookService.GetBookByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FromBook(b))
}

// UpdateBook 部分更新图书
// @Summary      更新图书
// @Description  只更新请求中携带的字段，ISBN变更时重新校验唯一性
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "待更新字段"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误或ISBN重复"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	b, err := h.bookService.UpdateBook(c.Request.Context(), id, req.ToParams())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "图书更新成功", dto.FromBook(b))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  存在未归还借阅的图书不能删除
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "存在未归还的借阅"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "图书已删除", nil)
}
