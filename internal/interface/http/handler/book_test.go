package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBookService 按方法打桩的图书服务
type fakeBookService struct {
	createBook func(ctx context.Context, isbn, title, author string, copies *int) (*book.Book, error)
	getByID    func(ctx context.Context, id uint) (*book.Book, error)
	getByISBN  func(ctx context.Context, isbn string) (*book.Book, error)
	list       func(ctx context.Context) ([]*book.Book, error)
	search     func(ctx context.Context, query string) ([]*book.Book, error)
	update     func(ctx context.Context, id uint, params book.UpdateParams) (*book.Book, error)
}

func (s *fakeBookService) CreateBook(ctx context.Context, isbn, title, author string, copies *int) (*book.Book, error) {
	return s.createBook(ctx, isbn, title, author, copies)
}
func (s *fakeBookService) GetBookByID(ctx context.Context, id uint) (*book.Book, error) {
	return s.getByID(ctx, id)
}
func (s *fakeBookService) GetBookByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return s.getByISBN(ctx, isbn)
}
func (s *fakeBookService) ListBooks(ctx context.Context) ([]*book.Book, error) {
	return s.list(ctx)
}
func (s *fakeBookService) SearchBooks(ctx context.Context, query string) ([]*book.Book, error) {
	return s.search(ctx, query)
}
func (s *fakeBookService) UpdateBook(ctx context.Context, id uint, params book.UpdateParams) (*book.Book, error) {
	return s.update(ctx, id, params)
}

// stubTxManager 直接执行事务体
type stubTxManager struct{}

func (stubTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubBookRepo 删除路径用的最小仓储
type stubBookRepo struct {
	book        *book.Book
	deleteCalls int
}

func (r *stubBookRepo) LockByID(_ context.Context, id uint) (*book.Book, error) {
	if r.book == nil || r.book.ID != id {
		return nil, book.ErrBookNotFound
	}
	return r.book, nil
}
func (r *stubBookRepo) Delete(_ context.Context, _ uint) error {
	r.deleteCalls++
	return nil
}
func (r *stubBookRepo) Create(context.Context, *book.Book) error { panic("not implemented") }
func (r *stubBookRepo) FindByID(context.Context, uint) (*book.Book, error) {
	panic("not implemented")
}
func (r *stubBookRepo) FindByISBN(context.Context, string) (*book.Book, error) {
	panic("not implemented")
}
func (r *stubBookRepo) FindAll(context.Context) ([]*book.Book, error) { panic("not implemented") }
func (r *stubBookRepo) Search(context.Context, string) ([]*book.Book, error) {
	panic("not implemented")
}
func (r *stubBookRepo) Update(context.Context, *book.Book) error { panic("not implemented") }

// stubLoanRepo 只提供借出计数
type stubLoanRepo struct {
	activeCount int64
}

func (r *stubLoanRepo) CountActiveByBook(context.Context, uint) (int64, error) {
	return r.activeCount, nil
}
func (r *stubLoanRepo) Create(context.Context, *loan.Loan) error { panic("not implemented") }
func (r *stubLoanRepo) FindByID(context.Context, uint) (*loan.Loan, error) {
	panic("not implemented")
}
func (r *stubLoanRepo) FindDetailByID(context.Context, uint) (*loan.Detail, error) {
	panic("not implemented")
}
func (r *stubLoanRepo) LockByID(context.Context, uint) (*loan.Loan, error) {
	panic("not implemented")
}
func (r *stubLoanRepo) FindAll(context.Context, *loan.Status) ([]*loan.Detail, error) {
	panic("not implemented")
}
func (r *stubLoanRepo) FindByMember(context.Context, uint, bool) ([]*loan.Detail, error) {
	panic("not implemented")
}
func (r *stubLoanRepo) Update(context.Context, *loan.Loan) error { panic("not implemented") }
func (r *stubLoanRepo) Delete(context.Context, uint) error       { panic("not implemented") }
func (r *stubLoanRepo) CountActiveByMember(context.Context, uint) (int64, error) {
	panic("not implemented")
}
func (r *stubLoanRepo) HasActiveLoan(context.Context, uint, uint) (bool, error) {
	panic("not implemented")
}
func (r *stubLoanRepo) SweepOverdue(context.Context, time.Time) (int64, error) {
	panic("not implemented")
}
func (r *stubLoanRepo) FindOverdue(context.Context, time.Time) ([]*loan.Detail, error) {
	panic("not implemented")
}
func (r *stubLoanRepo) GetStats(context.Context, time.Time) (*loan.Stats, error) {
	panic("not implemented")
}

func newBookRouter(svc book.Service, deleteUC *appbook.DeleteBookUseCase) *gin.Engine {
	h := NewBookHandler(svc, deleteUC)
	r := gin.New()
	r.POST("/books", h.CreateBook)
	r.GET("/books", h.ListBooks)
	r.GET("/books/:id", h.GetBook)
	r.DELETE("/books/:id", h.DeleteBook)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

// TestBookHandler_CreateBook 测试图书登记接口
func TestBookHandler_CreateBook(t *testing.T) {
	t.Run("登记成功返回201", func(t *testing.T) {
		svc := &fakeBookService{
			createBook: func(_ context.Context, isbn, title, author string, copies *int) (*book.Book, error) {
				assert.Nil(t, copies)
				return &book.Book{ID: 1, ISBN: isbn, Title: title, Author: author, Copies: 1}, nil
			},
		}
		r := newBookRouter(svc, nil)

		w, body := doJSON(t, r, http.MethodPost, "/books",
			`{"isbn":"9787115428028","title":"Go语言实战","author":"威廉·肯尼迪"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, true, body["success"])

		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["id"])
		assert.Equal(t, float64(1), data["copies"])
	})

	t.Run("缺少必填字段返回400", func(t *testing.T) {
		r := newBookRouter(&fakeBookService{}, nil)

		w, body := doJSON(t, r, http.MethodPost, "/books", `{"title":"Go语言实战"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("ISBN重复返回400", func(t *testing.T) {
		svc := &fakeBookService{
			createBook: func(context.Context, string, string, string, *int) (*book.Book, error) {
				return nil, book.ErrISBNDuplicate
			},
		}
		r := newBookRouter(svc, nil)

		w, body := doJSON(t, r, http.MethodPost, "/books",
			`{"isbn":"9787115428028","title":"Go语言实战","author":"威廉·肯尼迪"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ISBN号已存在", body["message"])
	})
}

// TestBookHandler_GetBook 测试查询接口
func TestBookHandler_GetBook(t *testing.T) {
	t.Run("不存在返回404", func(t *testing.T) {
		svc := &fakeBookService{
			getByID: func(context.Context, uint) (*book.Book, error) {
				return nil, book.ErrBookNotFound
			},
		}
		r := newBookRouter(svc, nil)

		w, body := doJSON(t, r, http.MethodGet, "/books/42", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("非数字ID返回400", func(t *testing.T) {
		r := newBookRouter(&fakeBookService{}, nil)

		w, _ := doJSON(t, r, http.MethodGet, "/books/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestBookHandler_ListBooks 测试列表接口
func TestBookHandler_ListBooks(t *testing.T) {
	svc := &fakeBookService{
		list: func(context.Context) ([]*book.Book, error) {
			return []*book.Book{
				{ID: 1, Title: "Go语言实战"},
				{ID: 2, Title: "算法导论"},
			}, nil
		},
	}
	r := newBookRouter(svc, nil)

	w, body := doJSON(t, r, http.MethodGet, "/books", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["data"], 2)
}

// TestBookHandler_DeleteBook 测试删除接口的守卫
func TestBookHandler_DeleteBook(t *testing.T) {
	t.Run("存在在借记录返回400", func(t *testing.T) {
		bookRepo := &stubBookRepo{book: &book.Book{ID: 1}}
		deleteUC := appbook.NewDeleteBookUseCase(bookRepo, &stubLoanRepo{activeCount: 1}, stubTxManager{})
		r := newBookRouter(&fakeBookService{}, deleteUC)

		w, body := doJSON(t, r, http.MethodDelete, "/books/1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Zero(t, bookRepo.deleteCalls)
	})

	t.Run("无在借记录删除成功", func(t *testing.T) {
		bookRepo := &stubBookRepo{book: &book.Book{ID: 1}}
		deleteUC := appbook.NewDeleteBookUseCase(bookRepo, &stubLoanRepo{}, stubTxManager{})
		r := newBookRouter(&fakeBookService{}, deleteUC)

		w, body := doJSON(t, r, http.MethodDelete, "/books/1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, 1, bookRepo.deleteCalls)
	})
}
