package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/krishivsaini/BookBazaar/internal/application/book"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/dto"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/middleware"
	"github.com/krishivsaini/BookBazaar/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooks   *appbook.ListBooksUseCase
	getBook     *appbook.GetBookUseCase
	featured    *appbook.FeaturedBooksUseCase
	publishBook *appbook.PublishBookUseCase
	updateBook  *appbook.UpdateBookUseCase
	deleteBook  *appbook.DeleteBookUseCase
}

func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	getBook *appbook.GetBookUseCase,
	featured *appbook.FeaturedBooksUseCase,
	publishBook *appbook.PublishBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:   listBooks,
		getBook:     getBook,
		featured:    featured,
		publishBook: publishBook,
		updateBook:  updateBook,
		deleteBook:  deleteBook,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  过滤、排序、分页。category支持逗号分隔；sort: latest | price-asc | price-desc | rating | rating-desc
// @Tags         图书
// @Produce      json
// @Param        category query string  false "分类"
// @Param        minPrice query number  false "最低价"
// @Param        maxPrice query number  false "最高价"
// @Param        rating   query number  false "最低评分"
// @Param        search   query string  false "关键字"
// @Param        author   query string  false "作者"
// @Param        sort     query string  false "排序"
// @Param        page     query int     false "页码"
// @Param        limit    query int     false "每页数量(默认12，最大100)"
// @Success      200 {object} response.PageData{items=[]dto.BookResponse}
// @Failure      400 {object} response.ErrorBody
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.ListBooksQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.listBooks.Execute(c.Request.Context(), q.ToParams())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewBookResponses(result.Books), result.Total, result.Page, result.PageSize)
}

// FeaturedBooks 推荐图书
// @Summary      推荐图书
// @Tags         图书
// @Produce      json
// @Param        limit query int false "数量(默认8，最大50)"
// @Success      200 {array} dto.BookResponse
// @Router       /api/books/featured [get]
func (h *BookHandler) FeaturedBooks(c *gin.Context) {
	books, err := h.featured.Execute(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponses(books))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书ID"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	b, err := h.getBook.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// PublishBook 新增图书（管理员）
// @Summary      新增图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorBody "参数错误/ISBN已存在"
// @Failure      401 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Router       /api/books [post]
func (h *BookHandler) PublishBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.publishBook.Execute(c.Request.Context(), appbook.PublishBookRequest{
		SellerID:   middleware.MustGetUserID(c),
		Attributes: req.ToAttributes(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewBookResponse(b))
}

// UpdateBook 修改图书（管理员），只更新请求中出现的字段
// @Summary      修改图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                true "图书ID"
// @Param        request body dto.UpdateBookRequest true "需要修改的字段"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req dto.UpdateBookRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.updateBook.Execute(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// DeleteBook 删除图书（管理员）
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书ID"
// @Success      200 {object} response.MessageBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.deleteBook.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Book removed")
}
