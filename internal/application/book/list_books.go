package book

import (
	"context"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 过滤、排序、分页由仓储完成，默认值在领域层ListParams.Normalize中处理
type ListBooksUseCase struct {
	bookService book.Service
}

func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksResult 列表结果
type ListBooksResult struct {
	Books    []*book.Book
	Total    int64
	Page     int
	PageSize int
}

func (uc *ListBooksUseCase) Execute(ctx context.Context, params book.ListParams) (*ListBooksResult, error) {
	books, total, normalized, err := uc.bookService.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return &ListBooksResult{
		Books:    books,
		Total:    total,
		Page:     normalized.Page,
		PageSize: normalized.PageSize,
	}, nil
}

// GetBookUseCase 图书详情
type GetBookUseCase struct {
	bookService book.Service
}

func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

func (uc *GetBookUseCase) Execute(ctx context.Context, id string) (*book.Book, error) {
	return uc.bookService.Get(ctx, id)
}

// FeaturedBooksUseCase 首页精选
type FeaturedBooksUseCase struct {
	bookService book.Service
}

func NewFeaturedBooksUseCase(bookService book.Service) *FeaturedBooksUseCase {
	return &FeaturedBooksUseCase{bookService: bookService}
}

func (uc *FeaturedBooksUseCase) Execute(ctx context.Context, limit int) ([]*book.Book, error) {
	return uc.bookService.Featured(ctx, limit)
}
