package book

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
)

// PublishBookUseCase 图书上架用例（管理员）
// 业务规则校验（必填、分类、价格、ISBN重复）由领域服务负责
type PublishBookUseCase struct {
	bookService book.Service
}

func NewPublishBookUseCase(bookService book.Service) *PublishBookUseCase {
	return &PublishBookUseCase{bookService: bookService}
}

// PublishBookRequest 上架请求
type PublishBookRequest struct {
	SellerID   string // 从认证中间件获取
	Attributes book.Attributes
}

func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (*book.Book, error) {
	b, err := uc.bookService.Create(ctx, req.Attributes, req.SellerID)
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Str("book_id", b.ID).
		Str("seller_id", req.SellerID).
		Msg("book published")
	return b, nil
}

// UpdateBookUseCase 部分更新图书
type UpdateBookUseCase struct {
	bookService book.Service
}

func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, id string, patch book.Patch) (*book.Book, error) {
	return uc.bookService.Update(ctx, id, patch)
}

// DeleteBookUseCase 删除图书
// 已有订单保存的是快照，心愿单与购物车中的引用在读取时惰性处理
type DeleteBookUseCase struct {
	bookService book.Service
}

func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id string) error {
	if err := uc.bookService.Delete(ctx, id); err != nil {
		return err
	}

	log.Ctx(ctx).Info().Str("book_id", id).Msg("book deleted")
	return nil
}
