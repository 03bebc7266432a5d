package review

import (
	"context"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/order"
	"github.com/krishivsaini/BookBazaar/internal/domain/review"
	"github.com/krishivsaini/BookBazaar/internal/domain/tx"
	"github.com/krishivsaini/BookBazaar/internal/domain/user"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
	"github.com/krishivsaini/BookBazaar/pkg/metrics"
	"github.com/krishivsaini/BookBazaar/pkg/tracing"
)

const tracerName = "bookbazaar/review"

// recomputeRating 按当前全部评论重算图书评分，只写评分字段
func recomputeRating(ctx context.Context, reviews review.Repository, books book.Repository, bookID string) error {
	ctx, span := tracing.StartSpan(ctx, tracerName, "RecomputeRating")
	defer span.End()

	stats, err := reviews.Stats(ctx, bookID)
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}

	err = books.UpdateRating(ctx, bookID, stats.Average(), stats.Count)
	tracing.RecordError(span, err)
	return err
}

// AddReviewUseCase 发表评论
type AddReviewUseCase struct {
	txManager tx.Manager
	reviews   review.Repository
	books     book.Repository
	orders    order.Repository
	users     user.Repository
}

func NewAddReviewUseCase(
	txManager tx.Manager,
	reviews review.Repository,
	books book.Repository,
	orders order.Repository,
	users user.Repository,
) *AddReviewUseCase {
	return &AddReviewUseCase{
		txManager: txManager,
		reviews:   reviews,
		books:     books,
		orders:    orders,
		users:     users,
	}
}

type AddReviewRequest struct {
	UserID  string
	BookID  string
	Rating  int
	Title   string
	Comment string
}

// Execute 发表评论
// 1. 图书必须存在
// 2. 同一用户对同一本书只能评论一次（先查，唯一索引兜底）
// 3. 有已送达订单包含此书则标记为已验证购买
// 4. 写入评论与重算评分在同一事务中
func (uc *AddReviewUseCase) Execute(ctx context.Context, req AddReviewRequest) (*review.Review, error) {
	if _, err := uc.books.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	if _, err := uc.reviews.FindByUserAndBook(ctx, req.UserID, req.BookID); err == nil {
		return nil, review.ErrDuplicateReview
	} else if apperrors.Code(err) != apperrors.ErrCodeReviewNotFound {
		return nil, err
	}

	author, err := uc.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	verified, err := uc.orders.HasDelivered(ctx, req.UserID, req.BookID)
	if err != nil {
		return nil, err
	}

	r, err := review.NewReview(req.UserID, author.Name, req.BookID, req.Rating, req.Title, req.Comment, verified)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.reviews.Create(ctx, r); err != nil {
			return err
		}
		return recomputeRating(ctx, uc.reviews, uc.books, req.BookID)
	})
	if err != nil {
		return nil, err
	}

	metrics.ReviewsCreatedTotal.Inc()
	return r, nil
}

// ListReviewsUseCase 某本书的评论，最新优先
type ListReviewsUseCase struct {
	reviews review.Repository
}

func NewListReviewsUseCase(reviews review.Repository) *ListReviewsUseCase {
	return &ListReviewsUseCase{reviews: reviews}
}

const DefaultPageSize = 10

type ListReviewsResult struct {
	Reviews  []*review.Review
	Total    int64
	Page     int
	PageSize int
}

func (uc *ListReviewsUseCase) Execute(ctx context.Context, bookID string, page, pageSize int) (*ListReviewsResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > 100 {
		pageSize = 100
	}

	reviews, total, err := uc.reviews.ListByBook(ctx, bookID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ListReviewsResult{Reviews: reviews, Total: total, Page: page, PageSize: pageSize}, nil
}

// UpdateReviewUseCase 修改评论（仅作者本人）
type UpdateReviewUseCase struct {
	txManager tx.Manager
	reviews   review.Repository
	books     book.Repository
}

func NewUpdateReviewUseCase(txManager tx.Manager, reviews review.Repository, books book.Repository) *UpdateReviewUseCase {
	return &UpdateReviewUseCase{txManager: txManager, reviews: reviews, books: books}
}

func (uc *UpdateReviewUseCase) Execute(ctx context.Context, reviewID, callerID string, patch review.Patch) (*review.Review, error) {
	r, err := uc.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !r.IsOwnedBy(callerID) {
		return nil, apperrors.ErrForbidden
	}
	if err := r.Apply(patch); err != nil {
		return nil, err
	}

	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.reviews.Update(ctx, r); err != nil {
			return err
		}
		return recomputeRating(ctx, uc.reviews, uc.books, r.BookID)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteReviewUseCase 删除评论（作者或管理员）
type DeleteReviewUseCase struct {
	txManager tx.Manager
	reviews   review.Repository
	books     book.Repository
}

func NewDeleteReviewUseCase(txManager tx.Manager, reviews review.Repository, books book.Repository) *DeleteReviewUseCase {
	return &DeleteReviewUseCase{txManager: txManager, reviews: reviews, books: books}
}

// Execute 删除后重算评分，没有评论时归零
// 图书已被删除时跳过重算
func (uc *DeleteReviewUseCase) Execute(ctx context.Context, reviewID, callerID string, callerIsAdmin bool) error {
	r, err := uc.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !r.IsOwnedBy(callerID) && !callerIsAdmin {
		return apperrors.ErrForbidden
	}

	return uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.reviews.Delete(ctx, reviewID); err != nil {
			return err
		}
		err := recomputeRating(ctx, uc.reviews, uc.books, r.BookID)
		if apperrors.Code(err) == apperrors.ErrCodeBookNotFound {
			return nil
		}
		return err
	})
}

// MarkHelpfulUseCase 点赞+1
type MarkHelpfulUseCase struct {
	reviews review.Repository
}

func NewMarkHelpfulUseCase(reviews review.Repository) *MarkHelpfulUseCase {
	return &MarkHelpfulUseCase{reviews: reviews}
}

func (uc *MarkHelpfulUseCase) Execute(ctx context.Context, reviewID string) (*review.Review, error) {
	if err := uc.reviews.IncrementHelpful(ctx, reviewID); err != nil {
		return nil, err
	}
	return uc.reviews.FindByID(ctx, reviewID)
}
