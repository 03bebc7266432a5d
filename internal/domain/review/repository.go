package review

import (
	"context"
)

// Repository 评论仓储
type Repository interface {
	// Create 同一用户对同一本书重复评论返回ErrDuplicateReview（唯一索引）
	Create(ctx context.Context, r *Review) error

	FindByID(ctx context.Context, id string) (*Review, error)

	// FindByUserAndBook 不存在返回ErrReviewNotFound
	FindByUserAndBook(ctx context.Context, userID, bookID string) (*Review, error)

	// Update 保存rating/title/comment
	Update(ctx context.Context, r *Review) error

	Delete(ctx context.Context, id string) error

	// ListByBook 最新优先，分页
	ListByBook(ctx context.Context, bookID string, page, pageSize int) ([]*Review, int64, error)

	// Stats 汇总某本书当前全部评论
	Stats(ctx context.Context, bookID string) (Stats, error)

	// IncrementHelpful 原子+1
	IncrementHelpful(ctx context.Context, id string) error
}
