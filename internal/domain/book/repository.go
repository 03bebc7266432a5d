package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义接口，mysql/mongo/memory三种实现
type Repository interface {
	// Create 创建图书，ISBN重复返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id string) (*Book, error)

	// FindByIDs 批量查询，不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []string) ([]*Book, error)

	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 保存目录字段（不包含评分聚合字段）
	Update(ctx context.Context, book *Book) error

	Delete(ctx context.Context, id string) error

	// List 过滤+排序+分页，返回当前页与总数
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Featured 精选图书，按评分降序
	Featured(ctx context.Context, limit int) ([]*Book, error)

	// UpdateRating 仅写入评分聚合字段
	UpdateRating(ctx context.Context, id string, average float64, count int) error

	// ReserveStock 原子扣减库存（stock >= qty 时才扣减）
	// 库存不足返回ErrInsufficientStock，图书不存在返回ErrBookNotFound
	ReserveStock(ctx context.Context, id string, quantity int) error

	// ReleaseStock 归还库存
	ReleaseStock(ctx context.Context, id string, quantity int) error
}
