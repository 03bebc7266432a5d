package order

import (
	"context"
)

// Repository 订单仓储接口
type Repository interface {
	// Create 创建订单（包含明细）
	Create(ctx context.Context, order *Order) error

	// FindByID 不存在返回ErrOrderNotFound
	FindByID(ctx context.Context, id string) (*Order, error)

	// Update 只保存状态相关字段
	Update(ctx context.Context, order *Order) error

	// Delete 仅用于下单失败时的补偿
	Delete(ctx context.Context, id string) error

	// ListByUser 最新优先
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*Order, int64, error)

	// List 管理端查询，Status为空表示不过滤
	List(ctx context.Context, filter ListFilter, page, pageSize int) ([]*Order, int64, error)

	// HasDelivered 用户是否有包含该书且已送达的订单
	HasDelivered(ctx context.Context, userID, bookID string) (bool, error)
}

// ListFilter 管理端过滤条件
type ListFilter struct {
	Status Status
}

const DefaultPageSize = 10

// NormalizePage 分页默认值
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
