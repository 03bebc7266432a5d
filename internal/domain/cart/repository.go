package cart

import (
	"context"
)

// Repository 购物车仓储
type Repository interface {
	// FindByUserID 不存在时返回(nil, nil)，由调用方决定是否创建
	FindByUserID(ctx context.Context, userID string) (*Cart, error)

	// Save 按UserID整体写入（upsert）
	Save(ctx context.Context, cart *Cart) error
}

// Locker 用户级互斥锁，保护购物车的读-改-写
// Lock返回的unlock必须调用；等待超时返回ErrCartBusy
type Locker interface {
	Lock(ctx context.Context, userID string) (unlock func(), err error)
}
