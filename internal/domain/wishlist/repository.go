package wishlist

import (
	"context"
)

// Repository 心愿单仓储
// AddItem/Toggle必须是单次条件写入，不能拆成"先查后改"
type Repository interface {
	// FindOrCreate 获取用户心愿单，不存在则创建
	FindOrCreate(ctx context.Context, userID string) (*Wishlist, error)

	// Save 覆盖写入条目列表（惰性清理失效图书时使用）
	Save(ctx context.Context, w *Wishlist) error

	// AddItem 不存在时追加，已存在为空操作
	AddItem(ctx context.Context, userID, bookID string) error

	// RemoveItem 存在时移除，不存在为空操作
	RemoveItem(ctx context.Context, userID, bookID string) error

	// Toggle 存在则移除，否则追加；返回操作后是否在心愿单中
	Toggle(ctx context.Context, userID, bookID string) (bool, error)

	Clear(ctx context.Context, userID string) error
}
