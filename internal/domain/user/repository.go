package user

import (
	"context"
	"time"
)

// Repository 用户仓储接口
// 具体实现在infrastructure/persistence下（mysql/mongo/memory）
type Repository interface {
	// Create 邮箱已存在返回errors.ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在返回errors.ErrUserNotFound
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail 不存在返回errors.ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	Update(ctx context.Context, user *User) error
}

// SessionStore 登录会话与Token黑名单
type SessionStore interface {
	// Save 记录用户会话（刷新Token），ttl后过期
	Save(ctx context.Context, userID, refreshToken string, ttl time.Duration) error

	// Delete 删除会话
	Delete(ctx context.Context, userID string) error

	// Revoke 拉黑访问Token直到其过期
	Revoke(ctx context.Context, token string, ttl time.Duration) error

	// IsRevoked 访问Token是否已注销
	IsRevoked(ctx context.Context, token string) (bool, error)
}
