// Package tx 事务抽象
//
// 仓储实现从ctx中取出事务句柄；不支持事务的存储直接执行fn。
package tx

import (
	"context"
)

// Manager 事务管理器
type Manager interface {
	// Transaction fn返回错误时回滚，否则提交
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ManagerFunc 函数适配器
type ManagerFunc func(ctx context.Context, fn func(ctx context.Context) error) error

func (f ManagerFunc) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// NoTx 直接执行，不开启事务
var NoTx Manager = ManagerFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
})
