package tx

import (
	"context"
	"sync"
)

type hooksKey struct{}

type hooks struct {
	mu  sync.Mutex
	fns []func(ctx context.Context)
}

// Scope 为最外层事务创建提交后回调队列
// 返回的commit在提交成功后调用；已处于事务中时commit为空操作，回调挂到外层事务
func Scope(ctx context.Context) (context.Context, func()) {
	if _, ok := ctx.Value(hooksKey{}).(*hooks); ok {
		return ctx, func() {}
	}

	parent := ctx
	h := &hooks{}
	return context.WithValue(ctx, hooksKey{}, h), func() {
		h.mu.Lock()
		fns := h.fns
		h.fns = nil
		h.mu.Unlock()

		for _, fn := range fns {
			fn(parent)
		}
	}
}

// AfterCommit 事务提交后执行fn；回滚时丢弃
// 不在事务中时立即执行
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	h, ok := ctx.Value(hooksKey{}).(*hooks)
	if !ok {
		fn(ctx)
		return
	}
	h.mu.Lock()
	h.fns = append(h.fns, fn)
	h.mu.Unlock()
}
