package memory

import (
	"context"
	"sync"
	"time"

	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
)

type cartRepository struct {
	store *Store
}

func NewCartRepository(store *Store) cart.Repository {
	return &cartRepository{store: store}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.carts[userID]
	if !ok {
		return nil, nil
	}
	return cloneCart(c), nil
}

func (r *cartRepository) Save(ctx context.Context, c *cart.Cart) error {
	defer r.store.write(ctx)()

	if existing, ok := r.store.carts[c.UserID]; ok {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
	}
	r.store.carts[c.UserID] = cloneCart(c)
	return nil
}

// Locker 进程内用户级互斥锁
type Locker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
	wait  time.Duration
}

// NewLocker wait为获取锁的最长等待时间
func NewLocker(wait time.Duration) *Locker {
	return &Locker{locks: make(map[string]chan struct{}), wait: wait}
}

func (l *Locker) Lock(ctx context.Context, userID string) (func(), error) {
	l.mu.Lock()
	ch, ok := l.locks[userID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[userID] = ch
	}
	l.mu.Unlock()

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-timer.C:
		return nil, cart.ErrCartBusy
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
