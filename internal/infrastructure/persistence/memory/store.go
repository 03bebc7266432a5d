// Package memory 进程内存储实现
//
// 用于本地开发(database.driver=memory)和单元测试。所有数据在一把读写锁下，
// 读写时复制实体，调用方拿到的对象与存储互不影响。
package memory

import (
	"context"
	"sync"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
	"github.com/krishivsaini/BookBazaar/internal/domain/order"
	"github.com/krishivsaini/BookBazaar/internal/domain/review"
	"github.com/krishivsaini/BookBazaar/internal/domain/tx"
	"github.com/krishivsaini/BookBazaar/internal/domain/user"
	"github.com/krishivsaini/BookBazaar/internal/domain/wishlist"
)

// Store 内存数据集
type Store struct {
	mu        sync.RWMutex
	books     map[string]*book.Book
	carts     map[string]*cart.Cart // key: userID
	wishlists map[string]*wishlist.Wishlist
	reviews   map[string]*review.Review
	orders    map[string]*order.Order
	users     map[string]*user.User

	txMu sync.Mutex
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{
		books:     make(map[string]*book.Book),
		carts:     make(map[string]*cart.Cart),
		wishlists: make(map[string]*wishlist.Wishlist),
		reviews:   make(map[string]*review.Review),
		orders:    make(map[string]*order.Order),
		users:     make(map[string]*user.User),
	}
}

type snapshot struct {
	books     map[string]*book.Book
	carts     map[string]*cart.Cart
	wishlists map[string]*wishlist.Wishlist
	reviews   map[string]*review.Review
	orders    map[string]*order.Order
	users     map[string]*user.User
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		books:     cloneMap(s.books, cloneBook),
		carts:     cloneMap(s.carts, cloneCart),
		wishlists: cloneMap(s.wishlists, cloneWishlist),
		reviews:   cloneMap(s.reviews, cloneReview),
		orders:    cloneMap(s.orders, cloneOrder),
		users:     cloneMap(s.users, cloneUser),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books, s.carts, s.wishlists = snap.books, snap.carts, snap.wishlists
	s.reviews, s.orders, s.users = snap.reviews, snap.orders, snap.users
}

type txKey struct{}

// write 写锁
// 事务外的写入先拿txMu，与事务串行，回滚快照不会覆盖并发写入；事务内只拿数据锁
func (s *Store) write(ctx context.Context) func() {
	if ctx.Value(txKey{}) == nil {
		s.txMu.Lock()
		s.mu.Lock()
		return func() {
			s.mu.Unlock()
			s.txMu.Unlock()
		}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// TxManager 内存事务：事务之间以及与事务外写入串行，fn出错时恢复到开始前的快照
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Transaction 嵌套调用复用外层事务
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	ctx, commit := tx.Scope(ctx)
	snap := m.store.snapshot()
	err := fn(context.WithValue(ctx, txKey{}, struct{}{}))
	if err != nil {
		m.store.restore(snap)
	}
	m.store.txMu.Unlock()

	if err != nil {
		return err
	}
	commit()
	return nil
}

// =========================================
// 复制
// =========================================

func cloneMap[T any](src map[string]*T, clone func(*T) *T) map[string]*T {
	dst := make(map[string]*T, len(src))
	for k, v := range src {
		dst[k] = clone(v)
	}
	return dst
}

func cloneBook(b *book.Book) *book.Book {
	c := *b
	c.Images = append([]string(nil), b.Images...)
	if b.PublishedDate != nil {
		d := *b.PublishedDate
		c.PublishedDate = &d
	}
	return &c
}

func cloneCart(c *cart.Cart) *cart.Cart {
	cp := *c
	cp.Items = append([]cart.Item{}, c.Items...)
	return &cp
}

func cloneWishlist(w *wishlist.Wishlist) *wishlist.Wishlist {
	cp := *w
	cp.Items = append([]wishlist.Item{}, w.Items...)
	return &cp
}

func cloneReview(r *review.Review) *review.Review {
	cp := *r
	return &cp
}

func cloneOrder(o *order.Order) *order.Order {
	cp := *o
	cp.Items = append([]order.Item{}, o.Items...)
	return &cp
}

func cloneUser(u *user.User) *user.User {
	cp := *u
	return &cp
}

// paginate 对已排序切片分页
func paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) || start < 0 {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
