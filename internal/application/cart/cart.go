package cart

import (
	"context"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
)

// Result 购物车及其条目对应的图书（已删除的图书不在Books中）
type Result struct {
	Cart  *cart.Cart
	Books map[string]*book.Book
}

// store 购物车用例共享的依赖
// 所有写操作在用户级锁内完成"读-改-写"，避免并发丢失更新
type store struct {
	carts  cart.Repository
	books  book.Repository
	locker cart.Locker
}

// load 获取或创建购物车（不落库，首次写入时保存）
func (s *store) load(ctx context.Context, userID string) (*cart.Cart, error) {
	c, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cart.NewCart(userID)
	}
	return c, nil
}

// mutate 加锁 → 读取 → 修改 → 保存
func (s *store) mutate(ctx context.Context, userID string, fn func(c *cart.Cart) error) (*Result, error) {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := fn(c); err != nil {
		return nil, err
	}

	c.Recalculate()
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.populate(ctx, c)
}

// populate 批量查询条目图书
func (s *store) populate(ctx context.Context, c *cart.Cart) (*Result, error) {
	ids := make([]string, len(c.Items))
	for i, item := range c.Items {
		ids[i] = item.BookID
	}

	books, err := s.books.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*book.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	return &Result{Cart: c, Books: byID}, nil
}

// GetCartUseCase 查看购物车（不存在则创建）
type GetCartUseCase struct {
	store
}

func NewGetCartUseCase(carts cart.Repository, books book.Repository, locker cart.Locker) *GetCartUseCase {
	return &GetCartUseCase{store{carts: carts, books: books, locker: locker}}
}

func (uc *GetCartUseCase) Execute(ctx context.Context, userID string) (*Result, error) {
	c, err := uc.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return uc.mutate(ctx, userID, func(*cart.Cart) error { return nil })
	}
	return uc.populate(ctx, c)
}

// AddToCartUseCase 加入购物车
type AddToCartUseCase struct {
	store
}

func NewAddToCartUseCase(carts cart.Repository, books book.Repository, locker cart.Locker) *AddToCartUseCase {
	return &AddToCartUseCase{store{carts: carts, books: books, locker: locker}}
}

// AddToCartRequest Quantity为0时按1处理
type AddToCartRequest struct {
	UserID   string
	BookID   string
	Quantity int
}

// Execute 加入购物车
// 库存只校验本次请求数量，不累计购物车中已有数量；下单时会重新校验并原子扣减
func (uc *AddToCartUseCase) Execute(ctx context.Context, req AddToCartRequest) (*Result, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}

	// 1. 图书存在且库存满足本次数量
	b, err := uc.books.FindByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if !b.HasStock(req.Quantity) {
		return nil, book.ErrInsufficientStock
	}

	// 2. 加锁写入（已存在的条目保留首次加入时的价格）
	return uc.mutate(ctx, req.UserID, func(c *cart.Cart) error {
		return c.AddItem(b.ID, req.Quantity, b.Price)
	})
}

// UpdateCartItemUseCase 修改数量（绝对值）
type UpdateCartItemUseCase struct {
	store
}

func NewUpdateCartItemUseCase(carts cart.Repository, books book.Repository, locker cart.Locker) *UpdateCartItemUseCase {
	return &UpdateCartItemUseCase{store{carts: carts, books: books, locker: locker}}
}

func (uc *UpdateCartItemUseCase) Execute(ctx context.Context, userID, bookID string, quantity int) (*Result, error) {
	if quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}
	return uc.mutate(ctx, userID, func(c *cart.Cart) error {
		return c.UpdateQuantity(bookID, quantity)
	})
}

// RemoveCartItemUseCase 移除条目，不存在时不报错
type RemoveCartItemUseCase struct {
	store
}

func NewRemoveCartItemUseCase(carts cart.Repository, books book.Repository, locker cart.Locker) *RemoveCartItemUseCase {
	return &RemoveCartItemUseCase{store{carts: carts, books: books, locker: locker}}
}

func (uc *RemoveCartItemUseCase) Execute(ctx context.Context, userID, bookID string) (*Result, error) {
	return uc.mutate(ctx, userID, func(c *cart.Cart) error {
		c.RemoveItem(bookID)
		return nil
	})
}

// ClearCartUseCase 清空购物车
type ClearCartUseCase struct {
	store
}

func NewClearCartUseCase(carts cart.Repository, books book.Repository, locker cart.Locker) *ClearCartUseCase {
	return &ClearCartUseCase{store{carts: carts, books: books, locker: locker}}
}

func (uc *ClearCartUseCase) Execute(ctx context.Context, userID string) error {
	_, err := uc.mutate(ctx, userID, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
	return err
}
