package wishlist

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/wishlist"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

// Result 心愿单与按条目顺序排列的图书
type Result struct {
	Wishlist *wishlist.Wishlist
	Books    []*book.Book
}

// InWishlist 某本书是否在心愿单中
func (r *Result) InWishlist(bookID string) bool {
	return r.Wishlist.Contains(bookID)
}

type store struct {
	wishlists wishlist.Repository
	books     book.Repository
}

// load 读取心愿单并清理已删除的图书（有变化时才写回）
func (s *store) load(ctx context.Context, userID string) (*Result, error) {
	w, err := s.wishlists.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	books, err := s.books.FindByIDs(ctx, w.BookIDs())
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*book.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	alive := make(map[string]bool, len(byID))
	for id := range byID {
		alive[id] = true
	}
	if w.Retain(alive) {
		if err := s.wishlists.Save(ctx, w); err != nil {
			return nil, err
		}
		log.Ctx(ctx).Debug().Str("user_id", userID).Msg("removed deleted books from wishlist")
	}

	ordered := make([]*book.Book, 0, len(w.Items))
	for _, item := range w.Items {
		ordered = append(ordered, byID[item.BookID])
	}
	return &Result{Wishlist: w, Books: ordered}, nil
}

// GetWishlistUseCase 查看心愿单
type GetWishlistUseCase struct {
	store
}

func NewGetWishlistUseCase(wishlists wishlist.Repository, books book.Repository) *GetWishlistUseCase {
	return &GetWishlistUseCase{store{wishlists: wishlists, books: books}}
}

func (uc *GetWishlistUseCase) Execute(ctx context.Context, userID string) (*Result, error) {
	return uc.load(ctx, userID)
}

// AddToWishlistUseCase 收藏（重复收藏忽略）
type AddToWishlistUseCase struct {
	store
}

func NewAddToWishlistUseCase(wishlists wishlist.Repository, books book.Repository) *AddToWishlistUseCase {
	return &AddToWishlistUseCase{store{wishlists: wishlists, books: books}}
}

func (uc *AddToWishlistUseCase) Execute(ctx context.Context, userID, bookID string) (*Result, error) {
	if _, err := uc.books.FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	if err := uc.wishlists.AddItem(ctx, userID, bookID); err != nil {
		return nil, err
	}
	return uc.load(ctx, userID)
}

// RemoveFromWishlistUseCase 取消收藏
type RemoveFromWishlistUseCase struct {
	store
}

func NewRemoveFromWishlistUseCase(wishlists wishlist.Repository, books book.Repository) *RemoveFromWishlistUseCase {
	return &RemoveFromWishlistUseCase{store{wishlists: wishlists, books: books}}
}

func (uc *RemoveFromWishlistUseCase) Execute(ctx context.Context, userID, bookID string) (*Result, error) {
	if err := uc.wishlists.RemoveItem(ctx, userID, bookID); err != nil {
		return nil, err
	}
	return uc.load(ctx, userID)
}

// ToggleWishlistUseCase 切换收藏状态
type ToggleWishlistUseCase struct {
	store
}

func NewToggleWishlistUseCase(wishlists wishlist.Repository, books book.Repository) *ToggleWishlistUseCase {
	return &ToggleWishlistUseCase{store{wishlists: wishlists, books: books}}
}

// Execute 返回切换后的心愿单
// 图书不存在时：心愿单中残留的条目照常移除，否则返回ErrBookNotFound
func (uc *ToggleWishlistUseCase) Execute(ctx context.Context, userID, bookID string) (*Result, error) {
	if _, err := uc.books.FindByID(ctx, bookID); err != nil {
		if apperrors.Code(err) != apperrors.ErrCodeBookNotFound {
			return nil, err
		}
		w, findErr := uc.wishlists.FindOrCreate(ctx, userID)
		if findErr != nil {
			return nil, findErr
		}
		if !w.Contains(bookID) {
			return nil, err
		}
		if err := uc.wishlists.RemoveItem(ctx, userID, bookID); err != nil {
			return nil, err
		}
		return uc.load(ctx, userID)
	}

	if _, err := uc.wishlists.Toggle(ctx, userID, bookID); err != nil {
		return nil, err
	}
	return uc.load(ctx, userID)
}

// ClearWishlistUseCase 清空心愿单
type ClearWishlistUseCase struct {
	wishlists wishlist.Repository
}

func NewClearWishlistUseCase(wishlists wishlist.Repository) *ClearWishlistUseCase {
	return &ClearWishlistUseCase{wishlists: wishlists}
}

func (uc *ClearWishlistUseCase) Execute(ctx context.Context, userID string) error {
	return uc.wishlists.Clear(ctx, userID)
}
