package memory

import (
	"context"
	"time"

	"github.com/krishivsaini/BookBazaar/internal/domain/wishlist"
)

type wishlistRepository struct {
	store *Store
}

func NewWishlistRepository(store *Store) wishlist.Repository {
	return &wishlistRepository{store: store}
}

// ensure 调用方需持有写锁
func (r *wishlistRepository) ensure(userID string) *wishlist.Wishlist {
	w, ok := r.store.wishlists[userID]
	if !ok {
		w = wishlist.NewWishlist(userID)
		r.store.wishlists[userID] = w
	}
	return w
}

func (r *wishlistRepository) FindOrCreate(ctx context.Context, userID string) (*wishlist.Wishlist, error) {
	defer r.store.write(ctx)()
	return cloneWishlist(r.ensure(userID)), nil
}

func (r *wishlistRepository) Save(ctx context.Context, w *wishlist.Wishlist) error {
	defer r.store.write(ctx)()

	existing := r.ensure(w.UserID)
	existing.Items = append([]wishlist.Item{}, w.Items...)
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *wishlistRepository) AddItem(ctx context.Context, userID, bookID string) error {
	defer r.store.write(ctx)()

	w := r.ensure(userID)
	if !w.Contains(bookID) {
		w.Items = append(w.Items, wishlist.Item{BookID: bookID, AddedAt: time.Now()})
		w.UpdatedAt = time.Now()
	}
	return nil
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, userID, bookID string) error {
	defer r.store.write(ctx)()

	w := r.ensure(userID)
	removeWishlistItem(w, bookID)
	return nil
}

func (r *wishlistRepository) Toggle(ctx context.Context, userID, bookID string) (bool, error) {
	defer r.store.write(ctx)()

	w := r.ensure(userID)
	if removeWishlistItem(w, bookID) {
		return false, nil
	}
	w.Items = append(w.Items, wishlist.Item{BookID: bookID, AddedAt: time.Now()})
	w.UpdatedAt = time.Now()
	return true, nil
}

func (r *wishlistRepository) Clear(ctx context.Context, userID string) error {
	defer r.store.write(ctx)()

	w := r.ensure(userID)
	w.Items = []wishlist.Item{}
	w.UpdatedAt = time.Now()
	return nil
}

func removeWishlistItem(w *wishlist.Wishlist, bookID string) bool {
	for i, item := range w.Items {
		if item.BookID == bookID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			w.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}
