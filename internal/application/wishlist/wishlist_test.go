package wishlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/wishlist"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/persistence/memory"
)

type fixture struct {
	books     book.Repository
	wishlists wishlist.Repository
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{
		books:     memory.NewBookRepository(store),
		wishlists: memory.NewWishlistRepository(store),
	}
}

func (f *fixture) seed(t *testing.T, title string) *book.Book {
	t.Helper()
	b, err := book.NewBook(book.Attributes{
		Title: title, Author: "Author", Description: "Description",
		Category: book.CategoryHistory, Price: 100, Stock: 1,
	}, "seller")
	require.NoError(t, err)
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func TestAddToWishlist_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b := f.seed(t, "SPQR")
	add := NewAddToWishlistUseCase(f.wishlists, f.books)

	_, err := add.Execute(ctx, "u1", b.ID)
	require.NoError(t, err)
	res, err := add.Execute(ctx, "u1", b.ID)
	require.NoError(t, err)

	assert.Len(t, res.Wishlist.Items, 1)
	require.Len(t, res.Books, 1)
	assert.Equal(t, "SPQR", res.Books[0].Title)

	_, err = add.Execute(ctx, "u1", "missing")
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestToggleWishlist(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b := f.seed(t, "SPQR")
	toggle := NewToggleWishlistUseCase(f.wishlists, f.books)

	res, err := toggle.Execute(ctx, "u1", b.ID)
	require.NoError(t, err)
	assert.True(t, res.InWishlist(b.ID))

	res, err = toggle.Execute(ctx, "u1", b.ID)
	require.NoError(t, err)
	assert.False(t, res.InWishlist(b.ID))

	_, err = toggle.Execute(ctx, "u1", "missing")
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

// TestToggleWishlist_RemovesDeletedBook 图书删除后，未经读取清理的条目仍可切换移除
func TestToggleWishlist_RemovesDeletedBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	keep := f.seed(t, "Keep")
	gone := f.seed(t, "Gone")

	add := NewAddToWishlistUseCase(f.wishlists, f.books)
	_, err := add.Execute(ctx, "u1", gone.ID)
	require.NoError(t, err)
	_, err = add.Execute(ctx, "u1", keep.ID)
	require.NoError(t, err)

	require.NoError(t, f.books.Delete(ctx, gone.ID))

	toggle := NewToggleWishlistUseCase(f.wishlists, f.books)
	res, err := toggle.Execute(ctx, "u1", gone.ID)
	require.NoError(t, err)
	assert.False(t, res.InWishlist(gone.ID))
	assert.Equal(t, []string{keep.ID}, res.Wishlist.BookIDs())

	// 已移除后再次切换：不能添加不存在的图书
	_, err = toggle.Execute(ctx, "u1", gone.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestGetWishlist_DropsDeletedBooks(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	keep := f.seed(t, "Keep")
	gone := f.seed(t, "Gone")

	add := NewAddToWishlistUseCase(f.wishlists, f.books)
	_, err := add.Execute(ctx, "u1", gone.ID)
	require.NoError(t, err)
	_, err = add.Execute(ctx, "u1", keep.ID)
	require.NoError(t, err)

	require.NoError(t, f.books.Delete(ctx, gone.ID))

	res, err := NewGetWishlistUseCase(f.wishlists, f.books).Execute(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, res.Wishlist.BookIDs())

	stored, err := f.wishlists.FindOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, stored.BookIDs())
}

func TestRemoveAndClearWishlist(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a, b := f.seed(t, "A"), f.seed(t, "B")

	add := NewAddToWishlistUseCase(f.wishlists, f.books)
	_, err := add.Execute(ctx, "u1", a.ID)
	require.NoError(t, err)
	_, err = add.Execute(ctx, "u1", b.ID)
	require.NoError(t, err)

	res, err := NewRemoveFromWishlistUseCase(f.wishlists, f.books).Execute(ctx, "u1", a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, res.Wishlist.BookIDs())

	_, err = NewRemoveFromWishlistUseCase(f.wishlists, f.books).Execute(ctx, "u1", "not-there")
	require.NoError(t, err)

	require.NoError(t, NewClearWishlistUseCase(f.wishlists).Execute(ctx, "u1"))
	res, err = NewGetWishlistUseCase(f.wishlists, f.books).Execute(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, res.Wishlist.Items)
}
