package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
	"github.com/krishivsaini/BookBazaar/internal/domain/tx"
)

func seedBook(t *testing.T, repo book.Repository, stock int) *book.Book {
	t.Helper()
	b, err := book.NewBook(book.Attributes{
		Title: "Dune", Author: "Frank Herbert", Description: "Desert planet",
		Category: book.CategoryFantasy, Price: 10000, Stock: stock,
	}, "seller")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

// TestReserveStock_NoOversell 并发扣减不会出现负库存
func TestReserveStock_NoOversell(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(NewStore())
	b := seedBook(t, repo, 5)

	var ok int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.ReserveStock(ctx, b.ID, 1) == nil {
				atomic.AddInt32(&ok, 1)
			}
		}()
	}
	wg.Wait()

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(5), ok)
	assert.Equal(t, 0, got.Stock)

	assert.ErrorIs(t, repo.ReserveStock(ctx, b.ID, 1), book.ErrInsufficientStock)
	assert.ErrorIs(t, repo.ReserveStock(ctx, "missing", 1), book.ErrBookNotFound)
}

func TestBookRepository_UpdateKeepsRating(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(NewStore())
	b := seedBook(t, repo, 1)

	require.NoError(t, repo.UpdateRating(ctx, b.ID, 4.5, 2))

	b.Title = "Dune Messiah"
	require.NoError(t, repo.Update(ctx, b))

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)
	assert.Equal(t, 4.5, got.RatingAverage)
	assert.Equal(t, 2, got.ReviewCount)
}

func TestBookRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(NewStore())
	b := seedBook(t, repo, 3)

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	got.Stock = 99

	again, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Stock)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewBookRepository(store)
	b := seedBook(t, repo, 5)

	boom := errors.New("boom")
	err := NewTxManager(store).Transaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.ReserveStock(ctx, b.ID, 2))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
}

// TestTxManager_RollbackKeepsOutsideWrites 回滚只撤销事务内的修改，事务外的并发写入保留
func TestTxManager_RollbackKeepsOutsideWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewBookRepository(store)
	inTx := seedBook(t, repo, 5)
	outside := seedBook(t, repo, 3)

	started, release := make(chan struct{}), make(chan struct{})
	boom := errors.New("boom")
	txErr := make(chan error, 1)
	go func() {
		txErr <- NewTxManager(store).Transaction(ctx, func(ctx context.Context) error {
			if err := repo.ReserveStock(ctx, inTx.ID, 2); err != nil {
				return err
			}
			close(started)
			<-release
			return boom
		})
	}()
	<-started

	written := make(chan error, 1)
	go func() { written <- repo.ReserveStock(ctx, outside.ID, 1) }()

	// 事务未结束前，外部写入等待
	select {
	case <-written:
		t.Fatal("write outside transaction was not serialized")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	assert.ErrorIs(t, <-txErr, boom)
	require.NoError(t, <-written)

	got, err := repo.FindByID(ctx, inTx.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)

	got, err = repo.FindByID(ctx, outside.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
}

func TestTxManager_NestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewBookRepository(store)
	b := seedBook(t, repo, 5)
	m := NewTxManager(store)

	boom := errors.New("boom")
	err := m.Transaction(ctx, func(ctx context.Context) error {
		require.NoError(t, m.Transaction(ctx, func(ctx context.Context) error {
			return repo.ReserveStock(ctx, b.ID, 2)
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)

	// 提交后回调不在事务内，可以继续写入
	err = m.Transaction(ctx, func(ctx context.Context) error {
		tx.AfterCommit(ctx, func(ctx context.Context) {
			assert.NoError(t, repo.ReserveStock(ctx, b.ID, 1))
		})
		return repo.ReserveStock(ctx, b.ID, 1)
	})
	require.NoError(t, err)

	got, err = repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

func TestWishlistRepository_SetSemantics(t *testing.T) {
	ctx := context.Background()
	repo := NewWishlistRepository(NewStore())

	require.NoError(t, repo.AddItem(ctx, "u1", "b1"))
	require.NoError(t, repo.AddItem(ctx, "u1", "b1"))

	w, err := repo.FindOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, w.BookIDs())

	in, err := repo.Toggle(ctx, "u1", "b1")
	require.NoError(t, err)
	assert.False(t, in)

	in, err = repo.Toggle(ctx, "u1", "b2")
	require.NoError(t, err)
	assert.True(t, in)

	require.NoError(t, repo.RemoveItem(ctx, "u1", "missing"))
	w, err = repo.FindOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b2"}, w.BookIDs())
}

func TestLocker(t *testing.T) {
	ctx := context.Background()
	l := NewLocker(20 * time.Millisecond)

	unlock, err := l.Lock(ctx, "u1")
	require.NoError(t, err)

	_, err = l.Lock(ctx, "u1")
	assert.ErrorIs(t, err, cart.ErrCartBusy)

	other, err := l.Lock(ctx, "u2")
	require.NoError(t, err)
	other()

	unlock()
	unlock()

	again, err := l.Lock(ctx, "u1")
	require.NoError(t, err)
	again()
}

func TestSessionStore_Revoke(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore()

	require.NoError(t, s.Revoke(ctx, "tok", time.Hour))
	revoked, err := s.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, s.Revoke(ctx, "old", -time.Second))
	revoked, err = s.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)
}
