package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/persistence/memory"
	"github.com/krishivsaini/BookBazaar/pkg/circuitbreaker"
)

// unreachableClient 指向无人监听的端口，所有命令立即失败
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

// TestCachedBookRepository_FallsBackWhenRedisDown Redis不可用时仍从数据库读取，连续失败后熔断
func TestCachedBookRepository_FallsBackWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	books := memory.NewBookRepository(memory.NewStore())
	b, err := book.NewBook(book.Attributes{
		Title: "Dune", Author: "Herbert", Description: "Spice", Category: book.CategoryFiction, Price: 100, Stock: 2,
	}, "seller")
	require.NoError(t, err)
	require.NoError(t, books.Create(ctx, b))

	client := unreachableClient()
	defer client.Close()

	breaker := circuitbreaker.New("book-cache-test", circuitbreaker.Config{
		MaxRequests:         1,
		Timeout:             time.Minute,
		ConsecutiveFailures: 2,
	})
	repo := NewCachedBookRepository(books, client, breaker, time.Minute)

	for i := 0; i < 3; i++ {
		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Title)
	}
	assert.Equal(t, gobreaker.StateOpen, breaker.State())

	// 写操作不受缓存失败影响
	require.NoError(t, repo.ReserveStock(ctx, b.ID, 1))
	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

// TestCachedBookRepository_InvalidatesAfterCommit 事务内的写操作在提交后才删除缓存，回滚不删除
// 用连接失败计入熔断器观察删除是否发生
func TestCachedBookRepository_InvalidatesAfterCommit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	books := memory.NewBookRepository(store)
	txManager := memory.NewTxManager(store)
	b, err := book.NewBook(book.Attributes{
		Title: "Dune", Author: "Herbert", Description: "Spice", Category: book.CategoryFiction, Price: 100, Stock: 2,
	}, "seller")
	require.NoError(t, err)
	require.NoError(t, books.Create(ctx, b))

	client := unreachableClient()
	defer client.Close()

	newRepo := func(name string) (*CachedBookRepository, *circuitbreaker.Breaker) {
		breaker := circuitbreaker.New(name, circuitbreaker.Config{
			MaxRequests:         1,
			Timeout:             time.Minute,
			ConsecutiveFailures: 1,
		})
		return NewCachedBookRepository(books, client, breaker, time.Minute), breaker
	}

	t.Run("提交后删除", func(t *testing.T) {
		repo, breaker := newRepo("book-cache-commit")
		err := txManager.Transaction(ctx, func(ctx context.Context) error {
			require.NoError(t, repo.UpdateRating(ctx, b.ID, 4.5, 2))
			assert.Equal(t, gobreaker.StateClosed, breaker.State())
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, gobreaker.StateOpen, breaker.State())
	})

	t.Run("回滚不删除", func(t *testing.T) {
		repo, breaker := newRepo("book-cache-rollback")
		err := txManager.Transaction(ctx, func(ctx context.Context) error {
			require.NoError(t, repo.UpdateRating(ctx, b.ID, 1, 1))
			return book.ErrInvalidQuantity
		})
		assert.ErrorIs(t, err, book.ErrInvalidQuantity)
		assert.Equal(t, gobreaker.StateClosed, breaker.State())

		got, err := books.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.5, got.RatingAverage)
	})

	t.Run("事务外立即删除", func(t *testing.T) {
		repo, breaker := newRepo("book-cache-direct")
		require.NoError(t, repo.ReleaseStock(ctx, b.ID, 1))
		assert.Equal(t, gobreaker.StateOpen, breaker.State())
	})
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "book:abc", bookKey("abc"))
	assert.Equal(t, "session:u1", sessionKey("u1"))
	assert.Len(t, blacklistKey("token"), len("blacklist:")+64)
	assert.NotEqual(t, blacklistKey("a"), blacklistKey("b"))
}
