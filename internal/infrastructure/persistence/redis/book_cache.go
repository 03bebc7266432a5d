package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/tx"
	"github.com/krishivsaini/BookBazaar/pkg/circuitbreaker"
	"github.com/krishivsaini/BookBazaar/pkg/metrics"
)

const cacheName = "book"

// CachedBookRepository 图书详情旁路缓存（Cache-Aside）
// 1. 读：先查缓存，未命中查数据库并回填
// 2. 写：更新数据库后删除缓存，下次读取时重新加载
// 3. Redis调用经过熔断器，熔断打开时直接读数据库
type CachedBookRepository struct {
	book.Repository
	client  *redis.Client
	breaker *circuitbreaker.Breaker
	ttl     time.Duration
}

func NewCachedBookRepository(next book.Repository, client *redis.Client, breaker *circuitbreaker.Breaker, ttl time.Duration) *CachedBookRepository {
	return &CachedBookRepository{
		Repository: next,
		client:     client,
		breaker:    breaker,
		ttl:        ttl,
	}
}

func (r *CachedBookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	if b, ok := r.get(ctx, id); ok {
		return b, nil
	}

	b, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.set(ctx, b)
	return b, nil
}

func (r *CachedBookRepository) Update(ctx context.Context, b *book.Book) error {
	return r.invalidateAfter(ctx, b.ID, r.Repository.Update(ctx, b))
}

func (r *CachedBookRepository) Delete(ctx context.Context, id string) error {
	return r.invalidateAfter(ctx, id, r.Repository.Delete(ctx, id))
}

func (r *CachedBookRepository) UpdateRating(ctx context.Context, id string, average float64, count int) error {
	return r.invalidateAfter(ctx, id, r.Repository.UpdateRating(ctx, id, average, count))
}

func (r *CachedBookRepository) ReserveStock(ctx context.Context, id string, quantity int) error {
	return r.invalidateAfter(ctx, id, r.Repository.ReserveStock(ctx, id, quantity))
}

func (r *CachedBookRepository) ReleaseStock(ctx context.Context, id string, quantity int) error {
	return r.invalidateAfter(ctx, id, r.Repository.ReleaseStock(ctx, id, quantity))
}

// get 缓存命中返回true；未命中、错误、熔断均回源
func (r *CachedBookRepository) get(ctx context.Context, id string) (*book.Book, bool) {
	var payload []byte
	err := r.breaker.Execute(func() error {
		val, err := r.client.Get(ctx, bookKey(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		payload = val
		return err
	})

	switch {
	case errors.Is(err, circuitbreaker.ErrOpen):
		metrics.CacheRequestsTotal.WithLabelValues(cacheName, "bypass").Inc()
		return nil, false
	case err != nil:
		metrics.CacheRequestsTotal.WithLabelValues(cacheName, "error").Inc()
		log.Ctx(ctx).Warn().Err(err).Str("book_id", id).Msg("read book cache failed")
		return nil, false
	case payload == nil:
		metrics.CacheRequestsTotal.WithLabelValues(cacheName, "miss").Inc()
		return nil, false
	}

	var b book.Book
	if err := json.Unmarshal(payload, &b); err != nil {
		metrics.CacheRequestsTotal.WithLabelValues(cacheName, "error").Inc()
		return nil, false
	}
	metrics.CacheRequestsTotal.WithLabelValues(cacheName, "hit").Inc()
	return &b, true
}

func (r *CachedBookRepository) set(ctx context.Context, b *book.Book) {
	payload, err := json.Marshal(b)
	if err != nil {
		return
	}
	err = r.breaker.Execute(func() error {
		return r.client.Set(ctx, bookKey(b.ID), payload, r.ttl).Err()
	})
	if err != nil && !errors.Is(err, circuitbreaker.ErrOpen) {
		log.Ctx(ctx).Warn().Err(err).Str("book_id", b.ID).Msg("write book cache failed")
	}
}

// invalidateAfter 写操作成功后删除缓存，删除失败只记录日志（依赖TTL兜底）
// 处于事务中时推迟到提交之后，避免并发读在提交前回填旧数据
func (r *CachedBookRepository) invalidateAfter(ctx context.Context, id string, writeErr error) error {
	if writeErr != nil {
		return writeErr
	}
	tx.AfterCommit(ctx, func(ctx context.Context) {
		r.invalidate(ctx, id)
	})
	return nil
}

func (r *CachedBookRepository) invalidate(ctx context.Context, id string) {
	err := r.breaker.Execute(func() error {
		return r.client.Del(ctx, bookKey(id)).Err()
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("book_id", id).Msg("invalidate book cache failed")
	}
}

func bookKey(id string) string {
	return "book:" + id
}
