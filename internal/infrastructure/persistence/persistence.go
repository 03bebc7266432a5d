// Package persistence 按配置选择存储实现并组装仓储
//
// database.driver: mysql | mongo | memory
// redis.enabled为true时启用图书缓存、分布式购物车锁与Redis会话存储，否则使用进程内实现
package persistence

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
	"github.com/krishivsaini/BookBazaar/internal/domain/order"
	"github.com/krishivsaini/BookBazaar/internal/domain/review"
	"github.com/krishivsaini/BookBazaar/internal/domain/tx"
	"github.com/krishivsaini/BookBazaar/internal/domain/user"
	"github.com/krishivsaini/BookBazaar/internal/domain/wishlist"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/config"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/persistence/memory"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/persistence/mongo"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/persistence/mysql"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/persistence/redis"
	"github.com/krishivsaini/BookBazaar/pkg/circuitbreaker"
)

// Repositories 全部仓储与基础设施组件
type Repositories struct {
	Users     user.Repository
	Books     book.Repository
	Carts     cart.Repository
	Wishlists wishlist.Repository
	Reviews   review.Repository
	Orders    order.Repository
	TxManager tx.Manager
	Locker    cart.Locker
	Sessions  user.SessionStore
}

// New 创建仓储，返回的cleanup负责关闭连接
func New(ctx context.Context, cfg *config.Config) (*Repositories, func(), error) {
	var (
		repos   *Repositories
		closers []func()
	)

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Database.Driver {
	case config.DriverMySQL:
		db, err := mysql.NewDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		repos = &Repositories{
			Users:     mysql.NewUserRepository(db),
			Books:     mysql.NewBookRepository(db),
			Carts:     mysql.NewCartRepository(db),
			Wishlists: mysql.NewWishlistRepository(db),
			Reviews:   mysql.NewReviewRepository(db),
			Orders:    mysql.NewOrderRepository(db),
			TxManager: mysql.NewTxManager(db),
		}

	case config.DriverMongo:
		db, disconnect, err := mongo.NewDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("disconnect mongo failed")
			}
		})
		repos = &Repositories{
			Users:     mongo.NewUserRepository(db),
			Books:     mongo.NewBookRepository(db),
			Carts:     mongo.NewCartRepository(db),
			Wishlists: mongo.NewWishlistRepository(db),
			Reviews:   mongo.NewReviewRepository(db),
			Orders:    mongo.NewOrderRepository(db),
			TxManager: mongo.NewTxManager(db, cfg.Mongo.Transactions),
		}

	case config.DriverMemory:
		repos = NewMemory(cfg)

	default:
		return nil, nil, fmt.Errorf("unknown database driver: %q", cfg.Database.Driver)
	}

	if !cfg.Redis.Enabled {
		if repos.Locker == nil {
			repos.Locker = memory.NewLocker(cfg.Cache.CartLockWait)
			repos.Sessions = memory.NewSessionStore()
		}
		log.Info().Str("driver", cfg.Database.Driver).Msg("redis disabled, using in-process cache components")
		return repos, cleanup, nil
	}

	client, err := redis.NewClient(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, func() { _ = client.Close() })

	withRedis(repos, client, cfg)

	log.Info().Str("driver", cfg.Database.Driver).Msg("persistence initialized")
	return repos, cleanup, nil
}

// NewMemory 进程内存储（开发与测试）
func NewMemory(cfg *config.Config) *Repositories {
	store := memory.NewStore()
	return &Repositories{
		Users:     memory.NewUserRepository(store),
		Books:     memory.NewBookRepository(store),
		Carts:     memory.NewCartRepository(store),
		Wishlists: memory.NewWishlistRepository(store),
		Reviews:   memory.NewReviewRepository(store),
		Orders:    memory.NewOrderRepository(store),
		TxManager: memory.NewTxManager(store),
		Locker:    memory.NewLocker(cfg.Cache.CartLockWait),
		Sessions:  memory.NewSessionStore(),
	}
}

// withRedis 图书仓储加缓存，购物车锁与会话改用Redis
func withRedis(repos *Repositories, client *goredis.Client, cfg *config.Config) {
	breakerCfg := circuitbreaker.DefaultConfig()
	if cfg.Cache.BreakerTimeout > 0 {
		breakerCfg.Timeout = cfg.Cache.BreakerTimeout
	}
	if cfg.Cache.BreakerFails > 0 {
		breakerCfg.ConsecutiveFailures = cfg.Cache.BreakerFails
	}

	repos.Books = redis.NewCachedBookRepository(
		repos.Books,
		client,
		circuitbreaker.New("redis-book-cache", breakerCfg),
		cfg.Cache.BookTTL,
	)
	repos.Locker = redis.NewCartLocker(client, cfg.Cache.CartLockTTL, cfg.Cache.CartLockWait)
	repos.Sessions = redis.NewSessionStore(client)
}
