package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

const lockRetryInterval = 20 * time.Millisecond

// unlockScript 只删除自己持有的锁
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// CartLocker 基于SET NX PX的用户级分布式锁，多实例部署时保护购物车读-改-写
type CartLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

var _ cart.Locker = (*CartLocker)(nil)

// NewCartLocker ttl为锁自动过期时间（持有者崩溃时兜底），wait为最长等待时间
func NewCartLocker(client *redis.Client, ttl, wait time.Duration) *CartLocker {
	return &CartLocker{client: client, ttl: ttl, wait: wait}
}

func (l *CartLocker) Lock(ctx context.Context, userID string) (func(), error) {
	key := "lock:cart:" + userID
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, apperrors.Wrap(err, "acquire cart lock failed")
		}
		if ok {
			return func() {
				// 请求可能已取消，释放锁使用独立的Context
				if err := unlockScript.Run(context.WithoutCancel(ctx), l.client, []string{key}, token).Err(); err != nil {
					log.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("release cart lock failed")
				}
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, cart.ErrCartBusy
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}
