package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/krishivsaini/BookBazaar/internal/domain/user"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

// SessionStore 会话存储
// Key设计：session:{user_id}、blacklist:{sha256(token)}
type SessionStore struct {
	client *redis.Client
}

var _ user.SessionStore = (*SessionStore)(nil)

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save 保存用户会话（Refresh Token与登录时间），有效期与Refresh Token一致
func (s *SessionStore) Save(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	key := sessionKey(userID)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"refresh_token": refreshToken,
		"login_at":      time.Now().Unix(),
	})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "save session failed")
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return apperrors.Wrap(err, "delete session failed")
	}
	return nil
}

// Revoke 将Token加入黑名单，TTL与Token剩余有效期一致
func (s *SessionStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "revoke token failed")
	}
	return nil
}

func (s *SessionStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "check blacklist failed")
	}
	return n > 0, nil
}

func sessionKey(userID string) string {
	return "session:" + userID
}

// blacklistKey 使用Token摘要作为Key，避免Key过长
func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "blacklist:" + hex.EncodeToString(sum[:])
}
