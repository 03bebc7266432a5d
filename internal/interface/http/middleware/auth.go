package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/krishivsaini/BookBazaar/internal/domain/user"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
	"github.com/krishivsaini/BookBazaar/pkg/jwt"
	"github.com/krishivsaini/BookBazaar/pkg/response"
)

// Context Key
const (
	ctxUserID      = "user_id"
	ctxEmail       = "email"
	ctxName        = "name"
	ctxRole        = "role"
	ctxAccessToken = "access_token"
)

// AuthMiddleware JWT认证中间件
// 1. 从Header提取Bearer Token
// 2. 检查Token黑名单（已登出）
// 3. 验证Token并将用户信息注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	sessions   user.SessionStore
}

func NewAuthMiddleware(jwtManager *jwt.Manager, sessions user.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		sessions:   sessions,
	}
}

// RequireAuth 要求登录
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}
		if err := m.authenticate(c, token); err != nil {
			response.Abort(c, err)
			return
		}
		c.Next()
	}
}

// RequireAdmin 要求管理员，需放在RequireAuth之后
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Abort(c, apperrors.ErrAdminOnly)
			return
		}
		c.Next()
	}
}

// OptionalAuth 有合法Token则注入用户信息，否则按匿名用户继续
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			_ = m.authenticate(c, token)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context, token string) error {
	ctx := c.Request.Context()

	revoked, err := m.sessions.IsRevoked(ctx, token)
	if err != nil {
		// 黑名单不可用时只依赖签名与过期时间
		log.Ctx(ctx).Warn().Err(err).Msg("check token blacklist failed")
	}
	if revoked {
		return apperrors.ErrInvalidToken
	}

	claims, err := m.jwtManager.ParseToken(token)
	if err != nil {
		return err
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
	c.Set(ctxName, claims.Name)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxAccessToken, token)

	logger := log.Ctx(ctx).With().Str("user_id", claims.UserID).Logger()
	c.Request = c.Request.WithContext(logger.WithContext(ctx))
	return nil
}

// bearerToken 解析 Authorization: Bearer <token>
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 当前登录用户ID，未登录返回空字符串
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// MustGetUserID 用于已经通过RequireAuth的Handler
func MustGetUserID(c *gin.Context) string {
	userID := GetUserID(c)
	if userID == "" {
		panic("user_id not found in context")
	}
	return userID
}

func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

func GetAccessToken(c *gin.Context) string {
	return c.GetString(ctxAccessToken)
}

// IsAdmin 当前用户是否管理员
func IsAdmin(c *gin.Context) bool {
	return c.GetString(ctxRole) == string(user.RoleAdmin)
}
