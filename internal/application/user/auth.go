package user

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/krishivsaini/BookBazaar/internal/domain/user"
	"github.com/krishivsaini/BookBazaar/pkg/jwt"
)

// AuthResult 注册/登录结果
type AuthResult struct {
	User   *user.User
	Tokens *jwt.TokenPair
}

// issuer 签发Token并保存会话
type issuer struct {
	jwtManager *jwt.Manager
	sessions   user.SessionStore
}

func (i *issuer) issue(ctx context.Context, u *user.User) (*AuthResult, error) {
	pair, err := i.jwtManager.GenerateToken(jwt.Identity{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
	})
	if err != nil {
		return nil, err
	}

	// 会话有效期 = Refresh Token有效期
	// 会话保存失败不影响登录，只记录日志
	if err := i.sessions.Save(ctx, u.ID, pair.RefreshToken, i.jwtManager.RefreshTokenExpire()); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", u.ID).Msg("save session failed")
	}

	return &AuthResult{User: u, Tokens: pair}, nil
}

// RegisterUseCase 用户注册，成功后直接登录
type RegisterUseCase struct {
	issuer
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, jwtManager *jwt.Manager, sessions user.SessionStore) *RegisterUseCase {
	return &RegisterUseCase{
		issuer:      issuer{jwtManager: jwtManager, sessions: sessions},
		userService: userService,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Str("user_id", u.ID).Msg("user registered")
	return uc.issue(ctx, u)
}

// LoginUseCase 用户登录
type LoginUseCase struct {
	issuer
	userService user.Service
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager, sessions user.SessionStore) *LoginUseCase {
	return &LoginUseCase{
		issuer:      issuer{jwtManager: jwtManager, sessions: sessions},
		userService: userService,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
}

func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return uc.issue(ctx, u)
}

// LogoutUseCase 用户登出
type LogoutUseCase struct {
	sessions   user.SessionStore
	jwtManager *jwt.Manager
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessions user.SessionStore, jwtManager *jwt.Manager) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions, jwtManager: jwtManager}
}

// Execute 删除会话，并将Access Token加入黑名单直到其自然过期
func (uc *LogoutUseCase) Execute(ctx context.Context, userID, accessToken string) error {
	if err := uc.sessions.Delete(ctx, userID); err != nil {
		return err
	}
	return uc.sessions.Revoke(ctx, accessToken, uc.jwtManager.AccessTokenExpire())
}

// ProfileUseCase 当前用户信息
type ProfileUseCase struct {
	userService user.Service
}

func NewProfileUseCase(userService user.Service) *ProfileUseCase {
	return &ProfileUseCase{userService: userService}
}

func (uc *ProfileUseCase) Execute(ctx context.Context, userID string) (*user.User, error) {
	return uc.userService.Get(ctx, userID)
}
