package dto

import (
	"time"

	appuser "github.com/krishivsaini/BookBazaar/internal/application/user"
	"github.com/krishivsaini/BookBazaar/internal/domain/user"
)

// RegisterRequest 注册请求，密码强度由领域层校验
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50" example:"Alice"`
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// UserResponse 用户信息（不包含密码）
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	UserResponse
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn" example:"7200"`
}

func NewAuthResponse(r *appuser.AuthResult) *AuthResponse {
	return &AuthResponse{
		UserResponse: *NewUserResponse(r.User),
		Token:        r.Tokens.AccessToken,
		RefreshToken: r.Tokens.RefreshToken,
		ExpiresIn:    r.Tokens.ExpiresIn,
	}
}
