package user

import (
	"time"

	"github.com/google/uuid"
)

// Role 用户角色
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User 用户实体（聚合根）
// 1. 密码为bcrypt哈希，不提供读取明文的方法
// 2. 领域实体不依赖GORM/BSON tag，映射在infrastructure层处理
type User struct {
	ID        string
	Email     string
	Password  string // bcrypt哈希值
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法），注册用户一律为普通角色
func NewUser(email, hashedPassword, name string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  hashedPassword,
		Name:      name,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Rename 更新昵称（领域行为）
func (u *User) Rename(name string) {
	u.Name = name
	u.UpdatedAt = time.Now()
}
