package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/krishivsaini/BookBazaar/internal/domain/user"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/persistence/memory"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
	"github.com/krishivsaini/BookBazaar/pkg/jwt"
)

type fixture struct {
	sessions *memory.SessionStore
	jwt      *jwt.Manager
	register *RegisterUseCase
	login    *LoginUseCase
	logout   *LogoutUseCase
	profile  *ProfileUseCase
}

func newFixture() *fixture {
	svc := user.NewServiceWithCost(memory.NewUserRepository(memory.NewStore()), bcrypt.MinCost)
	sessions := memory.NewSessionStore()
	manager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	return &fixture{
		sessions: sessions,
		jwt:      manager,
		register: NewRegisterUseCase(svc, manager, sessions),
		login:    NewLoginUseCase(svc, manager, sessions),
		logout:   NewLogoutUseCase(sessions, manager),
		profile:  NewProfileUseCase(svc),
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	reg, err := f.register.Execute(ctx, RegisterRequest{Email: "Ann@Example.com", Password: "secret123", Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", reg.User.Email)
	assert.Equal(t, user.RoleUser, reg.User.Role)
	assert.NotEmpty(t, reg.Tokens.AccessToken)

	claims, err := f.jwt.ParseToken(reg.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)

	_, err = f.register.Execute(ctx, RegisterRequest{Email: "ann@example.com", Password: "secret123", Name: "Ann"})
	assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)

	res, err := f.login.Execute(ctx, LoginRequest{Email: "ann@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)

	_, err = f.login.Execute(ctx, LoginRequest{Email: "ann@example.com", Password: "wrong1234"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	_, err = f.login.Execute(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestLogout_RevokesAccessToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	res, err := f.register.Execute(ctx, RegisterRequest{Email: "bob@example.com", Password: "secret123", Name: "Bob"})
	require.NoError(t, err)

	revoked, err := f.sessions.IsRevoked(ctx, res.Tokens.AccessToken)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, f.logout.Execute(ctx, res.User.ID, res.Tokens.AccessToken))

	revoked, err = f.sessions.IsRevoked(ctx, res.Tokens.AccessToken)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	res, err := f.register.Execute(ctx, RegisterRequest{Email: "cy@example.com", Password: "secret123", Name: "Cy"})
	require.NoError(t, err)

	u, err := f.profile.Execute(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cy", u.Name)

	_, err = f.profile.Execute(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
