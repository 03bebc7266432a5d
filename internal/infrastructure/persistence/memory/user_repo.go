package memory

import (
	"context"
	"sync"
	"time"

	"github.com/krishivsaini/BookBazaar/internal/domain/user"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) user.Repository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	defer r.store.write(ctx)()

	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return apperrors.ErrEmailDuplicate
		}
	}
	r.store.users[u.ID] = cloneUser(u)
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	defer r.store.write(ctx)()

	if _, ok := r.store.users[u.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.store.users[u.ID] = cloneUser(u)
	return nil
}

// SessionStore Redis关闭时的会话存储
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	revoked  map[string]time.Time
}

type entry struct {
	token     string
	expiresAt time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]entry),
		revoked:  make(map[string]time.Time),
	}
}

func (s *SessionStore) Save(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = entry{token: refreshToken, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *SessionStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = time.Now().Add(ttl)
	return nil
}

func (s *SessionStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.revoked[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		delete(s.revoked, token)
		return false, nil
	}
	return true, nil
}
