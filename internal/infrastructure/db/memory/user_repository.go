// Package memory provides the process-local store implementations used by
// default. All state is lost on restart; Reset models that lifecycle.
package memory

import (
	"context"
	"sync"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

// UserRepository is a concurrency-safe in-memory ports.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	stored := *user
	r.users[user.Username] = &stored

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// Reset drops every account.
func (r *UserRepository) Reset() {
	r.mu.Lock()
	r.users = make(map[string]*domain.User)
	r.mu.Unlock()
}
