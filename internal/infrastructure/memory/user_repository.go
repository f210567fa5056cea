package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/repository"

	"github.com/google/uuid"
)

var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository keeps local admin credentials in process for
// STORE_DRIVER=memory.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]entity.AdminUser
}

func NewUserRepository() repository.UserRepository {
	return &UserRepository{byEmail: make(map[string]entity.AdminUser)}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return ErrDuplicateEmail
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.byEmail[user.Email] = *user
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.byEmail {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}
