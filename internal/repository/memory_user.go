package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/request-service/internal/domain"
)

// MemoryUserRepository is an in-memory UserRepository, used when no Postgres
// DSN is configured and as the user-directory test double.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMemoryUserRepository builds an empty in-memory store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*domain.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *stored
	return &clone, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, stored := range r.users {
		if stored.Email == email {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) ExistsByIdentification(ctx context.Context, identification string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, stored := range r.users {
		if stored.Identification == identification {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, stored := range r.users {
		if stored.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.listWhere(func(*domain.User) bool { return true })
}

func (r *MemoryUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return r.listWhere(func(u *domain.User) bool { return u.Role == role })
}

func (r *MemoryUserRepository) ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return r.listWhere(func(u *domain.User) bool { return u.Role == role && u.Active })
}

func (r *MemoryUserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *MemoryUserRepository) listWhere(keep func(*domain.User) bool) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.User
	for _, stored := range r.users {
		if keep(stored) {
			result = append(result, *stored)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
