// Package memory provides in-memory repository implementations with the same
// conditional-write semantics as the postgresql package. They back the
// service-layer tests and the demo seeding path.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ems-hq/ems-backend-go/internal/domain/user"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository() user.UserRepository {
	return &userRepository{users: make(map[string]user.User)}
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	newUser.CreatedAt = now
	newUser.UpdatedAt = now
	r.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.DeletedAt == nil && strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepository) List(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		if u.DeletedAt == nil {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.DeletedAt == nil && u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[req.ID]
	if !ok || u.DeletedAt != nil {
		return user.User{}, user.ErrUserNotFound
	}
	u.Name = req.Name
	u.Email = req.NormalizedEmail()
	u.Role = user.Role(req.Role)
	u.Department = req.Department
	u.UpdatedAt = time.Now()
	r.users[req.ID] = u
	return u, nil
}

func (r *userRepository) SoftDelete(ctx context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return user.User{}, user.ErrUserNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	r.users[id] = u
	return u, nil
}
