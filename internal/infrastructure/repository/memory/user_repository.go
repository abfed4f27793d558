package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/courtside/padel-league/internal/domain/user"
)

// UserRepository keeps users in registration order; List preserves it.
type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.User
	order []string
}

func NewUserRepository(seed []user.User) *UserRepository {
	r := &UserRepository{items: make(map[string]user.User, len(seed))}
	for _, item := range seed {
		r.items[item.ID] = cloneUser(item)
		r.order = append(r.order, item.ID)
	}
	return r
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	if !ok {
		return user.User{}, false, nil
	}
	return cloneUser(item), true, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = user.NormalizeEmail(email)
	for _, id := range r.order {
		if user.NormalizeEmail(r.items[id].Email) == email {
			return cloneUser(r.items[id]), true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneUser(r.items[id]))
	}
	return out, nil
}

func (r *UserRepository) Create(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("user %s already exists", item.ID)
	}
	r.items[item.ID] = cloneUser(item)
	r.order = append(r.order, item.ID)
	return nil
}

func (r *UserRepository) Update(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("user %s does not exist", item.ID)
	}
	r.items[item.ID] = cloneUser(item)
	return nil
}

func cloneUser(u user.User) user.User {
	copied := u
	if u.SkillLevel != nil {
		level := *u.SkillLevel
		copied.SkillLevel = &level
	}
	if u.Availability != nil {
		availability := *u.Availability
		copied.Availability = &availability
	}
	return copied
}
