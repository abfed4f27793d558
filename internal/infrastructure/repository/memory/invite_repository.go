package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/courtside/padel-league/internal/domain/invite"
	"github.com/courtside/padel-league/internal/domain/user"
)

type InviteRepository struct {
	mu    sync.RWMutex
	items map[string]invite.Invite
	order []string
}

func NewInviteRepository() *InviteRepository {
	return &InviteRepository{items: make(map[string]invite.Invite)}
}

func (r *InviteRepository) GetByCode(_ context.Context, code string) (invite.Invite, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[code]
	return item, ok, nil
}

func (r *InviteRepository) ListPendingByEmail(_ context.Context, email string) ([]invite.Invite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = user.NormalizeEmail(email)
	out := make([]invite.Invite, 0)
	for _, code := range r.order {
		item := r.items[code]
		if item.Accepted() || item.PartnerEmail != email {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *InviteRepository) Create(_ context.Context, item invite.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.Code]; exists {
		return fmt.Errorf("invite %s already exists", item.Code)
	}
	r.items[item.Code] = item
	r.order = append(r.order, item.Code)
	return nil
}

func (r *InviteRepository) Update(_ context.Context, item invite.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.Code]; !exists {
		return fmt.Errorf("invite %s does not exist", item.Code)
	}
	r.items[item.Code] = item
	return nil
}
