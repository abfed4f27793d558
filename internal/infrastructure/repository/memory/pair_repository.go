package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/courtside/padel-league/internal/domain/pair"
	"github.com/courtside/padel-league/internal/domain/user"
)

type PairRepository struct {
	mu    sync.RWMutex
	items map[string]pair.Pair
	order []string
}

func NewPairRepository(seed []pair.Pair) *PairRepository {
	r := &PairRepository{items: make(map[string]pair.Pair, len(seed))}
	for _, item := range seed {
		r.items[item.ID] = item
		r.order = append(r.order, item.ID)
	}
	return r
}

func (r *PairRepository) GetByID(_ context.Context, pairID string) (pair.Pair, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[pairID]
	return item, ok, nil
}

func (r *PairRepository) ListByLeague(_ context.Context, leagueType user.LeagueType) ([]pair.Pair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pair.Pair, 0, len(r.order))
	for _, id := range r.order {
		if r.items[id].LeagueType == leagueType {
			out = append(out, r.items[id])
		}
	}
	return out, nil
}

func (r *PairRepository) List(_ context.Context) ([]pair.Pair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pair.Pair, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *PairRepository) Create(_ context.Context, item pair.Pair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("pair %s already exists", item.ID)
	}
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return nil
}
