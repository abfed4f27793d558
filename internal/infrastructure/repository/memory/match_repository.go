package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/courtside/padel-league/internal/domain/match"
	"github.com/courtside/padel-league/internal/domain/user"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
	order []string
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{items: make(map[string]match.Match)}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(item), true, nil
}

func (r *MatchRepository) ListByLeague(_ context.Context, leagueType user.LeagueType) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(m match.Match) bool {
		return m.LeagueType == leagueType
	}), nil
}

func (r *MatchRepository) ListByWeek(_ context.Context, weekIndex int, leagueType user.LeagueType) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(m match.Match) bool {
		return m.WeekIndex == weekIndex && m.LeagueType == leagueType
	}), nil
}

func (r *MatchRepository) ListByPair(_ context.Context, pairID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(m match.Match) bool {
		return m.Involves(pairID)
	}), nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("match %s already exists", item.ID)
	}
	r.items[item.ID] = cloneMatch(item)
	r.order = append(r.order, item.ID)
	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("match %s does not exist", item.ID)
	}
	r.items[item.ID] = cloneMatch(item)
	return nil
}

func (r *MatchRepository) collect(keep func(match.Match) bool) []match.Match {
	out := make([]match.Match, 0)
	for _, id := range r.order {
		if keep(r.items[id]) {
			out = append(out, cloneMatch(r.items[id]))
		}
	}
	return out
}

func cloneMatch(m match.Match) match.Match {
	copied := m
	if m.ScheduledAt != nil {
		at := *m.ScheduledAt
		copied.ScheduledAt = &at
	}
	if m.Score != nil {
		score := *m.Score
		score.Sets = append([]string(nil), m.Score.Sets...)
		copied.Score = &score
	}
	if m.Dispute != nil {
		dispute := *m.Dispute
		dispute.ProposedSets = append([]string(nil), m.Dispute.ProposedSets...)
		copied.Dispute = &dispute
	}
	return copied
}
