package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/courtside/padel-league/internal/domain/pair"
	"github.com/courtside/padel-league/internal/domain/user"
	"github.com/courtside/padel-league/internal/platform/id"
	"github.com/courtside/padel-league/internal/platform/logging"
)

const (
	pairingMaxSkillGap        = 2
	pairingLookahead          = 5
	pairingGapWeight          = 10
	pairingAvailabilityWeight = 5
)

// PairingService matches solo friendly-league players into pairs.
type PairingService struct {
	userRepo user.Repository
	pairRepo pair.Repository
	ids      id.Generator
	logger   *logging.Logger
	now      func() time.Time
	lock     *SnapshotLock
}

func NewPairingService(
	userRepo user.Repository,
	pairRepo pair.Repository,
	ids id.Generator,
	logger *logging.Logger,
	lock *SnapshotLock,
) *PairingService {
	if lock == nil {
		lock = NewSnapshotLock()
	}
	return &PairingService{
		userRepo: userRepo,
		pairRepo: pairRepo,
		ids:      ids,
		logger:   logger,
		now:      time.Now,
		lock:     lock,
	}
}

// RunAutoPairing walks the waiting pool in skill order and greedily
// matches each player with the cheapest candidate within a bounded
// lookahead. Players left without a candidate stay in the pool; running
// again on an unchanged pool is a no-op.
func (s *PairingService) RunAutoPairing(ctx context.Context) ([]pair.Pair, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PairingService.RunAutoPairing")
	defer span.End()

	s.lock.Lock()
	defer s.lock.Unlock()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	// Registration order breaks captain ties.
	registrationIndex := make(map[string]int, len(users))
	for i, u := range users {
		registrationIndex[u.ID] = i
	}

	pool := make([]user.User, 0, len(users))
	for _, u := range users {
		if u.LeagueType != user.LeagueFriendly {
			continue
		}
		if u.Status != user.StatusWaitingForPair {
			continue
		}
		if !u.ProfileComplete() || u.PairID != "" {
			continue
		}
		pool = append(pool, u)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return *pool[i].SkillLevel < *pool[j].SkillLevel
	})

	formed := make([]pair.Pair, 0, len(pool)/2)
	used := make(map[int]struct{}, len(pool))

	for i := range pool {
		if _, ok := used[i]; ok {
			continue
		}

		best := -1
		bestCost := 0
		limit := i + 1 + pairingLookahead
		if limit > len(pool) {
			limit = len(pool)
		}
		for j := i + 1; j < limit; j++ {
			if _, ok := used[j]; ok {
				continue
			}
			gap := *pool[j].SkillLevel - *pool[i].SkillLevel
			if gap < 0 {
				gap = -gap
			}
			if gap > pairingMaxSkillGap {
				continue
			}
			cost := gap * pairingGapWeight
			if !pool[i].Availability.Overlaps(*pool[j].Availability) {
				cost += pairingAvailabilityWeight
			}
			if best == -1 || cost < bestCost {
				best = j
				bestCost = cost
			}
		}
		if best == -1 {
			continue
		}

		matched, err := s.formPair(ctx, pool[i], pool[best], registrationIndex)
		if err != nil {
			return formed, err
		}
		formed = append(formed, matched)
		used[i] = struct{}{}
		used[best] = struct{}{}
	}

	s.logger.InfoContext(ctx, "auto pairing finished",
		"pool_size", len(pool),
		"pairs_formed", len(formed),
	)
	return formed, nil
}

func (s *PairingService) formPair(ctx context.Context, a, b user.User, registrationIndex map[string]int) (pair.Pair, error) {
	if registrationIndex[b.ID] < registrationIndex[a.ID] {
		a, b = b, a
	}

	pairID, err := s.ids.NewID()
	if err != nil {
		return pair.Pair{}, fmt.Errorf("generate pair id: %w", err)
	}

	now := s.now().UTC()
	formed := pair.Pair{
		ID:            pairID,
		LeagueType:    a.LeagueType,
		FacilityID:    a.FacilityID,
		CaptainUserID: a.ID,
		UserAID:       a.ID,
		UserBID:       b.ID,
		CreatedAt:     now,
	}
	if err := s.pairRepo.Create(ctx, formed); err != nil {
		return pair.Pair{}, fmt.Errorf("create pair: %w", err)
	}

	for _, member := range []user.User{a, b} {
		member.PairID = formed.ID
		member.Status = user.StatusPaired
		member.UpdatedAt = now
		if err := s.userRepo.Update(ctx, member); err != nil {
			return pair.Pair{}, fmt.Errorf("update paired user %s: %w", member.ID, err)
		}
	}

	return formed, nil
}
