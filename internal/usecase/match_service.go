package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/courtside/padel-league/internal/domain/match"
	"github.com/courtside/padel-league/internal/domain/pair"
	"github.com/courtside/padel-league/internal/domain/user"
)

// MatchService runs the fixture lifecycle: booking, score submission,
// confirmation and disputes. Every operation validates fully before the
// stored match is touched.
type MatchService struct {
	userRepo  user.Repository
	pairRepo  pair.Repository
	matchRepo match.Repository
	now       func() time.Time
	lock      *SnapshotLock
}

func NewMatchService(
	userRepo user.Repository,
	pairRepo pair.Repository,
	matchRepo match.Repository,
	lock *SnapshotLock,
) *MatchService {
	if lock == nil {
		lock = NewSnapshotLock()
	}
	return &MatchService{
		userRepo:  userRepo,
		pairRepo:  pairRepo,
		matchRepo: matchRepo,
		now:       time.Now,
		lock:      lock,
	}
}

func (s *MatchService) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetByID")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, false, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return item, exists, nil
}

// ListForUser returns the fixtures of the user's pair, oldest first.
// A user without a pair has no fixtures.
func (s *MatchService) ListForUser(ctx context.Context, userID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListForUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}
	if item.PairID == "" {
		return []match.Match{}, nil
	}

	items, err := s.matchRepo.ListByPair(ctx, item.PairID)
	if err != nil {
		return nil, fmt.Errorf("list matches by pair: %w", err)
	}
	return items, nil
}

// UpdateBooking records externally booked court time. Any member of
// either pair may book; a nil time clears the booking.
func (s *MatchService) UpdateBooking(ctx context.Context, matchID, userID string, scheduledAt *time.Time, courtNote string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateBooking")
	defer span.End()

	s.lock.Lock()
	defer s.lock.Unlock()

	item, member, _, err := s.loadMatchForUser(ctx, matchID, userID)
	if err != nil {
		return match.Match{}, err
	}
	if !member {
		return match.Match{}, match.ErrNotInMatch
	}

	if err := item.SetBooking(userID, scheduledAt, strings.TrimSpace(courtNote)); err != nil {
		return match.Match{}, err
	}
	return s.store(ctx, item)
}

// SubmitScore records a result as pending confirmation. Captains only;
// a resubmission while disputed discards the open dispute.
func (s *MatchService) SubmitScore(ctx context.Context, matchID, userID string, sets []string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SubmitScore")
	defer span.End()

	s.lock.Lock()
	defer s.lock.Unlock()

	item, member, captain, err := s.loadMatchForUser(ctx, matchID, userID)
	if err != nil {
		return match.Match{}, err
	}
	if !member {
		return match.Match{}, match.ErrNotInMatch
	}
	if !captain {
		return match.Match{}, match.ErrNotCaptain
	}

	if err := item.ApplyScore(sets, userID, s.now().UTC()); err != nil {
		return match.Match{}, err
	}
	return s.store(ctx, item)
}

func (s *MatchService) ConfirmScore(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ConfirmScore")
	defer span.End()

	s.lock.Lock()
	defer s.lock.Unlock()

	item, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	if err := item.ConfirmScore(); err != nil {
		return match.Match{}, err
	}
	return s.store(ctx, item)
}

// DisputeScore files a counter-proposal against a pending score. Any
// member of either pair may dispute.
func (s *MatchService) DisputeScore(ctx context.Context, matchID, userID string, sets []string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.DisputeScore")
	defer span.End()

	s.lock.Lock()
	defer s.lock.Unlock()

	item, member, _, err := s.loadMatchForUser(ctx, matchID, userID)
	if err != nil {
		return match.Match{}, err
	}
	if !member {
		return match.Match{}, match.ErrNotInMatch
	}

	if err := item.ApplyDispute(sets, userID, s.now().UTC()); err != nil {
		return match.Match{}, err
	}
	return s.store(ctx, item)
}

// ResolveDispute voids a disputed match as no_result. Exposed on the
// internal admin surface.
func (s *MatchService) ResolveDispute(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ResolveDispute")
	defer span.End()

	s.lock.Lock()
	defer s.lock.Unlock()

	item, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	if err := item.ResolveDispute(); err != nil {
		return match.Match{}, err
	}
	return s.store(ctx, item)
}

func (s *MatchService) loadMatch(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

func (s *MatchService) loadMatchForUser(ctx context.Context, matchID, userID string) (match.Match, bool, bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return match.Match{}, false, false, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	item, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, false, false, err
	}

	member := false
	captain := false
	for _, pairID := range []string{item.PairAID, item.PairBID} {
		if pairID == "" {
			continue
		}
		p, exists, err := s.pairRepo.GetByID(ctx, pairID)
		if err != nil {
			return match.Match{}, false, false, fmt.Errorf("get pair by id: %w", err)
		}
		if !exists {
			continue
		}
		if p.HasMember(userID) {
			member = true
			captain = p.CaptainUserID == userID
			break
		}
	}

	return item, member, captain, nil
}

func (s *MatchService) store(ctx context.Context, item match.Match) (match.Match, error) {
	item.UpdatedAt = s.now().UTC()
	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}
	return item, nil
}
