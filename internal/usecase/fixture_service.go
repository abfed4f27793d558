package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/courtside/padel-league/internal/domain/match"
	"github.com/courtside/padel-league/internal/domain/pair"
	"github.com/courtside/padel-league/internal/domain/season"
	"github.com/courtside/padel-league/internal/domain/user"
	"github.com/courtside/padel-league/internal/platform/id"
	"github.com/courtside/padel-league/internal/platform/logging"
)

// fixtureRepeatPenalty outweighs any realistic rating gap so rematches
// only happen once every fresh opponent is exhausted.
const fixtureRepeatPenalty = 1000

// FixtureService generates one round of weekly matches per league. The
// pairing over matchup costs is a greedy approximation of min-cost
// perfect matching; for a fixed set of pairs and history the output is
// deterministic.
type FixtureService struct {
	userRepo  user.Repository
	pairRepo  pair.Repository
	matchRepo match.Repository
	season    season.Season
	facility  season.Facility
	ids       id.Generator
	logger    *logging.Logger
	now       func() time.Time
	lock      *SnapshotLock
}

func NewFixtureService(
	userRepo user.Repository,
	pairRepo pair.Repository,
	matchRepo match.Repository,
	activeSeason season.Season,
	facility season.Facility,
	ids id.Generator,
	logger *logging.Logger,
	lock *SnapshotLock,
) *FixtureService {
	if lock == nil {
		lock = NewSnapshotLock()
	}
	return &FixtureService{
		userRepo:  userRepo,
		pairRepo:  pairRepo,
		matchRepo: matchRepo,
		season:    activeSeason,
		facility:  facility,
		ids:       ids,
		logger:    logger,
		now:       time.Now,
		lock:      lock,
	}
}

// CurrentWeekIndex maps now onto the configured season.
func (s *FixtureService) CurrentWeekIndex() int {
	return s.season.WeekIndexAt(s.now())
}

type fixtureCandidate struct {
	a    int
	b    int
	cost int
}

// GenerateWeeklyFixtures creates the week's matches for every league
// that does not have them yet. A league with an odd pair count gets
// exactly one bye.
func (s *FixtureService) GenerateWeeklyFixtures(ctx context.Context, weekIndex int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GenerateWeeklyFixtures")
	defer span.End()

	s.lock.Lock()
	defer s.lock.Unlock()

	if weekIndex < 0 || weekIndex >= s.season.Weeks {
		return nil, fmt.Errorf("%w: week_index must be between 0 and %d", ErrInvalidInput, s.season.Weeks-1)
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	usersByID := make(map[string]user.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	created := make([]match.Match, 0)
	for _, leagueType := range user.AllLeagueTypes {
		items, err := s.generateForLeague(ctx, weekIndex, leagueType, usersByID)
		if err != nil {
			return created, err
		}
		created = append(created, items...)
	}

	s.logger.InfoContext(ctx, "weekly fixtures generated",
		"week_index", weekIndex,
		"matches_created", len(created),
	)
	return created, nil
}

func (s *FixtureService) generateForLeague(
	ctx context.Context,
	weekIndex int,
	leagueType user.LeagueType,
	usersByID map[string]user.User,
) ([]match.Match, error) {
	existing, err := s.matchRepo.ListByWeek(ctx, weekIndex, leagueType)
	if err != nil {
		return nil, fmt.Errorf("list matches for week: %w", err)
	}
	if len(existing) > 0 {
		return nil, nil
	}

	pairs, err := s.pairRepo.ListByLeague(ctx, leagueType)
	if err != nil {
		return nil, fmt.Errorf("list pairs: %w", err)
	}
	if len(pairs) == 0 {
		return nil, nil
	}

	history, err := s.matchRepo.ListByLeague(ctx, leagueType)
	if err != nil {
		return nil, fmt.Errorf("list league history: %w", err)
	}
	played := make(map[string]struct{}, len(history))
	for _, m := range history {
		if m.IsBye {
			continue
		}
		played[match.MatchupKey(m.PairAID, m.PairBID)] = struct{}{}
	}

	ratings := make([]int, len(pairs))
	for i, p := range pairs {
		ratings[i] = pairRating(p, usersByID)
	}

	candidates := make([]fixtureCandidate, 0, len(pairs)*(len(pairs)-1)/2)
	for i := 0; i < len(pairs); i++ {
		for j := i + 1; j < len(pairs); j++ {
			cost := ratings[i] - ratings[j]
			if cost < 0 {
				cost = -cost
			}
			if _, ok := played[match.MatchupKey(pairs[i].ID, pairs[j].ID)]; ok {
				cost += fixtureRepeatPenalty
			}
			candidates = append(candidates, fixtureCandidate{a: i, b: j, cost: cost})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].cost < candidates[j].cost
	})

	weekStart, weekEnd := s.season.WeekWindow(weekIndex)
	now := s.now().UTC()

	created := make([]match.Match, 0, len(pairs)/2+1)
	used := make(map[int]struct{}, len(pairs))
	for _, c := range candidates {
		if _, ok := used[c.a]; ok {
			continue
		}
		if _, ok := used[c.b]; ok {
			continue
		}

		matchID, err := s.ids.NewID()
		if err != nil {
			return created, fmt.Errorf("generate match id: %w", err)
		}
		item := match.Match{
			ID:         matchID,
			LeagueType: leagueType,
			FacilityID: s.facility.ID,
			SeasonID:   s.season.ID,
			WeekIndex:  weekIndex,
			WeekStart:  weekStart,
			WeekEnd:    weekEnd,
			PairAID:    pairs[c.a].ID,
			PairBID:    pairs[c.b].ID,
			Status:     match.StatusNotScheduled,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.matchRepo.Create(ctx, item); err != nil {
			return created, fmt.Errorf("create match: %w", err)
		}
		created = append(created, item)
		used[c.a] = struct{}{}
		used[c.b] = struct{}{}
	}

	for i, p := range pairs {
		if _, ok := used[i]; ok {
			continue
		}

		matchID, err := s.ids.NewID()
		if err != nil {
			return created, fmt.Errorf("generate match id: %w", err)
		}
		bye := match.Match{
			ID:         matchID,
			LeagueType: leagueType,
			FacilityID: s.facility.ID,
			SeasonID:   s.season.ID,
			WeekIndex:  weekIndex,
			WeekStart:  weekStart,
			WeekEnd:    weekEnd,
			PairAID:    p.ID,
			IsBye:      true,
			Status:     match.StatusBye,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.matchRepo.Create(ctx, bye); err != nil {
			return created, fmt.Errorf("create bye match: %w", err)
		}
		created = append(created, bye)
	}

	return created, nil
}

// pairRating is the rounded mean of the member ratings. Members missing
// from the snapshot count as zero rather than failing the whole week.
func pairRating(p pair.Pair, usersByID map[string]user.User) int {
	members := p.MemberIDs()
	sum := 0.0
	for _, memberID := range members {
		sum += float64(usersByID[memberID].Rating())
	}
	return int(math.Round(sum / float64(len(members))))
}
