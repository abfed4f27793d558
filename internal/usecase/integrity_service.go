package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/courtside/padel-league/internal/domain/match"
	"github.com/courtside/padel-league/internal/domain/pair"
	"github.com/courtside/padel-league/internal/domain/user"
	"github.com/courtside/padel-league/internal/platform/logging"
)

const integrityMaxWorkers = 4

type IntegrityIssue struct {
	Kind     string `json:"kind"`
	EntityID string `json:"entity_id"`
	Detail   string `json:"detail"`
}

type IntegrityReport struct {
	CheckCount  int              `json:"check_count"`
	IssueCount  int              `json:"issue_count"`
	WorkerCount int              `json:"worker_count"`
	Issues      []IntegrityIssue `json:"issues"`
}

// IntegrityService sweeps the stored league for broken cross-references:
// pair membership, user status flags and match state shape. It reports
// and never repairs.
type IntegrityService struct {
	userRepo  user.Repository
	pairRepo  pair.Repository
	matchRepo match.Repository
	logger    *logging.Logger
}

func NewIntegrityService(
	userRepo user.Repository,
	pairRepo pair.Repository,
	matchRepo match.Repository,
	logger *logging.Logger,
) *IntegrityService {
	return &IntegrityService{
		userRepo:  userRepo,
		pairRepo:  pairRepo,
		matchRepo: matchRepo,
		logger:    logger,
	}
}

type integritySnapshot struct {
	usersByID map[string]user.User
	pairsByID map[string]pair.Pair
}

func (s *IntegrityService) Run(ctx context.Context, maxWorkers int) (IntegrityReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IntegrityService.Run")
	defer span.End()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return IntegrityReport{}, fmt.Errorf("list users: %w", err)
	}
	pairs, err := s.pairRepo.List(ctx)
	if err != nil {
		return IntegrityReport{}, fmt.Errorf("list pairs: %w", err)
	}

	matches := make([]match.Match, 0)
	for _, leagueType := range user.AllLeagueTypes {
		items, err := s.matchRepo.ListByLeague(ctx, leagueType)
		if err != nil {
			return IntegrityReport{}, fmt.Errorf("list matches: %w", err)
		}
		matches = append(matches, items...)
	}

	snapshot := integritySnapshot{
		usersByID: make(map[string]user.User, len(users)),
		pairsByID: make(map[string]pair.Pair, len(pairs)),
	}
	for _, u := range users {
		snapshot.usersByID[u.ID] = u
	}
	for _, p := range pairs {
		snapshot.pairsByID[p.ID] = p
	}

	checks := make([]func() []IntegrityIssue, 0, len(users)+len(pairs)+len(matches))
	for _, u := range users {
		u := u
		checks = append(checks, func() []IntegrityIssue { return checkUser(u, snapshot) })
	}
	for _, p := range pairs {
		p := p
		checks = append(checks, func() []IntegrityIssue { return checkPair(p, snapshot) })
	}
	for _, m := range matches {
		m := m
		checks = append(checks, func() []IntegrityIssue { return checkMatch(m, snapshot) })
	}

	workerCount := normalizeIntegrityWorkerCount(maxWorkers, len(checks))
	report := IntegrityReport{
		CheckCount:  len(checks),
		WorkerCount: workerCount,
		Issues:      []IntegrityIssue{},
	}
	if len(checks) == 0 {
		return report, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return IntegrityReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan []IntegrityIssue, len(checks))
	var issueCount atomic.Int32

	var workers sync.WaitGroup
	for _, check := range checks {
		check := check
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			issues := check()
			issueCount.Add(int32(len(issues)))
			results <- issues
		}); err != nil {
			workers.Done()
			return IntegrityReport{}, fmt.Errorf("submit check to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for issues := range results {
		report.Issues = append(report.Issues, issues...)
	}
	sort.SliceStable(report.Issues, func(i, j int) bool {
		if report.Issues[i].Kind != report.Issues[j].Kind {
			return report.Issues[i].Kind < report.Issues[j].Kind
		}
		return report.Issues[i].EntityID < report.Issues[j].EntityID
	})
	report.IssueCount = int(issueCount.Load())

	s.logger.InfoContext(ctx, "integrity sweep finished",
		"checks", report.CheckCount,
		"issues", report.IssueCount,
	)
	return report, nil
}

func checkUser(u user.User, snapshot integritySnapshot) []IntegrityIssue {
	var issues []IntegrityIssue

	paired := u.Status == user.StatusPaired
	if paired && u.PairID == "" {
		issues = append(issues, IntegrityIssue{
			Kind:     "user_paired_without_pair",
			EntityID: u.ID,
			Detail:   "status is paired but no pair is referenced",
		})
	}
	if !paired && u.PairID != "" {
		issues = append(issues, IntegrityIssue{
			Kind:     "user_pair_without_status",
			EntityID: u.ID,
			Detail:   fmt.Sprintf("pair %s referenced but status is %s", u.PairID, u.Status),
		})
	}
	if u.PairID != "" {
		p, ok := snapshot.pairsByID[u.PairID]
		if !ok {
			issues = append(issues, IntegrityIssue{
				Kind:     "user_dangling_pair",
				EntityID: u.ID,
				Detail:   fmt.Sprintf("pair %s does not exist", u.PairID),
			})
		} else if !p.HasMember(u.ID) {
			issues = append(issues, IntegrityIssue{
				Kind:     "user_not_in_own_pair",
				EntityID: u.ID,
				Detail:   fmt.Sprintf("pair %s does not list the user as a member", u.PairID),
			})
		}
	}

	return issues
}

func checkPair(p pair.Pair, snapshot integritySnapshot) []IntegrityIssue {
	var issues []IntegrityIssue

	if !p.HasMember(p.CaptainUserID) {
		issues = append(issues, IntegrityIssue{
			Kind:     "pair_captain_not_member",
			EntityID: p.ID,
			Detail:   fmt.Sprintf("captain %s is not a member", p.CaptainUserID),
		})
	}
	for _, memberID := range p.MemberIDs() {
		member, ok := snapshot.usersByID[memberID]
		if !ok {
			issues = append(issues, IntegrityIssue{
				Kind:     "pair_missing_member",
				EntityID: p.ID,
				Detail:   fmt.Sprintf("member %s does not exist", memberID),
			})
			continue
		}
		if member.PairID != p.ID {
			issues = append(issues, IntegrityIssue{
				Kind:     "pair_member_backref",
				EntityID: p.ID,
				Detail:   fmt.Sprintf("member %s references pair %q", memberID, member.PairID),
			})
		}
		if member.LeagueType != p.LeagueType {
			issues = append(issues, IntegrityIssue{
				Kind:     "pair_league_mismatch",
				EntityID: p.ID,
				Detail:   fmt.Sprintf("member %s plays %s, pair is %s", memberID, member.LeagueType, p.LeagueType),
			})
		}
	}

	return issues
}

func checkMatch(m match.Match, snapshot integritySnapshot) []IntegrityIssue {
	var issues []IntegrityIssue

	if _, ok := snapshot.pairsByID[m.PairAID]; !ok {
		issues = append(issues, IntegrityIssue{
			Kind:     "match_dangling_pair",
			EntityID: m.ID,
			Detail:   fmt.Sprintf("pair_a %s does not exist", m.PairAID),
		})
	}

	if m.IsBye != (m.Status == match.StatusBye) {
		issues = append(issues, IntegrityIssue{
			Kind:     "match_bye_status",
			EntityID: m.ID,
			Detail:   fmt.Sprintf("is_bye=%t but status is %s", m.IsBye, m.Status),
		})
	}
	if m.IsBye {
		if m.PairBID != "" {
			issues = append(issues, IntegrityIssue{
				Kind:     "match_bye_opponent",
				EntityID: m.ID,
				Detail:   "bye match references an opponent pair",
			})
		}
		return issues
	}

	if m.PairBID == "" {
		issues = append(issues, IntegrityIssue{
			Kind:     "match_missing_opponent",
			EntityID: m.ID,
			Detail:   "non-bye match has no opponent pair",
		})
	} else if _, ok := snapshot.pairsByID[m.PairBID]; !ok {
		issues = append(issues, IntegrityIssue{
			Kind:     "match_dangling_pair",
			EntityID: m.ID,
			Detail:   fmt.Sprintf("pair_b %s does not exist", m.PairBID),
		})
	}

	switch m.Status {
	case match.StatusPendingConfirm, match.StatusConfirmed, match.StatusDisputed:
		if m.Score == nil {
			issues = append(issues, IntegrityIssue{
				Kind:     "match_missing_score",
				EntityID: m.ID,
				Detail:   fmt.Sprintf("status %s requires a submitted score", m.Status),
			})
		}
	}
	if m.Status == match.StatusDisputed && m.Dispute == nil {
		issues = append(issues, IntegrityIssue{
			Kind:     "match_missing_dispute",
			EntityID: m.ID,
			Detail:   "disputed match has no dispute record",
		})
	}
	if m.Dispute != nil && m.Status != match.StatusDisputed {
		issues = append(issues, IntegrityIssue{
			Kind:     "match_stale_dispute",
			EntityID: m.ID,
			Detail:   fmt.Sprintf("dispute record present in status %s", m.Status),
		})
	}
	if m.Status == match.StatusScheduled && m.ScheduledAt == nil {
		issues = append(issues, IntegrityIssue{
			Kind:     "match_missing_booking",
			EntityID: m.ID,
			Detail:   "scheduled match has no booking time",
		})
	}

	return issues
}

func normalizeIntegrityWorkerCount(value int, checkCount int) int {
	if checkCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > integrityMaxWorkers {
		value = integrityMaxWorkers
	}
	if value > checkCount {
		value = checkCount
	}
	return value
}
