package match

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/courtside/padel-league/internal/domain/user"
)

var (
	ErrIsBye             = errors.New("bye matches cannot be scored")
	ErrNotCaptain        = errors.New("only a pair captain can submit scores")
	ErrNotInMatch        = errors.New("user is not part of this match")
	ErrWrongSetCount     = errors.New("a result needs 2 or 3 sets")
	ErrInvalidSetFormat  = errors.New("set must look like 6-4")
	ErrNoScoreToConfirm  = errors.New("no score to confirm")
	ErrNoScoreToDispute  = errors.New("no score to dispute")
	ErrInvalidTransition = errors.New("invalid match state transition")
)

// Status is the fixture lifecycle state. Bye, confirmed and no_result are
// terminal.
type Status string

const (
	StatusNotScheduled   Status = "not_scheduled"
	StatusScheduled      Status = "scheduled"
	StatusPendingConfirm Status = "pending_confirm"
	StatusDisputed       Status = "disputed"
	StatusConfirmed      Status = "confirmed"
	StatusNoResult       Status = "no_result"
	StatusBye            Status = "bye"
)

// transitions is the full table of legal status moves. Anything absent is
// rejected with ErrInvalidTransition before any field changes.
var transitions = map[Status]map[Status]struct{}{
	StatusNotScheduled: {
		StatusScheduled:      {},
		StatusNotScheduled:   {},
		StatusPendingConfirm: {},
	},
	StatusScheduled: {
		StatusNotScheduled:   {},
		StatusScheduled:      {},
		StatusPendingConfirm: {},
	},
	StatusPendingConfirm: {
		StatusPendingConfirm: {},
		StatusConfirmed:      {},
		StatusDisputed:       {},
	},
	StatusDisputed: {
		StatusPendingConfirm: {},
		StatusNoResult:       {},
	},
}

func (s Status) CanTransitionTo(next Status) bool {
	targets, ok := transitions[s]
	if !ok {
		return false
	}
	_, ok = targets[next]
	return ok
}

func (s Status) Terminal() bool {
	_, ok := transitions[s]
	return !ok
}

var setPattern = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)

// ValidateSets checks the textual set-score format: 2 or 3 entries, each
// matching \d{1,2}-\d{1,2}.
func ValidateSets(sets []string) error {
	if len(sets) < 2 || len(sets) > 3 {
		return fmt.Errorf("%w: got %d", ErrWrongSetCount, len(sets))
	}
	for _, set := range sets {
		if !setPattern.MatchString(set) {
			return fmt.Errorf("%w: %q", ErrInvalidSetFormat, set)
		}
	}
	return nil
}

// MatchupKey is an order-independent identifier for a pair-vs-pair
// matchup, used for the repeat-opponent history.
func MatchupKey(pairID, otherPairID string) string {
	if otherPairID < pairID {
		pairID, otherPairID = otherPairID, pairID
	}
	return pairID + "|" + otherPairID
}

// Score is a submitted result awaiting confirmation.
type Score struct {
	Sets              []string
	SubmittedByUserID string
	SubmittedAt       time.Time
}

// Dispute is a counter-proposed result. Present only while the match is
// disputed.
type Dispute struct {
	ProposedSets     []string
	DisputedByUserID string
	DisputedAt       time.Time
}

// Match is one weekly fixture between two pairs, or a bye when PairBID is
// empty.
type Match struct {
	ID                string
	LeagueType        user.LeagueType
	FacilityID        string
	SeasonID          string
	WeekIndex         int
	WeekStart         time.Time
	WeekEnd           time.Time
	PairAID           string
	PairBID           string
	IsBye             bool
	ScheduledAt       *time.Time
	ScheduledByUserID string
	CourtNote         string
	Status            Status
	Score             *Score
	Dispute           *Dispute
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (m Match) Involves(pairID string) bool {
	return pairID != "" && (m.PairAID == pairID || m.PairBID == pairID)
}

// SetBooking records (or clears) externally booked court time. A nil time
// reverts the match to not_scheduled.
func (m *Match) SetBooking(userID string, scheduledAt *time.Time, courtNote string) error {
	if m.IsBye {
		return ErrIsBye
	}
	next := StatusScheduled
	if scheduledAt == nil {
		next = StatusNotScheduled
	}
	if !m.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.Status, next)
	}
	m.ScheduledAt = scheduledAt
	m.ScheduledByUserID = userID
	m.CourtNote = courtNote
	m.Status = next
	return nil
}

// ApplyScore stores a validated submission and moves the match to
// pending_confirm, discarding any open dispute.
func (m *Match) ApplyScore(sets []string, submittedBy string, at time.Time) error {
	if m.IsBye {
		return ErrIsBye
	}
	if err := ValidateSets(sets); err != nil {
		return err
	}
	if !m.Status.CanTransitionTo(StatusPendingConfirm) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.Status, StatusPendingConfirm)
	}
	m.Score = &Score{
		Sets:              append([]string(nil), sets...),
		SubmittedByUserID: submittedBy,
		SubmittedAt:       at,
	}
	m.Dispute = nil
	m.Status = StatusPendingConfirm
	return nil
}

func (m *Match) ConfirmScore() error {
	if m.Score == nil || m.Status != StatusPendingConfirm {
		return ErrNoScoreToConfirm
	}
	m.Status = StatusConfirmed
	return nil
}

// ApplyDispute records a counter-proposal against the pending score.
func (m *Match) ApplyDispute(sets []string, disputedBy string, at time.Time) error {
	if m.Score == nil || m.Status != StatusPendingConfirm {
		return ErrNoScoreToDispute
	}
	if err := ValidateSets(sets); err != nil {
		return err
	}
	m.Dispute = &Dispute{
		ProposedSets:     append([]string(nil), sets...),
		DisputedByUserID: disputedBy,
		DisputedAt:       at,
	}
	m.Status = StatusDisputed
	return nil
}

// ResolveDispute closes a disputed match as no_result. The dispute record
// is dropped; the originally submitted score is kept for the audit trail.
func (m *Match) ResolveDispute() error {
	if !m.Status.CanTransitionTo(StatusNoResult) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.Status, StatusNoResult)
	}
	m.Dispute = nil
	m.Status = StatusNoResult
	return nil
}
