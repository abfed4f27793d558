package user

import (
	"strings"
	"time"
)

// LeagueType is the league a player competes in. Friendly leagues allow
// solo signups with automatic partner matching; competitive leagues
// require a pre-formed pair.
type LeagueType string

const (
	LeagueFriendly    LeagueType = "friendly"
	LeagueCompetitive LeagueType = "competitive"
)

var AllLeagueTypes = []LeagueType{LeagueFriendly, LeagueCompetitive}

func ParseLeagueType(value string) (LeagueType, bool) {
	switch LeagueType(strings.ToLower(strings.TrimSpace(value))) {
	case LeagueFriendly:
		return LeagueFriendly, true
	case LeagueCompetitive:
		return LeagueCompetitive, true
	default:
		return "", false
	}
}

// Availability is when a player can get on court.
type Availability string

const (
	AvailabilityWeeknights Availability = "weeknights"
	AvailabilityWeekends   Availability = "weekends"
	AvailabilityBoth       Availability = "both"
)

func ParseAvailability(value string) (Availability, bool) {
	switch Availability(strings.ToLower(strings.TrimSpace(value))) {
	case AvailabilityWeeknights:
		return AvailabilityWeeknights, true
	case AvailabilityWeekends:
		return AvailabilityWeekends, true
	case AvailabilityBoth:
		return AvailabilityBoth, true
	default:
		return "", false
	}
}

// Overlaps reports whether two players can find a common slot.
func (a Availability) Overlaps(b Availability) bool {
	if a == AvailabilityBoth || b == AvailabilityBoth {
		return true
	}
	return a == b
}

// Status tracks onboarding progress up to pair formation.
type Status string

const (
	StatusNeedsProfile      Status = "needs_profile"
	StatusNeedsPartner      Status = "needs_partner"
	StatusWaitingForPair    Status = "waiting_for_pair"
	StatusWaitingForPartner Status = "waiting_for_partner"
	StatusPaired            Status = "paired"
)

const (
	MinSkillLevel = 1
	MaxSkillLevel = 10
)

// User is a registered player. SkillLevel and Availability stay nil until
// the profile step is completed; PairID is set exactly when Status is
// StatusPaired.
type User struct {
	ID           string
	Name         string
	Email        string
	LeagueType   LeagueType
	FacilityID   string
	SkillLevel   *int
	Availability *Availability
	Status       Status
	PairID       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Rating is the derived matchmaking number: skill level scaled by 100.
// Zero while the profile is incomplete.
func (u User) Rating() int {
	if u.SkillLevel == nil {
		return 0
	}
	return *u.SkillLevel * 100
}

func (u User) ProfileComplete() bool {
	return u.SkillLevel != nil && u.Availability != nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
