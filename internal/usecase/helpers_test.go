package usecase

import (
	"fmt"
	"time"

	"github.com/courtside/padel-league/internal/domain/season"
	"github.com/courtside/padel-league/internal/domain/user"
)

type seqIDGenerator struct {
	n int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}

func (g *seqIDGenerator) NewCode() (string, error) {
	g.n++
	return fmt.Sprintf("code-%03d", g.n), nil
}

func testSeason() season.Season {
	return season.Season{
		ID:       "s1",
		Name:     "Spring 2026",
		StartsOn: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Weeks:    8,
	}
}

func testFacility() season.Facility {
	return season.Facility{ID: "eddies", Name: "Eddie's Padel", Town: "Haarlem"}
}

func waitingUser(id string, skill int, availability user.Availability) user.User {
	return user.User{
		ID:           id,
		Name:         "Player " + id,
		Email:        id + "@example.test",
		LeagueType:   user.LeagueFriendly,
		FacilityID:   "eddies",
		SkillLevel:   &skill,
		Availability: &availability,
		Status:       user.StatusWaitingForPair,
	}
}
