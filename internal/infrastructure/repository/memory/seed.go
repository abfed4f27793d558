package memory

import (
	"time"

	"github.com/courtside/padel-league/internal/domain/user"
)

// SeedUsers returns a small friendly-league waiting pool plus one
// competitive player, used in dev mode and tests.
func SeedUsers() []user.User {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return []user.User{
		seedUser("usr-ana", "Ana Ferreira", "ana@example.test", user.LeagueFriendly, 4, user.AvailabilityWeeknights, base),
		seedUser("usr-bram", "Bram de Vries", "bram@example.test", user.LeagueFriendly, 5, user.AvailabilityBoth, base.Add(1*time.Minute)),
		seedUser("usr-carla", "Carla Mendes", "carla@example.test", user.LeagueFriendly, 6, user.AvailabilityWeekends, base.Add(2*time.Minute)),
		seedUser("usr-diego", "Diego Ortiz", "diego@example.test", user.LeagueFriendly, 6, user.AvailabilityWeeknights, base.Add(3*time.Minute)),
		seedUser("usr-elin", "Elin Larsson", "elin@example.test", user.LeagueCompetitive, 8, user.AvailabilityBoth, base.Add(4*time.Minute)),
	}
}

func seedUser(id, name, email string, leagueType user.LeagueType, skill int, availability user.Availability, createdAt time.Time) user.User {
	status := user.StatusNeedsPartner
	if leagueType == user.LeagueFriendly {
		status = user.StatusWaitingForPair
	}
	return user.User{
		ID:           id,
		Name:         name,
		Email:        email,
		LeagueType:   leagueType,
		FacilityID:   "eddies",
		SkillLevel:   &skill,
		Availability: &availability,
		Status:       status,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}
