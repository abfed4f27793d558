package pair

import (
	"time"

	"github.com/courtside/padel-league/internal/domain/user"
)

// Pair is a fixed doubles team. Rosters are immutable once created;
// re-pairing means forming a new Pair.
type Pair struct {
	ID            string
	LeagueType    user.LeagueType
	FacilityID    string
	CaptainUserID string
	UserAID       string
	UserBID       string
	CreatedAt     time.Time
}

func (p Pair) HasMember(userID string) bool {
	return userID != "" && (p.UserAID == userID || p.UserBID == userID)
}

func (p Pair) MemberIDs() [2]string {
	return [2]string{p.UserAID, p.UserBID}
}
