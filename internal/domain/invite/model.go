package invite

import (
	"errors"
	"time"

	"github.com/courtside/padel-league/internal/domain/user"
)

var (
	ErrNotFound         = errors.New("invite not found")
	ErrAlreadyAccepted  = errors.New("invite already accepted")
	ErrUserMissing      = errors.New("invite user missing")
	ErrEmailMismatch    = errors.New("invite email mismatch")
	ErrLeagueMismatch   = errors.New("invite league type mismatch")
	ErrFacilityMismatch = errors.New("invite facility mismatch")
	ErrAlreadyPaired    = errors.New("user already belongs to a pair")
)

// Invite is a one-time partner invitation. League and facility are copied
// from the creator at creation time; AcceptedByUserID is set exactly once.
type Invite struct {
	Code             string
	LeagueType       user.LeagueType
	FacilityID       string
	CreatedByUserID  string
	PartnerEmail     string
	AcceptedByUserID string
	CreatedAt        time.Time
}

func (i Invite) Accepted() bool {
	return i.AcceptedByUserID != ""
}
