package pair

import (
	"context"

	"github.com/courtside/padel-league/internal/domain/user"
)

// Repository exposes pair persistence. ListByLeague returns pairs in
// creation order so fixture enumeration stays deterministic.
type Repository interface {
	GetByID(ctx context.Context, pairID string) (Pair, bool, error)
	ListByLeague(ctx context.Context, leagueType user.LeagueType) ([]Pair, error)
	List(ctx context.Context) ([]Pair, error)
	Create(ctx context.Context, item Pair) error
}
