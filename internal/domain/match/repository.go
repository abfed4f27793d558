package match

import (
	"context"

	"github.com/courtside/padel-league/internal/domain/user"
)

// Repository exposes match persistence. List methods return matches in
// creation order.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListByLeague(ctx context.Context, leagueType user.LeagueType) ([]Match, error)
	ListByWeek(ctx context.Context, weekIndex int, leagueType user.LeagueType) ([]Match, error)
	ListByPair(ctx context.Context, pairID string) ([]Match, error)
	Create(ctx context.Context, item Match) error
	Update(ctx context.Context, item Match) error
}
