package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/courtside/padel-league/internal/domain/match"
	"github.com/courtside/padel-league/internal/domain/user"
	qb "github.com/courtside/padel-league/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, errors.Wrap(err, "build get match query")
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, errors.Wrap(err, "get match")
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListByLeague(ctx context.Context, leagueType user.LeagueType) ([]match.Match, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(qb.Eq("league_type", string(leagueType))).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list matches by league query")
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) ListByWeek(ctx context.Context, weekIndex int, leagueType user.LeagueType) ([]match.Match, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(
			qb.Eq("week_index", weekIndex),
			qb.Eq("league_type", string(leagueType)),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list matches by week query")
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) ListByPair(ctx context.Context, pairID string) ([]match.Match, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(qb.Expr("(pair_a_id = ? OR pair_b_id = ?)", pairID, pairID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list matches by pair query")
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	query, args, err := qb.InsertModel("matches", matchToRow(item), "")
	if err != nil {
		return errors.Wrap(err, "build insert match query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert match")
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	row := matchToRow(item)
	query, args, err := qb.Update("matches").
		Set("scheduled_at", row.ScheduledAt).
		Set("scheduled_by_user_id", row.ScheduledByUserID).
		Set("court_note", row.CourtNote).
		Set("status", row.Status).
		Set("score_sets", row.ScoreSets).
		Set("score_submitted_by", row.ScoreSubmittedBy).
		Set("score_submitted_at", row.ScoreSubmittedAt).
		Set("dispute_sets", row.DisputeSets).
		Set("dispute_by", row.DisputeBy).
		Set("dispute_at", row.DisputeAt).
		Set("updated_at", row.UpdatedAt).
		Where(qb.Eq("id", row.ID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update match query")
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "update match")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update match rows affected")
	}
	if affected == 0 {
		return errors.Newf("match %s does not exist", item.ID)
	}
	return nil
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list matches")
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func matchBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("matches")
}
