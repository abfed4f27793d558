package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/courtside/padel-league/internal/domain/pair"
	"github.com/courtside/padel-league/internal/domain/user"
	qb "github.com/courtside/padel-league/internal/platform/querybuilder"
)

type PairRepository struct {
	db *sqlx.DB
}

func NewPairRepository(db *sqlx.DB) *PairRepository {
	return &PairRepository{db: db}
}

func (r *PairRepository) GetByID(ctx context.Context, pairID string) (pair.Pair, bool, error) {
	query, args, err := pairBaseSelectBuilder().
		Where(qb.Eq("id", pairID)).
		ToSQL()
	if err != nil {
		return pair.Pair{}, false, errors.Wrap(err, "build get pair query")
	}

	var row pairTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pair.Pair{}, false, nil
		}
		return pair.Pair{}, false, errors.Wrap(err, "get pair")
	}
	return pairFromRow(row), true, nil
}

func (r *PairRepository) ListByLeague(ctx context.Context, leagueType user.LeagueType) ([]pair.Pair, error) {
	query, args, err := pairBaseSelectBuilder().
		Where(qb.Eq("league_type", string(leagueType))).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list pairs by league query")
	}
	return r.selectPairs(ctx, query, args)
}

func (r *PairRepository) List(ctx context.Context) ([]pair.Pair, error) {
	query, args, err := pairBaseSelectBuilder().
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list pairs query")
	}
	return r.selectPairs(ctx, query, args)
}

func (r *PairRepository) Create(ctx context.Context, item pair.Pair) error {
	query, args, err := qb.InsertModel("pairs", pairToRow(item), "")
	if err != nil {
		return errors.Wrap(err, "build insert pair query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert pair")
	}
	return nil
}

func (r *PairRepository) selectPairs(ctx context.Context, query string, args []any) ([]pair.Pair, error) {
	var rows []pairTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list pairs")
	}

	out := make([]pair.Pair, 0, len(rows))
	for _, row := range rows {
		out = append(out, pairFromRow(row))
	}
	return out, nil
}

func pairBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("pairs")
}
