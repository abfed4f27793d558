package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/courtside/padel-league/internal/domain/user"
	qb "github.com/courtside/padel-league/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	query, args, err := userBaseSelectBuilder().
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return user.User{}, false, errors.Wrap(err, "build get user query")
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, errors.Wrap(err, "get user")
	}
	return userFromRow(row), true, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	query, args, err := userBaseSelectBuilder().
		Where(qb.Eq("email", user.NormalizeEmail(email))).
		ToSQL()
	if err != nil {
		return user.User{}, false, errors.Wrap(err, "build get user by email query")
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, errors.Wrap(err, "get user by email")
	}
	return userFromRow(row), true, nil
}

// List returns users in registration order.
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query, args, err := userBaseSelectBuilder().
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list users query")
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row))
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, item user.User) error {
	query, args, err := qb.InsertModel("users", userToRow(item), "")
	if err != nil {
		return errors.Wrap(err, "build insert user query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, item user.User) error {
	row := userToRow(item)
	query, args, err := qb.Update("users").
		Set("name", row.Name).
		Set("email", row.Email).
		Set("league_type", row.LeagueType).
		Set("facility_id", row.FacilityID).
		Set("skill_level", row.SkillLevel).
		Set("availability", row.Availability).
		Set("status", row.Status).
		Set("pair_id", row.PairID).
		Set("updated_at", row.UpdatedAt).
		Where(qb.Eq("id", row.ID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update user query")
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "update user")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update user rows affected")
	}
	if affected == 0 {
		return errors.Newf("user %s does not exist", item.ID)
	}
	return nil
}

func userBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("users")
}
