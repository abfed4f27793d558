package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/courtside/padel-league/internal/domain/invite"
	"github.com/courtside/padel-league/internal/domain/user"
	qb "github.com/courtside/padel-league/internal/platform/querybuilder"
)

type InviteRepository struct {
	db *sqlx.DB
}

func NewInviteRepository(db *sqlx.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) GetByCode(ctx context.Context, code string) (invite.Invite, bool, error) {
	query, args, err := inviteBaseSelectBuilder().
		Where(qb.Eq("code", code)).
		ToSQL()
	if err != nil {
		return invite.Invite{}, false, errors.Wrap(err, "build get invite query")
	}

	var row inviteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return invite.Invite{}, false, nil
		}
		return invite.Invite{}, false, errors.Wrap(err, "get invite")
	}
	return inviteFromRow(row), true, nil
}

func (r *InviteRepository) ListPendingByEmail(ctx context.Context, email string) ([]invite.Invite, error) {
	query, args, err := inviteBaseSelectBuilder().
		Where(
			qb.Eq("partner_email", user.NormalizeEmail(email)),
			qb.IsNull("accepted_by_user_id"),
		).
		OrderBy("created_at", "code").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list pending invites query")
	}

	var rows []inviteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list pending invites")
	}

	out := make([]invite.Invite, 0, len(rows))
	for _, row := range rows {
		out = append(out, inviteFromRow(row))
	}
	return out, nil
}

func (r *InviteRepository) Create(ctx context.Context, item invite.Invite) error {
	query, args, err := qb.InsertModel("invites", inviteToRow(item), "")
	if err != nil {
		return errors.Wrap(err, "build insert invite query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert invite")
	}
	return nil
}

func (r *InviteRepository) Update(ctx context.Context, item invite.Invite) error {
	row := inviteToRow(item)
	query, args, err := qb.Update("invites").
		Set("accepted_by_user_id", row.AcceptedByUserID).
		Where(qb.Eq("code", row.Code)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update invite query")
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "update invite")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update invite rows affected")
	}
	if affected == 0 {
		return errors.Newf("invite %s does not exist", item.Code)
	}
	return nil
}

func inviteBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("invites")
}
