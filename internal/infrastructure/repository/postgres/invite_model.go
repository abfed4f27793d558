package postgres

import (
	"time"

	"github.com/courtside/padel-league/internal/domain/invite"
	"github.com/courtside/padel-league/internal/domain/user"
)

type inviteTableModel struct {
	Code             string    `db:"code"`
	LeagueType       string    `db:"league_type"`
	FacilityID       string    `db:"facility_id"`
	CreatedByUserID  string    `db:"created_by_user_id"`
	PartnerEmail     string    `db:"partner_email"`
	AcceptedByUserID *string   `db:"accepted_by_user_id"`
	CreatedAt        time.Time `db:"created_at"`
}

func inviteFromRow(row inviteTableModel) invite.Invite {
	item := invite.Invite{
		Code:            row.Code,
		LeagueType:      user.LeagueType(row.LeagueType),
		FacilityID:      row.FacilityID,
		CreatedByUserID: row.CreatedByUserID,
		PartnerEmail:    row.PartnerEmail,
		CreatedAt:       row.CreatedAt,
	}
	if row.AcceptedByUserID != nil {
		item.AcceptedByUserID = *row.AcceptedByUserID
	}
	return item
}

func inviteToRow(item invite.Invite) inviteTableModel {
	row := inviteTableModel{
		Code:            item.Code,
		LeagueType:      string(item.LeagueType),
		FacilityID:      item.FacilityID,
		CreatedByUserID: item.CreatedByUserID,
		PartnerEmail:    item.PartnerEmail,
		CreatedAt:       item.CreatedAt,
	}
	if item.AcceptedByUserID != "" {
		acceptedBy := item.AcceptedByUserID
		row.AcceptedByUserID = &acceptedBy
	}
	return row
}
