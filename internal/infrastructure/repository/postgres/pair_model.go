package postgres

import (
	"time"

	"github.com/courtside/padel-league/internal/domain/pair"
	"github.com/courtside/padel-league/internal/domain/user"
)

type pairTableModel struct {
	ID            string    `db:"id"`
	LeagueType    string    `db:"league_type"`
	FacilityID    string    `db:"facility_id"`
	CaptainUserID string    `db:"captain_user_id"`
	UserAID       string    `db:"user_a_id"`
	UserBID       string    `db:"user_b_id"`
	CreatedAt     time.Time `db:"created_at"`
}

func pairFromRow(row pairTableModel) pair.Pair {
	return pair.Pair{
		ID:            row.ID,
		LeagueType:    user.LeagueType(row.LeagueType),
		FacilityID:    row.FacilityID,
		CaptainUserID: row.CaptainUserID,
		UserAID:       row.UserAID,
		UserBID:       row.UserBID,
		CreatedAt:     row.CreatedAt,
	}
}

func pairToRow(item pair.Pair) pairTableModel {
	return pairTableModel{
		ID:            item.ID,
		LeagueType:    string(item.LeagueType),
		FacilityID:    item.FacilityID,
		CaptainUserID: item.CaptainUserID,
		UserAID:       item.UserAID,
		UserBID:       item.UserBID,
		CreatedAt:     item.CreatedAt,
	}
}
