package postgres

import (
	"time"

	"github.com/courtside/padel-league/internal/domain/user"
)

type userTableModel struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	LeagueType   string    `db:"league_type"`
	FacilityID   string    `db:"facility_id"`
	SkillLevel   *int      `db:"skill_level"`
	Availability *string   `db:"availability"`
	Status       string    `db:"status"`
	PairID       *string   `db:"pair_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func userFromRow(row userTableModel) user.User {
	item := user.User{
		ID:         row.ID,
		Name:       row.Name,
		Email:      row.Email,
		LeagueType: user.LeagueType(row.LeagueType),
		FacilityID: row.FacilityID,
		Status:     user.Status(row.Status),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.SkillLevel != nil {
		level := *row.SkillLevel
		item.SkillLevel = &level
	}
	if row.Availability != nil {
		availability := user.Availability(*row.Availability)
		item.Availability = &availability
	}
	if row.PairID != nil {
		item.PairID = *row.PairID
	}
	return item
}

func userToRow(item user.User) userTableModel {
	row := userTableModel{
		ID:         item.ID,
		Name:       item.Name,
		Email:      item.Email,
		LeagueType: string(item.LeagueType),
		FacilityID: item.FacilityID,
		Status:     string(item.Status),
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
	if item.SkillLevel != nil {
		level := *item.SkillLevel
		row.SkillLevel = &level
	}
	if item.Availability != nil {
		availability := string(*item.Availability)
		row.Availability = &availability
	}
	if item.PairID != "" {
		pairID := item.PairID
		row.PairID = &pairID
	}
	return row
}
