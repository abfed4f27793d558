package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/courtside/padel-league/internal/domain/match"
	"github.com/courtside/padel-league/internal/domain/user"
)

type matchTableModel struct {
	ID                string         `db:"id"`
	LeagueType        string         `db:"league_type"`
	FacilityID        string         `db:"facility_id"`
	SeasonID          string         `db:"season_id"`
	WeekIndex         int            `db:"week_index"`
	WeekStart         time.Time      `db:"week_start"`
	WeekEnd           time.Time      `db:"week_end"`
	PairAID           string         `db:"pair_a_id"`
	PairBID           *string        `db:"pair_b_id"`
	IsBye             bool           `db:"is_bye"`
	ScheduledAt       *time.Time     `db:"scheduled_at"`
	ScheduledByUserID *string        `db:"scheduled_by_user_id"`
	CourtNote         string         `db:"court_note"`
	Status            string         `db:"status"`
	ScoreSets         pq.StringArray `db:"score_sets"`
	ScoreSubmittedBy  *string        `db:"score_submitted_by"`
	ScoreSubmittedAt  *time.Time     `db:"score_submitted_at"`
	DisputeSets       pq.StringArray `db:"dispute_sets"`
	DisputeBy         *string        `db:"dispute_by"`
	DisputeAt         *time.Time     `db:"dispute_at"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func matchFromRow(row matchTableModel) match.Match {
	item := match.Match{
		ID:         row.ID,
		LeagueType: user.LeagueType(row.LeagueType),
		FacilityID: row.FacilityID,
		SeasonID:   row.SeasonID,
		WeekIndex:  row.WeekIndex,
		WeekStart:  row.WeekStart,
		WeekEnd:    row.WeekEnd,
		PairAID:    row.PairAID,
		IsBye:      row.IsBye,
		CourtNote:  row.CourtNote,
		Status:     match.Status(row.Status),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.PairBID != nil {
		item.PairBID = *row.PairBID
	}
	if row.ScheduledAt != nil {
		at := *row.ScheduledAt
		item.ScheduledAt = &at
	}
	if row.ScheduledByUserID != nil {
		item.ScheduledByUserID = *row.ScheduledByUserID
	}
	if row.ScoreSubmittedAt != nil && row.ScoreSubmittedBy != nil {
		item.Score = &match.Score{
			Sets:              append([]string(nil), row.ScoreSets...),
			SubmittedByUserID: *row.ScoreSubmittedBy,
			SubmittedAt:       *row.ScoreSubmittedAt,
		}
	}
	if row.DisputeAt != nil && row.DisputeBy != nil {
		item.Dispute = &match.Dispute{
			ProposedSets:     append([]string(nil), row.DisputeSets...),
			DisputedByUserID: *row.DisputeBy,
			DisputedAt:       *row.DisputeAt,
		}
	}
	return item
}

func matchToRow(item match.Match) matchTableModel {
	row := matchTableModel{
		ID:         item.ID,
		LeagueType: string(item.LeagueType),
		FacilityID: item.FacilityID,
		SeasonID:   item.SeasonID,
		WeekIndex:  item.WeekIndex,
		WeekStart:  item.WeekStart,
		WeekEnd:    item.WeekEnd,
		PairAID:    item.PairAID,
		IsBye:      item.IsBye,
		CourtNote:  item.CourtNote,
		Status:     string(item.Status),
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
	if item.PairBID != "" {
		pairBID := item.PairBID
		row.PairBID = &pairBID
	}
	if item.ScheduledAt != nil {
		at := *item.ScheduledAt
		row.ScheduledAt = &at
	}
	if item.ScheduledByUserID != "" {
		scheduledBy := item.ScheduledByUserID
		row.ScheduledByUserID = &scheduledBy
	}
	if item.Score != nil {
		row.ScoreSets = pq.StringArray(item.Score.Sets)
		submittedBy := item.Score.SubmittedByUserID
		submittedAt := item.Score.SubmittedAt
		row.ScoreSubmittedBy = &submittedBy
		row.ScoreSubmittedAt = &submittedAt
	}
	if item.Dispute != nil {
		row.DisputeSets = pq.StringArray(item.Dispute.ProposedSets)
		disputeBy := item.Dispute.DisputedByUserID
		disputeAt := item.Dispute.DisputedAt
		row.DisputeBy = &disputeBy
		row.DisputeAt = &disputeAt
	}
	return row
}
