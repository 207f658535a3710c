package models

import (
	"github.com/google/uuid"
)

// FormRecord is one venue's slice of a team's recent record.
type FormRecord struct {
	Played       int `json:"played"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
}

// Add folds one result into the record.
func (r *FormRecord) Add(scored, conceded int) {
	r.Played++
	r.GoalsFor += scored
	r.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		r.Wins++
	case scored < conceded:
		r.Losses++
	default:
		r.Draws++
	}
}

// TeamFormSnapshot summarizes a team's recent scoring record. It is computed
// on demand from completed matches and never persisted.
type TeamFormSnapshot struct {
	TeamID          uuid.UUID  `json:"team_id"`
	MatchesCounted  int        `json:"matches_counted"`
	Wins            int        `json:"wins"`
	Draws           int        `json:"draws"`
	Losses          int        `json:"losses"`
	GoalsFor        int        `json:"goals_for"`
	GoalsAgainst    int        `json:"goals_against"`
	AvgGoalsFor     float64    `json:"avg_goals_for"`
	AvgGoalsAgainst float64    `json:"avg_goals_against"`
	Home            FormRecord `json:"home"`
	Away            FormRecord `json:"away"`
	FormString      string     `json:"form_string"`
	LowConfidence   bool       `json:"low_confidence"`
}
