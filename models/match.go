package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchStatus represents the lifecycle state of a fixture
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusVoided    MatchStatus = "voided"
)

// Match represents a fixture between two teams. Match rows are owned by the
// scheduling system upstream; the odds engine and settlement engine only read
// them.
type Match struct {
	ID         uuid.UUID   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	HomeTeamID uuid.UUID   `gorm:"type:uuid;not null;index:idx_matches_home_team" json:"home_team_id"`
	AwayTeamID uuid.UUID   `gorm:"type:uuid;not null;index:idx_matches_away_team" json:"away_team_id"`
	HomeTeam   string      `gorm:"type:varchar(120)" json:"home_team"`
	AwayTeam   string      `gorm:"type:varchar(120)" json:"away_team"`
	KickoffAt  time.Time   `gorm:"type:timestamptz;not null;index" json:"kickoff_at"`
	Status     MatchStatus `gorm:"type:varchar(20);default:'scheduled';index" json:"status"`
	HomeScore  *int        `gorm:"type:int" json:"home_score"`
	AwayScore  *int        `gorm:"type:int" json:"away_score"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Match model
func (*Match) TableName() string {
	return "matches"
}

// BeforeCreate sets up the model before creation
func (m *Match) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsFinal reports whether the match has a finalized score.
func (m *Match) IsFinal() bool {
	return m.Status == MatchStatusCompleted && m.HomeScore != nil && m.AwayScore != nil
}

// IsVoided reports whether the match was abandoned or cancelled.
func (m *Match) IsVoided() bool {
	return m.Status == MatchStatusVoided
}

// HasStarted reports whether the match kicked off at or before now.
func (m *Match) HasStarted(now time.Time) bool {
	return !m.KickoffAt.After(now)
}

// OpenForBetting reports whether new bets may reference this match.
func (m *Match) OpenForBetting(now time.Time) bool {
	return m.Status == MatchStatusScheduled && !m.HasStarted(now)
}

// Result returns the finalized score. ErrMatchNotFinal is returned while the
// match is still scheduled or only partially scored.
func (m *Match) Result() (home, away int, err error) {
	if !m.IsFinal() {
		return 0, 0, ErrMatchNotFinal
	}
	return *m.HomeScore, *m.AwayScore, nil
}

// InvolvedTeam reports whether the given team played in this match.
func (m *Match) InvolvedTeam(teamID uuid.UUID) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// Validate performs validation on the match model. Scores must be both
// present or both absent; half-entered results are never visible to the
// betting core.
func (m *Match) Validate() error {
	if m.HomeTeamID == uuid.Nil || m.AwayTeamID == uuid.Nil {
		return ErrInvalidMatchID
	}
	if (m.HomeScore == nil) != (m.AwayScore == nil) {
		return ErrInvalidMatchScores
	}
	if m.Status == MatchStatusCompleted && m.HomeScore == nil {
		return ErrInvalidMatchScores
	}
	if m.HomeScore != nil && (*m.HomeScore < 0 || *m.AwayScore < 0) {
		return ErrInvalidMatchScores
	}
	return nil
}
