package settlement

import (
	"github.com/google/uuid"
)

// RecordResultRequest carries the final score of a match
type RecordResultRequest struct {
	HomeScore int `json:"home_score" validate:"min=0"`
	AwayScore int `json:"away_score" validate:"min=0"`
}

// SettlementFailure records a single bet the settlement pass could not
// process. The pass never stops on one bad bet.
type SettlementFailure struct {
	BetID uuid.UUID `json:"bet_id"`
	Error string    `json:"error"`
}

// SettlementReport summarizes one settlement or void pass over a match
type SettlementReport struct {
	MatchID       uuid.UUID           `json:"match_id"`
	LegsResolved  int                 `json:"legs_resolved"`
	BetsExamined  int                 `json:"bets_examined"`
	BetsSettled   int                 `json:"bets_settled"`
	BetsStillOpen int                 `json:"bets_still_open"`
	Failures      []SettlementFailure `json:"failures,omitempty"`
}
