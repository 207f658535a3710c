package odds

import (
	"time"

	"github.com/google/uuid"
	"github.com/matchday/oddsbook/models"
	"github.com/shopspring/decimal"
)

// CreateMatchRequest represents the request to register a fixture
// @Description Request payload for scheduling a new match
type CreateMatchRequest struct {
	HomeTeamID uuid.UUID `json:"home_team_id" validate:"required"`
	AwayTeamID uuid.UUID `json:"away_team_id" validate:"required"`
	HomeTeam   string    `json:"home_team" validate:"required,min=2,max=100"`
	AwayTeam   string    `json:"away_team" validate:"required,min=2,max=100"`
	KickoffAt  time.Time `json:"kickoff_at" validate:"required"`
}

// MatchResponse represents a fixture in API responses
// @Description Match information with status and result when final
type MatchResponse struct {
	ID        uuid.UUID `json:"id"`
	HomeTeam  TeamInfo  `json:"home_team"`
	AwayTeam  TeamInfo  `json:"away_team"`
	KickoffAt time.Time `json:"kickoff_at"`
	Status    string    `json:"status"`
	HomeScore *int      `json:"home_score,omitempty"`
	AwayScore *int      `json:"away_score,omitempty"`
	HasOdds   bool      `json:"has_odds"`
}

// TeamInfo identifies one side of a fixture
type TeamInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// OddsSetResponse represents the full priced book of one match
// @Description Current odds for every market of a match
type OddsSetResponse struct {
	MatchID     uuid.UUID                             `json:"match_id"`
	GeneratedAt time.Time                             `json:"generated_at"`
	Margin      decimal.Decimal                       `json:"margin"`
	Markets     map[string]map[string]decimal.Decimal `json:"markets"`
}

// BulkGenerateResponse summarizes a bulk odds generation run
// @Description Outcome of pricing every upcoming fixture
type BulkGenerateResponse struct {
	MatchesPriced int         `json:"matches_priced"`
	Failures      []uuid.UUID `json:"failures,omitempty"`
}

// ToMatchResponse maps a match model to its API representation
func ToMatchResponse(m *models.Match, hasOdds bool) *MatchResponse {
	return &MatchResponse{
		ID:        m.ID,
		HomeTeam:  TeamInfo{ID: m.HomeTeamID, Name: m.HomeTeam},
		AwayTeam:  TeamInfo{ID: m.AwayTeamID, Name: m.AwayTeam},
		KickoffAt: m.KickoffAt,
		Status:    string(m.Status),
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		HasOdds:   hasOdds,
	}
}

// ToOddsSetResponse maps an odds set to its API representation
func ToOddsSetResponse(set *models.OddsSet) *OddsSetResponse {
	markets := make(map[string]map[string]decimal.Decimal, len(set.Markets))
	for market, outcomes := range set.Markets {
		markets[string(market)] = make(map[string]decimal.Decimal, len(outcomes))
		for outcome, price := range outcomes {
			markets[string(market)][outcome] = price
		}
	}
	return &OddsSetResponse{
		MatchID:     set.MatchID,
		GeneratedAt: set.GeneratedAt,
		Margin:      set.Margin,
		Markets:     markets,
	}
}
