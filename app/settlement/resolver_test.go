package settlement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/matchday/oddsbook/models"
)

func completedMatch(id uuid.UUID, home, away int) *models.Match {
	return &models.Match{
		ID:        id,
		Status:    models.MatchStatusCompleted,
		KickoffAt: time.Now().Add(-2 * time.Hour),
		HomeScore: &home,
		AwayScore: &away,
	}
}

func TestResolveLeg(t *testing.T) {
	matchID := uuid.New()

	t.Run("GradesMatchWinnerMarkets", func(t *testing.T) {
		cases := []struct {
			name    string
			market  models.BetMarket
			outcome string
			home    int
			away    int
			want    models.LegStatus
		}{
			{"HomeWinHits", models.Market1X2, models.OutcomeHome, 2, 1, models.LegStatusWon},
			{"HomeWinMisses", models.Market1X2, models.OutcomeHome, 1, 1, models.LegStatusLost},
			{"DrawHits", models.Market1X2, models.OutcomeDraw, 0, 0, models.LegStatusWon},
			{"AwayWinHits", models.Market1X2, models.OutcomeAway, 0, 3, models.LegStatusWon},
			{"BothScoreYes", models.MarketBothTeamsScore, models.OutcomeYes, 1, 2, models.LegStatusWon},
			{"BothScoreNoMisses", models.MarketBothTeamsScore, models.OutcomeNo, 1, 2, models.LegStatusLost},
			{"CleanSheetIsNo", models.MarketBothTeamsScore, models.OutcomeNo, 2, 0, models.LegStatusWon},
			{"ThreeGoalsIsOver", models.MarketOverUnder25, models.OutcomeOver, 2, 1, models.LegStatusWon},
			{"TwoGoalsIsUnder", models.MarketOverUnder25, models.OutcomeUnder, 1, 1, models.LegStatusWon},
			{"TwoGoalsMissesOver", models.MarketOverUnder25, models.OutcomeOver, 2, 0, models.LegStatusLost},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				leg := &models.BetLeg{
					MatchID: matchID,
					Market:  tc.market,
					Outcome: tc.outcome,
					Status:  models.LegStatusPending,
				}
				status, err := ResolveLeg(leg, completedMatch(matchID, tc.home, tc.away))
				assert.NoError(t, err)
				assert.Equal(t, tc.want, status)
			})
		}
	})

	t.Run("VoidedMatchVoidsEveryLeg", func(t *testing.T) {
		leg := &models.BetLeg{
			MatchID: matchID,
			Market:  models.Market1X2,
			Outcome: models.OutcomeHome,
			Status:  models.LegStatusPending,
		}
		match := &models.Match{ID: matchID, Status: models.MatchStatusVoided}

		status, err := ResolveLeg(leg, match)
		assert.NoError(t, err)
		assert.Equal(t, models.LegStatusVoid, status)
	})

	t.Run("RejectsNonFinalMatch", func(t *testing.T) {
		leg := &models.BetLeg{
			MatchID: matchID,
			Market:  models.Market1X2,
			Outcome: models.OutcomeHome,
			Status:  models.LegStatusPending,
		}
		match := &models.Match{ID: matchID, Status: models.MatchStatusScheduled}

		_, err := ResolveLeg(leg, match)
		assert.Equal(t, models.ErrMatchNotFinal, err)
	})

	t.Run("RejectsWrongMatch", func(t *testing.T) {
		leg := &models.BetLeg{
			MatchID: uuid.New(),
			Market:  models.Market1X2,
			Outcome: models.OutcomeHome,
			Status:  models.LegStatusPending,
		}

		_, err := ResolveLeg(leg, completedMatch(matchID, 1, 0))
		assert.Equal(t, models.ErrInvalidMatchID, err)
	})
}

func TestBetStatusFor(t *testing.T) {
	t.Run("AllVoidIsVoid", func(t *testing.T) {
		legs := []models.BetLeg{
			{Status: models.LegStatusVoid},
			{Status: models.LegStatusVoid},
		}
		assert.Equal(t, models.BetStatusVoid, betStatusFor(legs, true))
	})

	t.Run("PositivePayoutIsWon", func(t *testing.T) {
		legs := []models.BetLeg{
			{Status: models.LegStatusWon},
			{Status: models.LegStatusVoid},
		}
		assert.Equal(t, models.BetStatusWon, betStatusFor(legs, true))
	})

	t.Run("ZeroPayoutIsLost", func(t *testing.T) {
		legs := []models.BetLeg{
			{Status: models.LegStatusWon},
			{Status: models.LegStatusLost},
		}
		assert.Equal(t, models.BetStatusLost, betStatusFor(legs, false))
	})
}
