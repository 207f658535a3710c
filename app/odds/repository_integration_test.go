package odds

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/matchday/oddsbook/models"
	"github.com/matchday/oddsbook/tests/suites"
)

type RepositorySuite struct {
	suites.RepositoryTestSuite
	repo Repository
}

func (s *RepositorySuite) SetupSuite() {
	s.RepositoryTestSuite.SetupSuite()
	s.repo = NewRepository(s.DB)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func oddsSetFor(matchID uuid.UUID, home, draw, away float64, at time.Time) *models.OddsSet {
	return &models.OddsSet{
		MatchID:     matchID,
		GeneratedAt: at,
		Margin:      decimal.NewFromFloat(0.05),
		Markets: map[models.BetMarket]map[string]decimal.Decimal{
			models.Market1X2: {
				models.OutcomeHome: decimal.NewFromFloat(home),
				models.OutcomeDraw: decimal.NewFromFloat(draw),
				models.OutcomeAway: decimal.NewFromFloat(away),
			},
		},
	}
}

func (s *RepositorySuite) TestReplaceOddsSetSwapsWholeBook() {
	ctx := context.Background()
	match := s.SeedMatch(time.Now().Add(24*time.Hour), models.MatchStatusScheduled, nil, nil)

	s.Require().NoError(s.repo.ReplaceOddsSet(ctx, oddsSetFor(match.ID, 2.50, 3.30, 2.90, time.Now())))
	s.Require().NoError(s.repo.ReplaceOddsSet(ctx, oddsSetFor(match.ID, 1.80, 3.60, 4.20, time.Now())))

	lines, err := s.repo.GetOddsLinesForMatch(ctx, match.ID)
	s.Require().NoError(err)
	s.Len(lines, 3)

	set := models.OddsSetFromLines(match.ID, lines)
	price, ok := set.Price(models.Market1X2, models.OutcomeHome)
	s.True(ok)
	s.True(price.Equal(decimal.NewFromFloat(1.80)))
}

func (s *RepositorySuite) TestListMatchesWithOddsOrdersByRecency() {
	ctx := context.Background()
	now := time.Now()

	stale := s.SeedMatch(now.Add(24*time.Hour), models.MatchStatusScheduled, nil, nil)
	fresh := s.SeedMatch(now.Add(48*time.Hour), models.MatchStatusScheduled, nil, nil)
	unpriced := s.SeedMatch(now.Add(72*time.Hour), models.MatchStatusScheduled, nil, nil)

	s.Require().NoError(s.repo.ReplaceOddsSet(ctx, oddsSetFor(stale.ID, 2.50, 3.30, 2.90, now.Add(-time.Hour))))
	s.Require().NoError(s.repo.ReplaceOddsSet(ctx, oddsSetFor(fresh.ID, 1.80, 3.60, 4.20, now)))

	matches, err := s.repo.ListMatchesWithOdds(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal(fresh.ID, matches[0].ID)
	s.Equal(stale.ID, matches[1].ID)
	for _, m := range matches {
		s.NotEqual(unpriced.ID, m.ID)
	}
}

// Regenerating a match's odds must never touch the price a leg was struck
// at. Payouts settle against price_at_placement, not the current book.
func (s *RepositorySuite) TestRegenerationLeavesPlacedLegPriceAlone() {
	ctx := context.Background()
	match := s.SeedMatch(time.Now().Add(24*time.Hour), models.MatchStatusScheduled, nil, nil)

	s.Require().NoError(s.repo.ReplaceOddsSet(ctx, oddsSetFor(match.ID, 2.50, 3.30, 2.90, time.Now())))

	wallet := s.SeedWallet(uuid.New(), decimal.NewFromInt(100))
	bet := s.SeedPlacedBet(wallet, match.ID, models.OutcomeHome, decimal.NewFromInt(10), decimal.NewFromFloat(2.50))

	s.Require().NoError(s.repo.ReplaceOddsSet(ctx, oddsSetFor(match.ID, 1.80, 3.60, 4.20, time.Now())))

	var leg models.BetLeg
	s.Require().NoError(s.DB.First(&leg, "bet_id = ?", bet.ID).Error)
	s.True(leg.PriceAtPlacement.Equal(decimal.NewFromFloat(2.50)))
}
