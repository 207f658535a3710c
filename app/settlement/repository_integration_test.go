package settlement

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

func (s *RepositorySuite) placePendingBet() *models.Bet {
	match := s.SeedMatch(time.Now().Add(-3*time.Hour), models.MatchStatusScheduled, nil, nil)
	wallet := s.SeedWallet(uuid.New(), decimal.NewFromInt(100))
	return s.SeedPlacedBet(wallet, match.ID, models.OutcomeHome, decimal.NewFromInt(10), decimal.NewFromFloat(2.50))
}

func (s *RepositorySuite) TestResolveLegIsStatusGated() {
	ctx := context.Background()
	bet := s.placePendingBet()
	legID := bet.Legs[0].ID

	resolved, err := s.repo.ResolveLeg(ctx, legID, models.LegStatusWon)
	s.Require().NoError(err)
	s.True(resolved)

	// a redelivered result must not flip the leg again
	resolved, err = s.repo.ResolveLeg(ctx, legID, models.LegStatusLost)
	s.Require().NoError(err)
	s.False(resolved)

	var leg models.BetLeg
	s.Require().NoError(s.DB.First(&leg, "id = ?", legID).Error)
	s.Equal(models.LegStatusWon, leg.Status)
	s.NotNil(leg.SettledAt)
}

func (s *RepositorySuite) TestSettleBetIsStatusGated() {
	ctx := context.Background()
	bet := s.placePendingBet()

	now := time.Now()
	bet.Status = models.BetStatusWon
	bet.Payout = decimal.NewFromInt(25)
	bet.SettledAt = &now

	settled, err := s.repo.SettleBet(ctx, bet)
	s.Require().NoError(err)
	s.True(settled)

	// second pass finds the bet already terminal
	bet.Payout = decimal.NewFromInt(9999)
	settled, err = s.repo.SettleBet(ctx, bet)
	s.Require().NoError(err)
	s.False(settled)

	var stored models.Bet
	s.Require().NoError(s.DB.First(&stored, "id = ?", bet.ID).Error)
	s.Equal(models.BetStatusWon, stored.Status)
	s.True(stored.Payout.Equal(decimal.NewFromInt(25)))
}
