package betting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/matchday/oddsbook/internal/logger"
	"github.com/matchday/oddsbook/models"
	"github.com/matchday/oddsbook/tests/suites"
)

type ServiceSuite struct {
	suites.RepositoryTestSuite
	svc Service
}

func (s *ServiceSuite) SetupSuite() {
	s.RepositoryTestSuite.SetupSuite()
	s.svc = NewService(s.DB, NewRepository(s.DB), GetDefaultConfig(), logger.NewNullLogger())
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) seedPricedMatch() *models.Match {
	match := s.SeedMatch(time.Now().Add(24*time.Hour), models.MatchStatusScheduled, nil, nil)
	s.SeedOddsLine(match.ID, models.Market1X2, models.OutcomeHome, decimal.NewFromFloat(2.50), time.Now())
	return match
}

func singleRequest(matchID uuid.UUID, stake int64) *PlaceBetRequest {
	return &PlaceBetRequest{
		Structure:  string(models.BetStructureSingle),
		TotalStake: decimal.NewFromInt(stake),
		Legs: []LegRequest{{
			MatchID:     matchID,
			Market:      string(models.Market1X2),
			Outcome:     models.OutcomeHome,
			QuotedPrice: decimal.NewFromFloat(2.50),
		}},
	}
}

// Two placements racing for the same balance must never overdraw it. The
// row lock on the wallet serializes them so exactly one wins.
func (s *ServiceSuite) TestConcurrentPlacementsCannotOverdraw() {
	match := s.seedPricedMatch()
	userID := uuid.New()
	s.SeedWallet(userID, decimal.NewFromInt(100))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.svc.PlaceBet(context.Background(), userID, singleRequest(match.ID, 80))
		}(i)
	}
	wg.Wait()

	var placed, rejected int
	for _, err := range errs {
		if err == nil {
			placed++
		} else {
			s.ErrorIs(err, models.ErrInsufficientBalance)
			rejected++
		}
	}
	s.Equal(1, placed)
	s.Equal(1, rejected)

	var wallet models.Wallet
	s.Require().NoError(s.DB.First(&wallet, "user_id = ?", userID).Error)
	s.True(wallet.Balance.Equal(decimal.NewFromInt(20)), wallet.Balance.String())
	s.Equal(int64(1), s.CountRecords("bets"))
}

func (s *ServiceSuite) TestFirstTouchOpensWallet() {
	match := s.seedPricedMatch()
	userID := uuid.New()

	bet, err := s.svc.PlaceBet(context.Background(), userID, singleRequest(match.ID, 10))
	s.Require().NoError(err)
	s.Equal(string(models.BetStatusPending), bet.Status)

	var wallet models.Wallet
	s.Require().NoError(s.DB.First(&wallet, "user_id = ?", userID).Error)
	s.True(wallet.Balance.Equal(decimal.NewFromInt(990)), wallet.Balance.String())
	s.Equal(int64(2), s.CountRecords("transactions"))
}
