package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validSingleBet() *Bet {
	return &Bet{
		UserID:     uuid.New(),
		Structure:  BetStructureSingle,
		TotalStake: decimal.NewFromFloat(10),
		Legs: []BetLeg{
			{
				MatchID:          uuid.New(),
				Market:           Market1X2,
				Outcome:          OutcomeHome,
				PriceAtPlacement: decimal.NewFromFloat(2.50),
			},
		},
	}
}

func TestParseSystemSpec(t *testing.T) {
	t.Run("ValidSpec", func(t *testing.T) {
		k, err := ParseSystemSpec("2/3", 3)
		assert.NoError(t, err)
		assert.Equal(t, 2, k)
	})

	t.Run("SpecMismatchesLegCount", func(t *testing.T) {
		_, err := ParseSystemSpec("2/3", 4)
		assert.Equal(t, ErrInvalidSystemSpec, err)
	})

	t.Run("KOutOfRange", func(t *testing.T) {
		_, err := ParseSystemSpec("0/3", 3)
		assert.Equal(t, ErrInvalidSystemSpec, err)

		_, err = ParseSystemSpec("3/3", 3)
		assert.Equal(t, ErrInvalidSystemSpec, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, spec := range []string{"", "23", "2/3/4", "a/3", "2/b"} {
			_, err := ParseSystemSpec(spec, 3)
			assert.Equal(t, ErrInvalidSystemSpec, err, spec)
		}
	})

	t.Run("Format", func(t *testing.T) {
		assert.Equal(t, "2/4", FormatSystemSpec(2, 4))
	})
}

func TestBet(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		b := Bet{}
		assert.Equal(t, "bets", b.TableName())
	})

	t.Run("BeforeCreate", func(t *testing.T) {
		b := Bet{}
		err := b.BeforeCreate(nil)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, b.ID)
	})

	t.Run("StatusChecks", func(t *testing.T) {
		b := Bet{Status: BetStatusPending}
		assert.True(t, b.IsPending())
		assert.False(t, b.IsSettled())

		b.Status = BetStatusWon
		assert.False(t, b.IsPending())
		assert.True(t, b.IsSettled())
	})

	t.Run("AllLegsResolved", func(t *testing.T) {
		b := Bet{Legs: []BetLeg{
			{Status: LegStatusWon},
			{Status: LegStatusPending},
		}}
		assert.False(t, b.AllLegsResolved())

		b.Legs[1].Status = LegStatusLost
		assert.True(t, b.AllLegsResolved())

		empty := Bet{}
		assert.False(t, empty.AllLegsResolved())
	})

	t.Run("Settle", func(t *testing.T) {
		b := Bet{Status: BetStatusPending, TotalStake: decimal.NewFromFloat(10)}

		err := b.Settle(BetStatusWon, decimal.NewFromFloat(25))
		assert.NoError(t, err)
		assert.Equal(t, BetStatusWon, b.Status)
		assert.True(t, b.Payout.Equal(decimal.NewFromFloat(25)))
		assert.NotNil(t, b.SettledAt)

		err = b.Settle(BetStatusLost, decimal.Zero)
		assert.Equal(t, ErrBetAlreadySettled, err)
	})

	t.Run("SettleRejectsPendingTarget", func(t *testing.T) {
		b := Bet{Status: BetStatusPending}
		err := b.Settle(BetStatusPending, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("GetProfitLoss", func(t *testing.T) {
		b := Bet{Status: BetStatusPending, TotalStake: decimal.NewFromFloat(10)}
		assert.True(t, b.GetProfitLoss().IsZero())

		assert.NoError(t, b.Settle(BetStatusWon, decimal.NewFromFloat(25)))
		assert.True(t, b.GetProfitLoss().Equal(decimal.NewFromFloat(15)))
	})

	t.Run("ValidateSingle", func(t *testing.T) {
		b := validSingleBet()
		assert.NoError(t, b.Validate())

		b.Legs = append(b.Legs, b.Legs[0])
		b.Legs[1].MatchID = uuid.New()
		assert.Equal(t, ErrInvalidBetStructure, b.Validate())
	})

	t.Run("ValidateAccumulator", func(t *testing.T) {
		b := validSingleBet()
		b.Structure = BetStructureAccumulator
		assert.Equal(t, ErrInvalidBetStructure, b.Validate())

		b.Legs = append(b.Legs, BetLeg{
			MatchID:          uuid.New(),
			Market:           MarketOverUnder25,
			Outcome:          OutcomeOver,
			PriceAtPlacement: decimal.NewFromFloat(1.80),
		})
		assert.NoError(t, b.Validate())
	})

	t.Run("ValidateSystem", func(t *testing.T) {
		b := validSingleBet()
		b.Structure = BetStructureSystem
		b.SystemSpec = "2/3"
		for i := 0; i < 2; i++ {
			b.Legs = append(b.Legs, BetLeg{
				MatchID:          uuid.New(),
				Market:           Market1X2,
				Outcome:          OutcomeDraw,
				PriceAtPlacement: decimal.NewFromFloat(3.20),
			})
		}
		assert.NoError(t, b.Validate())

		b.SystemSpec = "3/3"
		assert.Equal(t, ErrInvalidSystemSpec, b.Validate())
	})

	t.Run("ValidateDuplicateLegMatch", func(t *testing.T) {
		b := validSingleBet()
		b.Structure = BetStructureAccumulator
		b.Legs = append(b.Legs, BetLeg{
			MatchID:          b.Legs[0].MatchID,
			Market:           MarketOverUnder25,
			Outcome:          OutcomeUnder,
			PriceAtPlacement: decimal.NewFromFloat(2.10),
		})
		assert.Equal(t, ErrDuplicateLegMatch, b.Validate())
	})

	t.Run("ValidateStake", func(t *testing.T) {
		b := validSingleBet()
		b.TotalStake = decimal.Zero
		assert.Equal(t, ErrInvalidStake, b.Validate())
	})

	t.Run("ValidateUnknownStructure", func(t *testing.T) {
		b := validSingleBet()
		b.Structure = "parlay"
		assert.Equal(t, ErrInvalidBetStructure, b.Validate())
	})
}

func TestBetLeg(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		l := BetLeg{}
		assert.Equal(t, "bet_legs", l.TableName())
	})

	t.Run("Resolve", func(t *testing.T) {
		l := BetLeg{Status: LegStatusPending}

		err := l.Resolve(LegStatusWon)
		assert.NoError(t, err)
		assert.Equal(t, LegStatusWon, l.Status)
		assert.NotNil(t, l.SettledAt)

		err = l.Resolve(LegStatusLost)
		assert.Equal(t, ErrLegAlreadySettled, err)
	})

	t.Run("EffectivePrice", func(t *testing.T) {
		l := BetLeg{Status: LegStatusWon, PriceAtPlacement: decimal.NewFromFloat(2.50)}
		assert.True(t, l.EffectivePrice().Equal(decimal.NewFromFloat(2.50)))

		l.Status = LegStatusVoid
		assert.True(t, l.EffectivePrice().Equal(decimal.NewFromInt(1)))
	})

	t.Run("Validate", func(t *testing.T) {
		l := BetLeg{
			MatchID:          uuid.New(),
			Market:           MarketBothTeamsScore,
			Outcome:          OutcomeYes,
			PriceAtPlacement: decimal.NewFromFloat(1.95),
		}
		assert.NoError(t, l.Validate())

		l2 := l
		l2.Market = "HANDICAP"
		assert.Equal(t, ErrInvalidMarket, l2.Validate())

		l3 := l
		l3.Outcome = OutcomeOver
		assert.Equal(t, ErrInvalidOutcome, l3.Validate())

		l4 := l
		l4.PriceAtPlacement = decimal.NewFromInt(1)
		assert.Equal(t, ErrInvalidPrice, l4.Validate())
	})
}
