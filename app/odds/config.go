package odds

import (
	"time"

	"github.com/matchday/oddsbook/models"
	"github.com/shopspring/decimal"
)

// Config represents the configuration for the odds module
type Config struct {
	BookmakerMargin   decimal.Decimal `env:"BOOKMAKER_MARGIN"`
	HomeAdvantage     float64         `env:"HOME_ADVANTAGE"`
	GoalCap           int             `env:"GOAL_CAP"`
	LookbackWindow    int             `env:"LOOKBACK_WINDOW"`
	MinMatchesForForm int             `env:"MIN_MATCHES_FOR_FORM"`
	FallbackHomeRate  float64         `env:"FALLBACK_HOME_RATE"`
	FallbackAwayRate  float64         `env:"FALLBACK_AWAY_RATE"`
	MinExpectedGoals  float64         `env:"MIN_EXPECTED_GOALS"`
	MaxExpectedGoals  float64         `env:"MAX_EXPECTED_GOALS"`
	MinPrice          decimal.Decimal `env:"MIN_PRICE"`
	MaxPrice          decimal.Decimal `env:"MAX_PRICE"`
	LookaheadDays     int             `env:"LOOKAHEAD_DAYS"`
	OddsCacheTTL      time.Duration   `env:"ODDS_CACHE_TTL"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.BookmakerMargin.GreaterThan(decimal.Zero), models.ErrInvalidMarginConfig},
		{c.HomeAdvantage >= 1.0, models.ErrInvalidHomeAdvantage},
		{c.GoalCap >= 4 && c.GoalCap <= 15, models.ErrInvalidGoalCap},
		{c.LookbackWindow > 0, models.ErrInvalidLookbackWindow},
		{c.MinMatchesForForm > 0 && c.MinMatchesForForm <= c.LookbackWindow, models.ErrInvalidLookbackWindow},
		{c.FallbackHomeRate > 0 && c.FallbackAwayRate > 0, models.ErrInvalidFallbackRate},
		{c.MinExpectedGoals > 0 && c.MaxExpectedGoals > c.MinExpectedGoals, models.ErrInvalidFallbackRate},
		{c.MinPrice.GreaterThan(decimal.NewFromInt(1)), models.ErrInvalidOddsLimits},
		{c.MaxPrice.GreaterThan(c.MinPrice), models.ErrInvalidOddsLimits},
		{c.LookaheadDays > 0, models.ErrInvalidLookbackWindow},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the default odds configuration
func GetDefaultConfig() *Config {
	return &Config{
		BookmakerMargin:   decimal.NewFromFloat(0.05), // 5% overround
		HomeAdvantage:     1.10,
		GoalCap:           8,
		LookbackWindow:    15,
		MinMatchesForForm: 3,
		FallbackHomeRate:  1.45,
		FallbackAwayRate:  1.15,
		MinExpectedGoals:  0.30,
		MaxExpectedGoals:  4.00,
		MinPrice:          decimal.NewFromFloat(1.01),
		MaxPrice:          decimal.NewFromInt(100),
		LookaheadDays:     7,
		OddsCacheTTL:      2 * time.Minute,
	}
}
