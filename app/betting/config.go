package betting

import (
	"github.com/matchday/oddsbook/models"
	"github.com/shopspring/decimal"
)

// Config represents the configuration for the betting module
type Config struct {
	MinStake       decimal.Decimal `env:"MIN_STAKE"`
	MaxStake       decimal.Decimal `env:"MAX_STAKE"`
	MaxPayout      decimal.Decimal `env:"MAX_PAYOUT"`
	MaxLegs        int             `env:"MAX_LEGS"`
	PriceTolerance decimal.Decimal `env:"PRICE_TOLERANCE"`
	DefaultPerPage int             `env:"DEFAULT_PER_PAGE"`
	MaxPerPage     int             `env:"MAX_PER_PAGE"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.MinStake.GreaterThan(decimal.Zero), models.ErrInvalidStakeLimits},
		{c.MaxStake.GreaterThan(c.MinStake), models.ErrInvalidStakeLimits},
		{c.MaxPayout.GreaterThan(c.MaxStake), models.ErrInvalidStakeLimits},
		{c.MaxLegs > 1, models.ErrInvalidBetStructure},
		{c.PriceTolerance.GreaterThanOrEqual(decimal.Zero), models.ErrInvalidOddsLimits},
		{c.DefaultPerPage > 0 && c.MaxPerPage >= c.DefaultPerPage, models.ErrInvalidStakeLimits},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the default betting configuration
func GetDefaultConfig() *Config {
	return &Config{
		MinStake:       decimal.NewFromInt(1),
		MaxStake:       decimal.NewFromInt(10000),
		MaxPayout:      decimal.NewFromInt(500000),
		MaxLegs:        20,
		PriceTolerance: decimal.Zero,
		DefaultPerPage: 20,
		MaxPerPage:     100,
	}
}
