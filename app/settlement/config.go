package settlement

import (
	"github.com/matchday/oddsbook/models"
)

// Config represents the configuration for the settlement module
type Config struct {
	// BatchSize bounds how many pending bets are loaded per settlement pass
	BatchSize int `env:"SETTLEMENT_BATCH_SIZE"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.BatchSize > 0, models.ErrInvalidSettlementBatch},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the default settlement configuration
func GetDefaultConfig() *Config {
	return &Config{
		BatchSize: 500,
	}
}
