package app

import (
	"github.com/matchday/oddsbook/app/betting"
	"github.com/matchday/oddsbook/app/database"
	"github.com/matchday/oddsbook/app/odds"
	"github.com/matchday/oddsbook/app/settlement"
	"github.com/matchday/oddsbook/internal/nexus"
)

type Config struct {
	DB         database.Config
	Odds       odds.Config
	Betting    betting.Config
	Settlement settlement.Config

	AppHost string `env:"APP_HOST" default:"localhost"`
	AppPort string `env:"APP_PORT" default:"8080"`
	Env     string `env:"APP_ENV" default:"development"`
}

// Validate checks every module's bounds. A margin, stake window or batch
// size outside its bounds refuses to boot.
func (c *Config) Validate() error {
	for _, validate := range []func() error{
		c.Odds.Validate,
		c.Betting.Validate,
		c.Settlement.Validate,
	} {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig loads the application configuration from environment variables or a config file.
func LoadConfig() (*Config, error) {
	c := &Config{
		Odds:       *odds.GetDefaultConfig(),
		Betting:    *betting.GetDefaultConfig(),
		Settlement: *settlement.GetDefaultConfig(),
	}
	if err := nexus.NewLoader().Load(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
