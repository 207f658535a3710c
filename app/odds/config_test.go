package odds

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/matchday/oddsbook/models"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultsAreValid", func(t *testing.T) {
		config := GetDefaultConfig()
		assert.NoError(t, config.Validate())
	})

	t.Run("RejectsZeroMargin", func(t *testing.T) {
		config := GetDefaultConfig()
		config.BookmakerMargin = decimal.Zero
		assert.Equal(t, models.ErrInvalidMarginConfig, config.Validate())
	})

	t.Run("RejectsHomeAdvantageBelowOne", func(t *testing.T) {
		config := GetDefaultConfig()
		config.HomeAdvantage = 0.9
		assert.Equal(t, models.ErrInvalidHomeAdvantage, config.Validate())
	})

	t.Run("RejectsGoalCapOutOfRange", func(t *testing.T) {
		config := GetDefaultConfig()
		config.GoalCap = 2
		assert.Equal(t, models.ErrInvalidGoalCap, config.Validate())

		config.GoalCap = 30
		assert.Equal(t, models.ErrInvalidGoalCap, config.Validate())
	})

	t.Run("RejectsMinFormAboveLookback", func(t *testing.T) {
		config := GetDefaultConfig()
		config.MinMatchesForForm = config.LookbackWindow + 1
		assert.Equal(t, models.ErrInvalidLookbackWindow, config.Validate())
	})

	t.Run("RejectsInvertedPriceBounds", func(t *testing.T) {
		config := GetDefaultConfig()
		config.MinPrice = decimal.NewFromInt(200)
		assert.Equal(t, models.ErrInvalidOddsLimits, config.Validate())
	})

	t.Run("RejectsPriceFloorAtEvens", func(t *testing.T) {
		config := GetDefaultConfig()
		config.MinPrice = decimal.NewFromInt(1)
		assert.Equal(t, models.ErrInvalidOddsLimits, config.Validate())
	})
}
