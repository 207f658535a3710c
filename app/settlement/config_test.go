package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matchday/oddsbook/models"
)

func TestConfigValidate(t *testing.T) {
	t.Run("DefaultsAreValid", func(t *testing.T) {
		config := GetDefaultConfig()
		assert.NoError(t, config.Validate())
	})

	t.Run("RejectsZeroBatchSize", func(t *testing.T) {
		config := GetDefaultConfig()
		config.BatchSize = 0
		assert.Equal(t, models.ErrInvalidSettlementBatch, config.Validate())
	})
}
