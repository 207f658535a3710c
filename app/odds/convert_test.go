package odds

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/matchday/oddsbook/models"
)

func TestFractionalOdds(t *testing.T) {
	tests := []struct {
		price string
		want  string
	}{
		{"2.50", "3/2"},
		{"1.80", "4/5"},
		{"3.00", "2/1"},
		{"1.25", "1/4"},
		{"2.00", "1/1"},
		{"11.00", "10/1"},
		{"1.01", "1/100"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			price := decimal.RequireFromString(tt.price)
			assert.Equal(t, tt.want, FractionalOdds(price))
		})
	}
}

func TestAmericanOdds(t *testing.T) {
	tests := []struct {
		price string
		want  string
	}{
		{"2.50", "+150"},
		{"3.75", "+275"},
		{"2.00", "+100"},
		{"1.80", "-125"},
		{"1.50", "-200"},
		{"1.25", "-400"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			price := decimal.RequireFromString(tt.price)
			assert.Equal(t, tt.want, AmericanOdds(price))
		})
	}
}

func TestFormatOddsSet(t *testing.T) {
	set := &OddsSetResponse{
		MatchID:     uuid.New(),
		GeneratedAt: time.Now(),
		Margin:      decimal.RequireFromString("0.05"),
		Markets: map[string]map[string]decimal.Decimal{
			string(models.Market1X2): {
				models.OutcomeHome: decimal.RequireFromString("2.50"),
				models.OutcomeDraw: decimal.RequireFromString("3.40"),
				models.OutcomeAway: decimal.RequireFromString("2.80"),
			},
		},
	}

	t.Run("fractional", func(t *testing.T) {
		display, err := FormatOddsSet(set, FormatFractional)
		assert.NoError(t, err)
		assert.Equal(t, set.MatchID, display.MatchID)
		assert.Equal(t, FormatFractional, display.Format)
		assert.Equal(t, "3/2", display.Markets[string(models.Market1X2)][models.OutcomeHome])
		assert.Equal(t, "12/5", display.Markets[string(models.Market1X2)][models.OutcomeDraw])
		assert.Equal(t, "9/5", display.Markets[string(models.Market1X2)][models.OutcomeAway])
	})

	t.Run("american", func(t *testing.T) {
		display, err := FormatOddsSet(set, FormatAmerican)
		assert.NoError(t, err)
		assert.Equal(t, FormatAmerican, display.Format)
		assert.Equal(t, "+150", display.Markets[string(models.Market1X2)][models.OutcomeHome])
		assert.Equal(t, "+240", display.Markets[string(models.Market1X2)][models.OutcomeDraw])
		assert.Equal(t, "+180", display.Markets[string(models.Market1X2)][models.OutcomeAway])
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		display, err := FormatOddsSet(set, "hongkong")
		assert.Nil(t, display)
		assert.ErrorIs(t, err, models.ErrInvalidOddsFormat)
	})
}
