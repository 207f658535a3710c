package odds

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matchday/oddsbook/models"
)

// Supported display formats for a priced book.
const (
	FormatDecimal    = "decimal"
	FormatFractional = "fractional"
	FormatAmerican   = "american"
)

var hundred = decimal.NewFromInt(100)

// FractionalOdds renders a decimal price as a fractional string, e.g. 2.50 -> "3/2".
// Prices are stored to two decimal places, so the profit part converts exactly
// to a fraction over 100 before reduction.
func FractionalOdds(price decimal.Decimal) string {
	profit := price.Sub(decimal.NewFromInt(1))
	num := profit.Mul(hundred).Round(0).IntPart()
	den := int64(100)
	if num <= 0 {
		return "0/1"
	}
	g := gcd(num, den)
	return fmt.Sprintf("%d/%d", num/g, den/g)
}

// AmericanOdds renders a decimal price as an American moneyline string,
// e.g. 2.50 -> "+150", 1.80 -> "-125". Even money converts to "+100".
func AmericanOdds(price decimal.Decimal) string {
	profit := price.Sub(decimal.NewFromInt(1))
	if profit.LessThanOrEqual(decimal.Zero) {
		return "+0"
	}
	if price.GreaterThanOrEqual(decimal.NewFromInt(2)) {
		return "+" + profit.Mul(hundred).Round(0).String()
	}
	line := hundred.Div(profit).Round(0)
	return "-" + line.String()
}

// DisplayOddsSetResponse is a priced book rendered in an alternate odds format
// @Description Odds for every market of a match in the requested display format
type DisplayOddsSetResponse struct {
	MatchID     uuid.UUID                    `json:"match_id"`
	GeneratedAt time.Time                    `json:"generated_at"`
	Format      string                       `json:"format"`
	Markets     map[string]map[string]string `json:"markets"`
}

// FormatOddsSet converts a decimal-priced book into the requested display format.
func FormatOddsSet(set *OddsSetResponse, format string) (*DisplayOddsSetResponse, error) {
	var convert func(decimal.Decimal) string
	switch format {
	case FormatFractional:
		convert = FractionalOdds
	case FormatAmerican:
		convert = AmericanOdds
	default:
		return nil, models.ErrInvalidOddsFormat
	}

	markets := make(map[string]map[string]string, len(set.Markets))
	for market, outcomes := range set.Markets {
		markets[market] = make(map[string]string, len(outcomes))
		for outcome, price := range outcomes {
			markets[market][outcome] = convert(price)
		}
	}
	return &DisplayOddsSetResponse{
		MatchID:     set.MatchID,
		GeneratedAt: set.GeneratedAt,
		Format:      format,
		Markets:     markets,
	}, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
