package betting

import (
	"github.com/matchday/oddsbook/models"
	"github.com/shopspring/decimal"
)

// Ticket is a validated bet structure ready for payout arithmetic. The
// constructors are the only way to build one, so an accumulator with one leg
// or a system without a valid split cannot exist.
type Ticket struct {
	structure  models.BetStructure
	systemK    int
	totalStake decimal.Decimal
	prices     []decimal.Decimal
}

// NewSingleTicket builds a one-leg ticket
func NewSingleTicket(stake, price decimal.Decimal) (*Ticket, error) {
	if stake.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidStake
	}
	if price.LessThanOrEqual(decimal.NewFromInt(1)) {
		return nil, models.ErrInvalidPrice
	}
	return &Ticket{
		structure:  models.BetStructureSingle,
		totalStake: stake,
		prices:     []decimal.Decimal{price},
	}, nil
}

// NewAccumulatorTicket builds a ticket whose legs all must win
func NewAccumulatorTicket(stake decimal.Decimal, prices []decimal.Decimal) (*Ticket, error) {
	if stake.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidStake
	}
	if len(prices) < 2 {
		return nil, models.ErrInvalidBetStructure
	}
	if err := validatePrices(prices); err != nil {
		return nil, err
	}
	return &Ticket{
		structure:  models.BetStructureAccumulator,
		totalStake: stake,
		prices:     prices,
	}, nil
}

// NewSystemTicket builds a "k of n" ticket: every k-leg combination is an
// independent accumulator carrying an equal share of the stake.
func NewSystemTicket(stake decimal.Decimal, prices []decimal.Decimal, spec string) (*Ticket, error) {
	if stake.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidStake
	}
	if len(prices) < 3 {
		return nil, models.ErrInvalidBetStructure
	}
	if err := validatePrices(prices); err != nil {
		return nil, err
	}
	k, err := models.ParseSystemSpec(spec, len(prices))
	if err != nil {
		return nil, err
	}
	return &Ticket{
		structure:  models.BetStructureSystem,
		systemK:    k,
		totalStake: stake,
		prices:     prices,
	}, nil
}

// TicketFromBet rebuilds the payout arithmetic for a stored bet from its
// persisted legs, in leg order.
func TicketFromBet(bet *models.Bet) (*Ticket, error) {
	prices := make([]decimal.Decimal, len(bet.Legs))
	for i := range bet.Legs {
		prices[i] = bet.Legs[i].PriceAtPlacement
	}

	switch bet.Structure {
	case models.BetStructureSingle:
		if len(prices) != 1 {
			return nil, models.ErrInvalidBetStructure
		}
		return NewSingleTicket(bet.TotalStake, prices[0])
	case models.BetStructureAccumulator:
		return NewAccumulatorTicket(bet.TotalStake, prices)
	case models.BetStructureSystem:
		return NewSystemTicket(bet.TotalStake, prices, bet.SystemSpec)
	default:
		return nil, models.ErrInvalidBetStructure
	}
}

func validatePrices(prices []decimal.Decimal) error {
	one := decimal.NewFromInt(1)
	for _, p := range prices {
		if p.LessThanOrEqual(one) {
			return models.ErrInvalidPrice
		}
	}
	return nil
}

// Structure returns the ticket's bet structure
func (t *Ticket) Structure() models.BetStructure {
	return t.structure
}

// NumCombinations returns how many independent accumulators the ticket
// resolves into.
func (t *Ticket) NumCombinations() int {
	if t.structure == models.BetStructureSystem {
		return binomial(len(t.prices), t.systemK)
	}
	return 1
}

// PotentialPayout returns the payout if every leg wins, rounded to two
// decimals.
func (t *Ticket) PotentialPayout() decimal.Decimal {
	switch t.structure {
	case models.BetStructureSystem:
		return t.systemPayout(t.prices)
	default:
		return t.totalStake.Mul(product(t.prices)).Round(2)
	}
}

// SettledPayout computes the payout given each leg's terminal status. Void
// legs contribute price 1.0; a lost leg zeroes every combination it appears
// in.
func (t *Ticket) SettledPayout(statuses []models.LegStatus) decimal.Decimal {
	if len(statuses) != len(t.prices) {
		return decimal.Zero
	}

	effective := make([]decimal.Decimal, len(t.prices))
	lost := make([]bool, len(t.prices))
	for i, status := range statuses {
		switch status {
		case models.LegStatusVoid:
			effective[i] = decimal.NewFromInt(1)
		case models.LegStatusWon:
			effective[i] = t.prices[i]
		default:
			lost[i] = true
		}
	}

	if t.structure == models.BetStructureSystem {
		return t.settledSystemPayout(effective, lost)
	}

	for _, l := range lost {
		if l {
			return decimal.Zero
		}
	}
	return t.totalStake.Mul(product(effective)).Round(2)
}

// systemPayout sums the best-case payout of every combination
func (t *Ticket) systemPayout(prices []decimal.Decimal) decimal.Decimal {
	combos := combinations(len(prices), t.systemK)
	comboStake := t.totalStake.Div(decimal.NewFromInt(int64(len(combos))))

	total := decimal.Zero
	for _, combo := range combos {
		comboPrice := decimal.NewFromInt(1)
		for _, idx := range combo {
			comboPrice = comboPrice.Mul(prices[idx])
		}
		total = total.Add(comboStake.Mul(comboPrice))
	}
	return total.Round(2)
}

func (t *Ticket) settledSystemPayout(effective []decimal.Decimal, lost []bool) decimal.Decimal {
	combos := combinations(len(t.prices), t.systemK)
	comboStake := t.totalStake.Div(decimal.NewFromInt(int64(len(combos))))

	total := decimal.Zero
	for _, combo := range combos {
		comboPrice := decimal.NewFromInt(1)
		dead := false
		for _, idx := range combo {
			if lost[idx] {
				dead = true
				break
			}
			comboPrice = comboPrice.Mul(effective[idx])
		}
		if dead {
			continue
		}
		total = total.Add(comboStake.Mul(comboPrice))
	}
	return total.Round(2)
}

func product(prices []decimal.Decimal) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for _, p := range prices {
		result = result.Mul(p)
	}
	return result
}

// combinations enumerates every k-element index subset of [0, n)
func combinations(n, k int) [][]int {
	var result [][]int
	combo := make([]int, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			picked := make([]int, k)
			copy(picked, combo)
			result = append(result, picked)
			return
		}
		for i := start; i <= n-(k-depth); i++ {
			combo[depth] = i
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
	return result
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}
