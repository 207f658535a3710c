package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/matchday/oddsbook/internal/validator"
)

// BetMarket identifies a priced market on a match
type BetMarket string

const (
	Market1X2            BetMarket = "1X2"
	MarketBothTeamsScore BetMarket = "BOTH_TEAMS_SCORE"
	MarketOverUnder25    BetMarket = "OVER_UNDER_2_5"
)

// Outcome labels per market
const (
	OutcomeHome  = "1"
	OutcomeDraw  = "X"
	OutcomeAway  = "2"
	OutcomeYes   = "YES"
	OutcomeNo    = "NO"
	OutcomeOver  = "OVER"
	OutcomeUnder = "UNDER"
)

// MarketOutcomes lists the selectable outcomes of each supported market.
var MarketOutcomes = map[BetMarket][]string{
	Market1X2:            {OutcomeHome, OutcomeDraw, OutcomeAway},
	MarketBothTeamsScore: {OutcomeYes, OutcomeNo},
	MarketOverUnder25:    {OutcomeOver, OutcomeUnder},
}

// ValidMarket reports whether the market is one we price.
func ValidMarket(market BetMarket) bool {
	_, ok := MarketOutcomes[market]
	return ok
}

// ValidOutcome reports whether the outcome label belongs to the market.
func ValidOutcome(market BetMarket, outcome string) bool {
	return validator.In(outcome, MarketOutcomes[market]...)
}

// OutcomeForScore maps a concrete score to the winning outcome label of a
// market. The pricing engine sums score-matrix cells through this function
// and the settlement engine resolves legs through it, so the two can never
// disagree on what a score means.
func OutcomeForScore(market BetMarket, home, away int) (string, error) {
	switch market {
	case Market1X2:
		switch {
		case home > away:
			return OutcomeHome, nil
		case home < away:
			return OutcomeAway, nil
		default:
			return OutcomeDraw, nil
		}
	case MarketBothTeamsScore:
		if home > 0 && away > 0 {
			return OutcomeYes, nil
		}
		return OutcomeNo, nil
	case MarketOverUnder25:
		if home+away > 2 {
			return OutcomeOver, nil
		}
		return OutcomeUnder, nil
	}
	return "", ErrInvalidMarket
}

// OddsLine is one stored price: a single (match, market, outcome) cell of the
// match's odds set. Regeneration replaces every line of a match wholesale.
type OddsLine struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MatchID            uuid.UUID       `gorm:"type:uuid;not null;index:idx_odds_lines_match" json:"match_id"`
	Market             BetMarket       `gorm:"type:varchar(30);not null" json:"market"`
	Outcome            string          `gorm:"type:varchar(10);not null" json:"outcome"`
	Price              decimal.Decimal `gorm:"type:decimal(10,2);not null;check:price > 1" json:"price"`
	ImpliedProbability decimal.Decimal `gorm:"type:decimal(8,4);not null" json:"implied_probability"`
	Margin             decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"margin"`
	GeneratedAt        time.Time       `gorm:"type:timestamptz;not null" json:"generated_at"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for OddsLine model
func (*OddsLine) TableName() string {
	return "odds_lines"
}

// BeforeCreate sets up the model before creation
func (l *OddsLine) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Validate performs validation on a stored odds line.
func (l *OddsLine) Validate() error {
	if l.MatchID == uuid.Nil {
		return ErrInvalidMatchID
	}
	if !ValidMarket(l.Market) {
		return ErrInvalidMarket
	}
	if !ValidOutcome(l.Market, l.Outcome) {
		return ErrInvalidOutcome
	}
	if l.Price.LessThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidPrice
	}
	return nil
}

// OddsSet is the full priced view of one match: every market mapped to its
// outcome prices. It is assembled from odds_lines rows and is the unit of
// regeneration.
type OddsSet struct {
	MatchID     uuid.UUID                                `json:"match_id"`
	GeneratedAt time.Time                                `json:"generated_at"`
	Margin      decimal.Decimal                          `json:"margin"`
	Markets     map[BetMarket]map[string]decimal.Decimal `json:"markets"`
}

// Price returns the stored price for a market outcome.
func (s *OddsSet) Price(market BetMarket, outcome string) (decimal.Decimal, bool) {
	outcomes, ok := s.Markets[market]
	if !ok {
		return decimal.Zero, false
	}
	price, ok := outcomes[outcome]
	return price, ok
}

// ImpliedSum returns the sum of 1/price over the outcomes of one market.
// Every book we publish must keep this at or above 1: a sum below 1 would be
// a guaranteed-loss (arbitrage) book.
func (s *OddsSet) ImpliedSum(market BetMarket) decimal.Decimal {
	sum := decimal.Zero
	for _, price := range s.Markets[market] {
		if price.IsPositive() {
			sum = sum.Add(decimal.NewFromInt(1).Div(price))
		}
	}
	return sum
}

// Validate checks every market of the set for completeness and for the
// no-negative-margin invariant.
func (s *OddsSet) Validate() error {
	if s.MatchID == uuid.Nil {
		return ErrInvalidMatchID
	}
	one := decimal.NewFromInt(1)
	for market, outcomes := range s.Markets {
		if !ValidMarket(market) {
			return ErrInvalidMarket
		}
		for _, label := range MarketOutcomes[market] {
			price, ok := outcomes[label]
			if !ok {
				return ErrInvalidOutcome
			}
			if price.LessThanOrEqual(one) {
				return ErrInvalidPrice
			}
		}
		if s.ImpliedSum(market).LessThan(one) {
			return ErrNegativeMarginOdds
		}
	}
	return nil
}

// Lines flattens the set into odds_lines rows for storage.
func (s *OddsSet) Lines() []OddsLine {
	lines := make([]OddsLine, 0, 7)
	for market, outcomes := range s.Markets {
		for outcome, price := range outcomes {
			implied := decimal.Zero
			if price.IsPositive() {
				implied = decimal.NewFromInt(1).Div(price).Round(4)
			}
			lines = append(lines, OddsLine{
				MatchID:            s.MatchID,
				Market:             market,
				Outcome:            outcome,
				Price:              price,
				ImpliedProbability: implied,
				Margin:             s.Margin,
				GeneratedAt:        s.GeneratedAt,
			})
		}
	}
	return lines
}

// OddsSetFromLines rebuilds the aggregate from stored rows.
func OddsSetFromLines(matchID uuid.UUID, lines []OddsLine) *OddsSet {
	set := &OddsSet{
		MatchID: matchID,
		Markets: make(map[BetMarket]map[string]decimal.Decimal),
	}
	for i := range lines {
		line := &lines[i]
		if _, ok := set.Markets[line.Market]; !ok {
			set.Markets[line.Market] = make(map[string]decimal.Decimal)
		}
		set.Markets[line.Market][line.Outcome] = line.Price
		if line.GeneratedAt.After(set.GeneratedAt) {
			set.GeneratedAt = line.GeneratedAt
			set.Margin = line.Margin
		}
	}
	return set
}
