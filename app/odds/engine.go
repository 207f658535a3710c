package odds

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/matchday/oddsbook/models"
	"github.com/shopspring/decimal"
)

// pricingEngine implements the PricingEngine interface using independent
// Poisson goal distributions for the two sides.
type pricingEngine struct {
	config *Config
}

// NewPricingEngine creates a new pricing engine
func NewPricingEngine(config *Config) PricingEngine {
	return &pricingEngine{config: config}
}

// ExpectedGoals derives the Poisson rate for each side. A side's rate blends
// its scoring average with what the opponent concedes; the home rate carries
// the home advantage multiplier. Teams without enough history fall back to
// league-typical rates so a newly tracked team still gets a price.
func (e *pricingEngine) ExpectedGoals(home, away *models.TeamFormSnapshot) (lambdaHome, lambdaAway float64) {
	if !home.LowConfidence && !away.LowConfidence {
		lambdaHome = (home.AvgGoalsFor + away.AvgGoalsAgainst) / 2 * e.config.HomeAdvantage
		lambdaAway = (away.AvgGoalsFor + home.AvgGoalsAgainst) / 2
	} else {
		lambdaHome = e.config.FallbackHomeRate * e.config.HomeAdvantage
		lambdaAway = e.config.FallbackAwayRate
	}

	lambdaHome = e.clampRate(lambdaHome)
	lambdaAway = e.clampRate(lambdaAway)
	return lambdaHome, lambdaAway
}

func (e *pricingEngine) clampRate(lambda float64) float64 {
	if lambda < e.config.MinExpectedGoals {
		return e.config.MinExpectedGoals
	}
	if lambda > e.config.MaxExpectedGoals {
		return e.config.MaxExpectedGoals
	}
	return lambda
}

// ScoreMatrix builds the joint probability of every scoreline up to the goal
// cap. The last row and column absorb the Poisson tail beyond the cap, so
// the matrix always sums to 1.
func (e *pricingEngine) ScoreMatrix(lambdaHome, lambdaAway float64) [][]float64 {
	goalCap := e.config.GoalCap

	homeDist := foldedPoisson(lambdaHome, goalCap)
	awayDist := foldedPoisson(lambdaAway, goalCap)

	matrix := make([][]float64, goalCap+1)
	for h := 0; h <= goalCap; h++ {
		matrix[h] = make([]float64, goalCap+1)
		for a := 0; a <= goalCap; a++ {
			matrix[h][a] = homeDist[h] * awayDist[a]
		}
	}
	return matrix
}

// foldedPoisson returns P(X = k) for k in [0, goalCap], with the tail mass
// P(X > goalCap) folded into the last bucket.
func foldedPoisson(lambda float64, goalCap int) []float64 {
	dist := make([]float64, goalCap+1)
	remaining := 1.0
	for k := 0; k < goalCap; k++ {
		p := poissonPMF(lambda, k)
		dist[k] = p
		remaining -= p
	}
	if remaining < 0 {
		remaining = 0
	}
	dist[goalCap] = remaining
	return dist
}

func poissonPMF(lambda float64, k int) float64 {
	logP := -lambda + float64(k)*math.Log(lambda)
	for i := 2; i <= k; i++ {
		logP -= math.Log(float64(i))
	}
	return math.Exp(logP)
}

// MarketProbabilities sums score-matrix cells into outcome probabilities for
// every supported market, classifying each cell through the same function the
// settlement path uses.
func (e *pricingEngine) MarketProbabilities(matrix [][]float64) (map[models.BetMarket]map[string]float64, error) {
	probs := make(map[models.BetMarket]map[string]float64, len(models.MarketOutcomes))
	for market, outcomes := range models.MarketOutcomes {
		probs[market] = make(map[string]float64, len(outcomes))
		for _, outcome := range outcomes {
			probs[market][outcome] = 0
		}
	}

	for h := range matrix {
		for a := range matrix[h] {
			cell := matrix[h][a]
			if cell == 0 {
				continue
			}
			for market := range probs {
				outcome, err := models.OutcomeForScore(market, h, a)
				if err != nil {
					return nil, err
				}
				probs[market][outcome] += cell
			}
		}
	}
	return probs, nil
}

// PriceFromProbability converts a true probability into a published price.
// The margin inflates the implied probability so the book's implied sum lands
// at 1 plus the margin; the result is clamped to the price bounds and
// rounded to two decimals.
func (e *pricingEngine) PriceFromProbability(probability float64) decimal.Decimal {
	if probability <= 0 {
		return e.config.MaxPrice
	}

	margin, _ := e.config.BookmakerMargin.Float64()
	price := decimal.NewFromFloat(1 / (probability * (1 + margin))).Round(2)

	if price.LessThan(e.config.MinPrice) {
		return e.config.MinPrice
	}
	if price.GreaterThan(e.config.MaxPrice) {
		return e.config.MaxPrice
	}
	return price
}

// BuildOddsSet prices every market of a match from the two form snapshots.
func (e *pricingEngine) BuildOddsSet(matchID uuid.UUID, home, away *models.TeamFormSnapshot, now time.Time) (*models.OddsSet, error) {
	lambdaHome, lambdaAway := e.ExpectedGoals(home, away)
	matrix := e.ScoreMatrix(lambdaHome, lambdaAway)

	probs, err := e.MarketProbabilities(matrix)
	if err != nil {
		return nil, err
	}

	set := &models.OddsSet{
		MatchID:     matchID,
		GeneratedAt: now,
		Margin:      e.config.BookmakerMargin,
		Markets:     make(map[models.BetMarket]map[string]decimal.Decimal, len(probs)),
	}
	for market, outcomes := range probs {
		set.Markets[market] = make(map[string]decimal.Decimal, len(outcomes))
		for outcome, p := range outcomes {
			set.Markets[market][outcome] = e.PriceFromProbability(p)
		}
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}
