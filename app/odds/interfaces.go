package odds

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/google/uuid"
	"github.com/matchday/oddsbook/models"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for match and odds data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// Fixtures
	CreateMatch(ctx context.Context, match *models.Match) error
	GetMatchByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	GetUpcomingMatches(ctx context.Context, from time.Time, lookaheadDays int) ([]models.Match, error)
	GetCompletedMatchesForTeam(ctx context.Context, teamID uuid.UUID, limit int) ([]models.Match, error)

	// Odds storage
	ReplaceOddsSet(ctx context.Context, set *models.OddsSet) error
	GetOddsLinesForMatch(ctx context.Context, matchID uuid.UUID) ([]models.OddsLine, error)
	GetMatchIDsWithOdds(ctx context.Context, matchIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	ListMatchesWithOdds(ctx context.Context, limit int) ([]models.Match, error)
}

// Service defines the interface for odds business logic
type Service interface {
	CreateMatch(ctx context.Context, req *CreateMatchRequest) (*MatchResponse, error)
	GetMatch(ctx context.Context, matchID uuid.UUID) (*MatchResponse, error)
	ListUpcomingMatches(ctx context.Context) ([]MatchResponse, error)
	ListMatchesWithOdds(ctx context.Context, limit int) ([]MatchResponse, error)

	GenerateOdds(ctx context.Context, matchID uuid.UUID) (*OddsSetResponse, error)
	GenerateUpcomingOdds(ctx context.Context) (*BulkGenerateResponse, error)
	GetMatchOdds(ctx context.Context, matchID uuid.UUID) (*OddsSetResponse, error)
	GetTeamForm(ctx context.Context, teamID uuid.UUID) (*models.TeamFormSnapshot, error)
}

// FormAnalyzer builds scoring summaries from completed fixtures
type FormAnalyzer interface {
	BuildSnapshot(teamID uuid.UUID, history []models.Match) *models.TeamFormSnapshot
}

// PricingEngine defines the interface for odds calculations
type PricingEngine interface {
	ExpectedGoals(home, away *models.TeamFormSnapshot) (lambdaHome, lambdaAway float64)
	ScoreMatrix(lambdaHome, lambdaAway float64) [][]float64
	MarketProbabilities(matrix [][]float64) (map[models.BetMarket]map[string]float64, error)
	PriceFromProbability(probability float64) decimal.Decimal
	BuildOddsSet(matchID uuid.UUID, home, away *models.TeamFormSnapshot, now time.Time) (*models.OddsSet, error)
}
