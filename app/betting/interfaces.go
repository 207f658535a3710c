package betting

import (
	"context"

	"gorm.io/gorm"

	"github.com/google/uuid"
	"github.com/matchday/oddsbook/models"
)

// Repository defines the interface for bet data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateBet(ctx context.Context, bet *models.Bet) error
	GetBetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error)
	GetBetsByUser(ctx context.Context, userID uuid.UUID, filters *BetFilters) ([]models.Bet, int64, error)
	GetBetsForMatch(ctx context.Context, userID, matchID uuid.UUID) ([]models.Bet, error)
	GetUserBetStats(ctx context.Context, userID uuid.UUID) (*BetStats, error)

	// Match and odds reads needed at placement time
	GetMatchesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Match, error)
	GetOddsLinesForMatches(ctx context.Context, matchIDs []uuid.UUID) ([]models.OddsLine, error)

	// Wallet operations inside the placement transaction
	GetUserWalletForUpdate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	UpdateWallet(ctx context.Context, wallet *models.Wallet) error
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	UpdateTransaction(ctx context.Context, transaction *models.Transaction) error
}

// Service defines the interface for betting business logic
type Service interface {
	PlaceBet(ctx context.Context, userID uuid.UUID, req *PlaceBetRequest) (*BetResponse, error)
	GetBetByID(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error)
	GetUserBets(ctx context.Context, userID uuid.UUID, filters *BetFilters) (*BetListResponse, error)
	GetBetsForMatch(ctx context.Context, userID, matchID uuid.UUID) ([]BetResponse, error)
	GetUserBetStats(ctx context.Context, userID uuid.UUID) (*BetStats, error)
}
