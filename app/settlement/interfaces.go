package settlement

import (
	"context"

	"gorm.io/gorm"

	"github.com/google/uuid"
	"github.com/matchday/oddsbook/models"
)

// Repository defines the interface for settlement data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetMatchByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	UpdateMatch(ctx context.Context, match *models.Match) error

	// GetPendingBetsForMatch returns pending bets holding at least one leg on
	// the match, legs preloaded.
	GetPendingBetsForMatch(ctx context.Context, matchID uuid.UUID, limit int) ([]models.Bet, error)

	// ResolveLeg transitions a pending leg to a terminal status. Returns false
	// when the leg was no longer pending.
	ResolveLeg(ctx context.Context, legID uuid.UUID, status models.LegStatus) (bool, error)

	// SettleBet transitions a pending bet to a terminal status with its
	// payout. Returns false when the bet was no longer pending.
	SettleBet(ctx context.Context, bet *models.Bet) (bool, error)

	CreateSettlement(ctx context.Context, settlement *models.BetSettlement) error
	UpdateSettlement(ctx context.Context, settlement *models.BetSettlement) error

	// Wallet operations inside the per-bet settlement transaction
	GetUserWalletForUpdate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	UpdateWallet(ctx context.Context, wallet *models.Wallet) error
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
}

// Service defines the interface for settlement business logic
type Service interface {
	SettleMatch(ctx context.Context, matchID uuid.UUID, req *RecordResultRequest) (*SettlementReport, error)
	VoidMatch(ctx context.Context, matchID uuid.UUID) (*SettlementReport, error)
}
