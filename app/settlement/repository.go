package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matchday/oddsbook/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// GetMatchByID returns a match by ID
func (r *repository) GetMatchByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// UpdateMatch persists match status and scores
func (r *repository) UpdateMatch(ctx context.Context, match *models.Match) error {
	return r.db.WithContext(ctx).Save(match).Error
}

// GetPendingBetsForMatch returns pending bets holding a leg on the match,
// oldest first, legs preloaded.
func (r *repository) GetPendingBetsForMatch(ctx context.Context, matchID uuid.UUID, limit int) ([]models.Bet, error) {
	var bets []models.Bet
	err := r.db.WithContext(ctx).
		Preload("Legs").
		Where("status = ? AND id IN (?)", models.BetStatusPending,
			r.db.Model(&models.BetLeg{}).Select("bet_id").Where("match_id = ?", matchID)).
		Order("created_at ASC").
		Limit(limit).
		Find(&bets).Error
	return bets, err
}

// ResolveLeg performs a status-gated transition on a single leg. The WHERE
// clause on the pending status makes redelivered settlements a no-op.
func (r *repository) ResolveLeg(ctx context.Context, legID uuid.UUID, status models.LegStatus) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.BetLeg{}).
		Where("id = ? AND status = ?", legID, models.LegStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"settled_at": now,
		})
	return result.RowsAffected > 0, result.Error
}

// SettleBet performs a status-gated transition on a bet. Zero rows affected
// means another settlement pass got there first.
func (r *repository) SettleBet(ctx context.Context, bet *models.Bet) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Bet{}).
		Where("id = ? AND status = ?", bet.ID, models.BetStatusPending).
		Updates(map[string]interface{}{
			"status":     bet.Status,
			"payout":     bet.Payout,
			"settled_at": bet.SettledAt,
		})
	return result.RowsAffected > 0, result.Error
}

// CreateSettlement persists the immutable settlement audit record
func (r *repository) CreateSettlement(ctx context.Context, settlement *models.BetSettlement) error {
	return r.db.WithContext(ctx).Create(settlement).Error
}

// UpdateSettlement links the settlement to its ledger transaction
func (r *repository) UpdateSettlement(ctx context.Context, settlement *models.BetSettlement) error {
	return r.db.WithContext(ctx).Save(settlement).Error
}

// GetUserWalletForUpdate loads the wallet under a row lock for the credit
func (r *repository) GetUserWalletForUpdate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// UpdateWallet persists the wallet balance
func (r *repository) UpdateWallet(ctx context.Context, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).Save(wallet).Error
}

// CreateTransaction persists a ledger transaction
func (r *repository) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}
