package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SettlementType represents the type of settlement
type SettlementType string

const (
	SettlementTypeWin    SettlementType = "win"
	SettlementTypeLoss   SettlementType = "loss"
	SettlementTypeRefund SettlementType = "refund"
)

// BetSettlement represents the settlement of a bet (immutable record)
type BetSettlement struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	BetID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bet_settlements_bet" json:"bet_id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_bet_settlements_user" json:"user_id"`
	MatchID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_bet_settlements_match" json:"match_id"`
	SettlementType SettlementType  `gorm:"type:varchar(20);not null" json:"settlement_type"`
	OriginalStake  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"original_stake"`
	PayoutAmount   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0.00" json:"payout_amount"`
	TransactionID  *uuid.UUID      `gorm:"type:uuid" json:"transaction_id"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Associations (Note: settlements are immutable, no updates)
	Bet         *Bet         `gorm:"foreignKey:BetID" json:"bet,omitempty"`
	Transaction *Transaction `gorm:"foreignKey:TransactionID" json:"transaction,omitempty"`
}

// TableName specifies the table name for BetSettlement model
func (*BetSettlement) TableName() string {
	return "bet_settlements"
}

// BeforeCreate sets up the model before creation
func (s *BetSettlement) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsWin checks if this is a winning settlement
func (s *BetSettlement) IsWin() bool {
	return s.SettlementType == SettlementTypeWin
}

// IsLoss checks if this is a losing settlement
func (s *BetSettlement) IsLoss() bool {
	return s.SettlementType == SettlementTypeLoss
}

// IsRefund checks if this is a refund settlement
func (s *BetSettlement) IsRefund() bool {
	return s.SettlementType == SettlementTypeRefund
}

// GetNetAmount returns the net amount (payout - original stake)
func (s *BetSettlement) GetNetAmount() decimal.Decimal {
	return s.PayoutAmount.Sub(s.OriginalStake)
}

// GetReturnMultiple calculates the return multiple
func (s *BetSettlement) GetReturnMultiple() decimal.Decimal {
	if s.OriginalStake.IsZero() {
		return decimal.Zero
	}
	return s.PayoutAmount.Div(s.OriginalStake)
}

// Validate performs validation on the settlement model
func (s *BetSettlement) Validate() error {
	if s.BetID == uuid.Nil {
		return ErrInvalidBetID
	}
	if s.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if s.MatchID == uuid.Nil {
		return ErrInvalidMatchID
	}
	if s.OriginalStake.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidStake
	}
	if s.PayoutAmount.LessThan(decimal.Zero) {
		return ErrInvalidTransactionAmount
	}
	return nil
}

// CreateWinSettlement creates a winning settlement
func CreateWinSettlement(betID,
	userID, matchID uuid.UUID,
	originalStake, payoutAmount decimal.Decimal) *BetSettlement {
	return &BetSettlement{
		BetID:          betID,
		UserID:         userID,
		MatchID:        matchID,
		SettlementType: SettlementTypeWin,
		OriginalStake:  originalStake,
		PayoutAmount:   payoutAmount,
	}
}

// CreateLossSettlement creates a losing settlement
func CreateLossSettlement(betID, userID, matchID uuid.UUID, originalStake decimal.Decimal) *BetSettlement {
	return &BetSettlement{
		BetID:          betID,
		UserID:         userID,
		MatchID:        matchID,
		SettlementType: SettlementTypeLoss,
		OriginalStake:  originalStake,
		PayoutAmount:   decimal.Zero,
	}
}

// CreateRefundSettlement creates a refund settlement
func CreateRefundSettlement(betID, userID, matchID uuid.UUID, originalStake decimal.Decimal) *BetSettlement {
	return &BetSettlement{
		BetID:          betID,
		UserID:         userID,
		MatchID:        matchID,
		SettlementType: SettlementTypeRefund,
		OriginalStake:  originalStake,
		PayoutAmount:   originalStake, // Full refund
	}
}
