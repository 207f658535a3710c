package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCurrencyCode is the points currency every wallet is denominated in.
const DefaultCurrencyCode = "PTS"

// InitialWalletBalance is credited when a wallet is first created.
var InitialWalletBalance = decimal.NewFromInt(1000)

// Wallet represents a user's points balance
type Wallet struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_wallets_user" json:"user_id"`
	CurrencyCode string          `gorm:"type:varchar(3);not null;default:'PTS'" json:"currency_code"`
	Balance      decimal.Decimal `gorm:"type:decimal(20,2);default:0.00;check:balance >= 0" json:"balance"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Transactions []Transaction `gorm:"foreignKey:WalletID" json:"-"`
}

// TableName specifies the table name for Wallet model
func (*Wallet) TableName() string {
	return "wallets"
}

// BeforeCreate sets up the model before creation
func (w *Wallet) BeforeCreate(_ *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.CurrencyCode == "" {
		w.CurrencyCode = DefaultCurrencyCode
	}
	return nil
}

// CanDebit checks if the wallet has sufficient balance for a debit
func (w *Wallet) CanDebit(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// Credit adds funds to the wallet
func (w *Wallet) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTransactionAmount
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

// Debit removes funds from the wallet
func (w *Wallet) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTransactionAmount
	}
	if !w.CanDebit(amount) {
		return ErrInsufficientBalance
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}

// Validate performs validation on the wallet model
func (w *Wallet) Validate() error {
	if w.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if len(w.CurrencyCode) != 3 {
		return ErrInvalidCurrencyCode
	}
	if w.Balance.LessThan(decimal.Zero) {
		return ErrNegativeBalance
	}
	return nil
}
