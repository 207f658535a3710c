package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeBetPlace   TransactionType = "bet_place"
	TransactionTypeBetPayout  TransactionType = "bet_payout"
	TransactionTypeBetRefund  TransactionType = "bet_refund"
)

// Transaction represents a wallet movement (immutable ledger)
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user" json:"user_id"`
	WalletID        uuid.UUID       `gorm:"type:uuid;not null" json:"wallet_id"`
	TransactionType TransactionType `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	BalanceBefore   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance_before"`
	BalanceAfter    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance_after"`
	ReferenceType   string          `gorm:"type:varchar(20)" json:"reference_type"` // 'bet', 'settlement'
	ReferenceID     *uuid.UUID      `gorm:"type:uuid" json:"reference_id"`
	Description     string          `gorm:"type:text" json:"description"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index:idx_transactions_created_at" json:"created_at"`

	// Associations (Note: Transactions are immutable, no updates)
	Wallet *Wallet `gorm:"foreignKey:WalletID" json:"wallet,omitempty"`
}

// TableName specifies the table name for Transaction model
func (*Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate sets up the model before creation
func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsCredit checks if this is a credit transaction (positive amount)
func (t *Transaction) IsCredit() bool {
	return t.Amount.GreaterThan(decimal.Zero)
}

// IsDebit checks if this is a debit transaction (negative amount)
func (t *Transaction) IsDebit() bool {
	return t.Amount.LessThan(decimal.Zero)
}

// GetAbsoluteAmount returns the absolute value of the transaction amount
func (t *Transaction) GetAbsoluteAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// IsBalanceConsistent checks if the balance calculation is consistent
func (t *Transaction) IsBalanceConsistent() bool {
	expectedBalance := t.BalanceBefore.Add(t.Amount)
	return expectedBalance.Equal(t.BalanceAfter)
}

// Validate performs validation on the transaction model
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if t.WalletID == uuid.Nil {
		return ErrInvalidWalletBalance
	}
	if t.Amount.IsZero() {
		return ErrInvalidTransactionAmount
	}
	if !t.IsBalanceConsistent() {
		return ErrInvalidTransactionAmount
	}
	if t.BalanceAfter.LessThan(decimal.Zero) {
		return ErrNegativeBalance
	}
	return nil
}

// CreateDepositTransaction creates a deposit transaction
func CreateDepositTransaction(userID,
	walletID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	description string) *Transaction {
	return &Transaction{
		UserID:          userID,
		WalletID:        walletID,
		TransactionType: TransactionTypeDeposit,
		Amount:          amount,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Add(amount),
		Description:     description,
	}
}

// CreateWithdrawalTransaction creates a withdrawal transaction
func CreateWithdrawalTransaction(userID,
	walletID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	description string) *Transaction {
	return &Transaction{
		UserID:          userID,
		WalletID:        walletID,
		TransactionType: TransactionTypeWithdrawal,
		Amount:          amount.Neg(), // Negative for withdrawal
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Sub(amount),
		Description:     description,
	}
}

// CreateBetTransaction creates a bet placement transaction
func CreateBetTransaction(userID,
	walletID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	betID uuid.UUID) *Transaction {
	return &Transaction{
		UserID:          userID,
		WalletID:        walletID,
		TransactionType: TransactionTypeBetPlace,
		Amount:          amount.Neg(), // Negative for bet placement
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Sub(amount),
		ReferenceType:   "bet",
		ReferenceID:     &betID,
		Description:     "Bet placement",
	}
}

// CreatePayoutTransaction creates a bet payout transaction
func CreatePayoutTransaction(userID,
	walletID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	settlementID uuid.UUID) *Transaction {
	return &Transaction{
		UserID:          userID,
		WalletID:        walletID,
		TransactionType: TransactionTypeBetPayout,
		Amount:          amount,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Add(amount),
		ReferenceType:   "settlement",
		ReferenceID:     &settlementID,
		Description:     "Bet payout",
	}
}

// CreateBetRefundTransaction creates a bet refund transaction
func CreateBetRefundTransaction(userID,
	walletID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	betID uuid.UUID) *Transaction {
	return &Transaction{
		UserID:          userID,
		WalletID:        walletID,
		TransactionType: TransactionTypeBetRefund,
		Amount:          amount, // Positive for refund (credit)
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Add(amount),
		ReferenceType:   "bet",
		ReferenceID:     &betID,
		Description:     "Refund for voided bet",
	}
}
