package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		tx := Transaction{}
		assert.Equal(t, "transactions", tx.TableName())
	})

	t.Run("BeforeCreate", func(t *testing.T) {
		tx := Transaction{}
		err := tx.BeforeCreate(nil)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, tx.ID)
	})

	t.Run("IsCreditAndIsDebit", func(t *testing.T) {
		credit := Transaction{Amount: decimal.NewFromFloat(50)}
		assert.True(t, credit.IsCredit())
		assert.False(t, credit.IsDebit())

		debit := Transaction{Amount: decimal.NewFromFloat(-50)}
		assert.False(t, debit.IsCredit())
		assert.True(t, debit.IsDebit())
	})

	t.Run("GetAbsoluteAmount", func(t *testing.T) {
		tx := Transaction{Amount: decimal.NewFromFloat(-25)}
		assert.True(t, decimal.NewFromFloat(25).Equal(tx.GetAbsoluteAmount()))
	})

	t.Run("IsBalanceConsistent", func(t *testing.T) {
		tx := Transaction{
			Amount:        decimal.NewFromFloat(-100),
			BalanceBefore: decimal.NewFromFloat(1000),
			BalanceAfter:  decimal.NewFromFloat(900),
		}
		assert.True(t, tx.IsBalanceConsistent())

		tx.BalanceAfter = decimal.NewFromFloat(950)
		assert.False(t, tx.IsBalanceConsistent())
	})

	t.Run("Validate", func(t *testing.T) {
		tx := Transaction{
			UserID:        uuid.New(),
			WalletID:      uuid.New(),
			Amount:        decimal.NewFromFloat(-100),
			BalanceBefore: decimal.NewFromFloat(1000),
			BalanceAfter:  decimal.NewFromFloat(900),
		}
		assert.NoError(t, tx.Validate())

		tx2 := tx
		tx2.Amount = decimal.Zero
		assert.Error(t, tx2.Validate())

		tx3 := tx
		tx3.BalanceAfter = decimal.NewFromFloat(901)
		assert.Equal(t, ErrInvalidTransactionAmount, tx3.Validate())

		tx4 := tx
		tx4.Amount = decimal.NewFromFloat(-1100)
		tx4.BalanceAfter = decimal.NewFromFloat(-100)
		assert.Equal(t, ErrNegativeBalance, tx4.Validate())
	})

	t.Run("CreateBetTransaction", func(t *testing.T) {
		userID, walletID, betID := uuid.New(), uuid.New(), uuid.New()

		tx := CreateBetTransaction(userID, walletID,
			decimal.NewFromFloat(100), decimal.NewFromFloat(1000), betID)

		assert.Equal(t, TransactionTypeBetPlace, tx.TransactionType)
		assert.True(t, tx.Amount.Equal(decimal.NewFromFloat(-100)))
		assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromFloat(900)))
		assert.Equal(t, "bet", tx.ReferenceType)
		assert.Equal(t, betID, *tx.ReferenceID)
		assert.True(t, tx.IsBalanceConsistent())
	})

	t.Run("CreatePayoutTransaction", func(t *testing.T) {
		userID, walletID, settlementID := uuid.New(), uuid.New(), uuid.New()

		tx := CreatePayoutTransaction(userID, walletID,
			decimal.NewFromFloat(250), decimal.NewFromFloat(900), settlementID)

		assert.Equal(t, TransactionTypeBetPayout, tx.TransactionType)
		assert.True(t, tx.Amount.Equal(decimal.NewFromFloat(250)))
		assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromFloat(1150)))
		assert.Equal(t, "settlement", tx.ReferenceType)
		assert.True(t, tx.IsBalanceConsistent())
	})

	t.Run("CreateBetRefundTransaction", func(t *testing.T) {
		userID, walletID, betID := uuid.New(), uuid.New(), uuid.New()

		tx := CreateBetRefundTransaction(userID, walletID,
			decimal.NewFromFloat(100), decimal.NewFromFloat(900), betID)

		assert.Equal(t, TransactionTypeBetRefund, tx.TransactionType)
		assert.True(t, tx.Amount.Equal(decimal.NewFromFloat(100)))
		assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromFloat(1000)))
		assert.True(t, tx.IsBalanceConsistent())
	})

	t.Run("CreateDepositAndWithdrawal", func(t *testing.T) {
		userID, walletID := uuid.New(), uuid.New()

		dep := CreateDepositTransaction(userID, walletID,
			decimal.NewFromFloat(1000), decimal.Zero, "Initial wallet credit")
		assert.Equal(t, TransactionTypeDeposit, dep.TransactionType)
		assert.True(t, dep.BalanceAfter.Equal(decimal.NewFromFloat(1000)))
		assert.True(t, dep.IsBalanceConsistent())

		wd := CreateWithdrawalTransaction(userID, walletID,
			decimal.NewFromFloat(300), decimal.NewFromFloat(1000), "Withdrawal")
		assert.Equal(t, TransactionTypeWithdrawal, wd.TransactionType)
		assert.True(t, wd.Amount.Equal(decimal.NewFromFloat(-300)))
		assert.True(t, wd.BalanceAfter.Equal(decimal.NewFromFloat(700)))
		assert.True(t, wd.IsBalanceConsistent())
	})
}
