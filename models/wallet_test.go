package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWallet(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		w := Wallet{}
		assert.Equal(t, "wallets", w.TableName())
	})

	t.Run("BeforeCreate", func(t *testing.T) {
		w := Wallet{}
		assert.Equal(t, uuid.Nil, w.ID)

		err := w.BeforeCreate(nil)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, w.ID)
		assert.Equal(t, DefaultCurrencyCode, w.CurrencyCode)

		existingID := uuid.New()
		w2 := Wallet{ID: existingID, CurrencyCode: "EUR"}
		err = w2.BeforeCreate(nil)
		assert.NoError(t, err)
		assert.Equal(t, existingID, w2.ID)
		assert.Equal(t, "EUR", w2.CurrencyCode)
	})

	t.Run("CanDebit", func(t *testing.T) {
		w := Wallet{Balance: decimal.NewFromFloat(1000)}

		assert.True(t, w.CanDebit(decimal.NewFromFloat(500)))
		assert.True(t, w.CanDebit(decimal.NewFromFloat(1000)))
		assert.False(t, w.CanDebit(decimal.NewFromFloat(1000.01)))
	})

	t.Run("Credit", func(t *testing.T) {
		w := Wallet{Balance: decimal.NewFromFloat(500)}

		err := w.Credit(decimal.NewFromFloat(200))
		assert.NoError(t, err)
		expected := decimal.NewFromFloat(700)
		assert.True(t, expected.Equal(w.Balance))

		err = w.Credit(decimal.Zero)
		assert.Equal(t, ErrInvalidTransactionAmount, err)

		err = w.Credit(decimal.NewFromFloat(-100))
		assert.Equal(t, ErrInvalidTransactionAmount, err)
	})

	t.Run("Debit", func(t *testing.T) {
		w := Wallet{Balance: decimal.NewFromFloat(500)}

		err := w.Debit(decimal.NewFromFloat(200))
		assert.NoError(t, err)
		expected := decimal.NewFromFloat(300)
		assert.True(t, expected.Equal(w.Balance))

		err = w.Debit(decimal.NewFromFloat(400))
		assert.Equal(t, ErrInsufficientBalance, err)

		err = w.Debit(decimal.Zero)
		assert.Equal(t, ErrInvalidTransactionAmount, err)
	})

	t.Run("Validate", func(t *testing.T) {
		w := Wallet{
			UserID:       uuid.New(),
			CurrencyCode: DefaultCurrencyCode,
			Balance:      decimal.NewFromFloat(1000),
		}
		assert.NoError(t, w.Validate())

		w2 := w
		w2.UserID = uuid.Nil
		assert.Equal(t, ErrInvalidUserID, w2.Validate())

		w3 := w
		w3.CurrencyCode = "POINTS"
		assert.Equal(t, ErrInvalidCurrencyCode, w3.Validate())

		w4 := w
		w4.Balance = decimal.NewFromFloat(-1)
		assert.Equal(t, ErrNegativeBalance, w4.Validate())
	})

	t.Run("InitialBalance", func(t *testing.T) {
		assert.True(t, InitialWalletBalance.Equal(decimal.NewFromInt(1000)))
	})
}
