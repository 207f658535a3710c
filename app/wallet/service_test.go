package wallet

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/matchday/oddsbook/models"
)

// fakeRepository keeps wallets and ledger rows in memory so service tests
// run without a database.
type fakeRepository struct {
	wallets map[uuid.UUID]*models.Wallet
	ledger  []models.Transaction
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{wallets: make(map[uuid.UUID]*models.Wallet)}
}

func (f *fakeRepository) WithTx(_ *gorm.DB) Repository { return f }

func (f *fakeRepository) CreateWallet(_ context.Context, wallet *models.Wallet) error {
	if _, exists := f.wallets[wallet.UserID]; exists {
		return gorm.ErrDuplicatedKey
	}
	if wallet.ID == uuid.Nil {
		wallet.ID = uuid.New()
	}
	f.wallets[wallet.UserID] = wallet
	return nil
}

func (f *fakeRepository) GetWalletByUser(_ context.Context, userID uuid.UUID) (*models.Wallet, error) {
	wallet, ok := f.wallets[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return wallet, nil
}

func (f *fakeRepository) GetWalletByUserForUpdate(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	return f.GetWalletByUser(ctx, userID)
}

func (f *fakeRepository) UpdateWallet(_ context.Context, wallet *models.Wallet) error {
	f.wallets[wallet.UserID] = wallet
	return nil
}

func (f *fakeRepository) CreateTransaction(_ context.Context, transaction *models.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	f.ledger = append(f.ledger, *transaction)
	return nil
}

func (f *fakeRepository) GetWalletTransactions(_ context.Context, walletID uuid.UUID, limit, offset int) ([]models.Transaction, int64, error) {
	var rows []models.Transaction
	for i := range f.ledger {
		if f.ledger[i].WalletID == walletID {
			rows = append(rows, f.ledger[i])
		}
	}
	total := int64(len(rows))
	if offset > len(rows) {
		offset = len(rows)
	}
	rows = rows[offset:]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, total, nil
}

func newTestService(t *testing.T, repo Repository, txCount int) (Service, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	assert.NoError(t, err)

	for i := 0; i < txCount; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}

	svc := NewService(repo, gormDB)
	return svc, func() { _ = db.Close() }
}

func TestGetOrCreateWallet(t *testing.T) {
	t.Run("FirstTouchCreditsInitialBalance", func(t *testing.T) {
		repo := newFakeRepository()
		userID := uuid.New()

		svc, closeDB := newTestService(t, repo, 1)
		defer closeDB()

		resp, err := svc.GetOrCreateWallet(context.Background(), userID)
		assert.NoError(t, err)
		assert.True(t, resp.Balance.Equal(models.InitialWalletBalance), resp.Balance.String())
		assert.Equal(t, models.DefaultCurrencyCode, resp.CurrencyCode)

		assert.Len(t, repo.ledger, 1)
		opening := repo.ledger[0]
		assert.Equal(t, models.TransactionTypeDeposit, opening.TransactionType)
		assert.True(t, opening.BalanceBefore.IsZero())
		assert.True(t, opening.IsBalanceConsistent())
	})

	t.Run("SecondTouchReturnsExistingWallet", func(t *testing.T) {
		repo := newFakeRepository()
		userID := uuid.New()

		svc, closeDB := newTestService(t, repo, 1)
		defer closeDB()

		first, err := svc.GetOrCreateWallet(context.Background(), userID)
		assert.NoError(t, err)

		second, err := svc.GetOrCreateWallet(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, repo.ledger, 1)
	})
}

func TestDeposit(t *testing.T) {
	t.Run("CreditsBalanceAndWritesLedger", func(t *testing.T) {
		repo := newFakeRepository()
		userID := uuid.New()
		repo.wallets[userID] = &models.Wallet{ID: uuid.New(), UserID: userID, Balance: decimal.NewFromInt(50)}

		svc, closeDB := newTestService(t, repo, 1)
		defer closeDB()

		resp, err := svc.Deposit(context.Background(), userID, &DepositRequest{
			Amount:      decimal.NewFromInt(25),
			Description: "top up",
		})
		assert.NoError(t, err)
		assert.True(t, resp.Wallet.Balance.Equal(decimal.NewFromInt(75)), resp.Wallet.Balance.String())
		assert.True(t, resp.Transaction.Amount.Equal(decimal.NewFromInt(25)))

		assert.Len(t, repo.ledger, 1)
		assert.True(t, repo.ledger[0].IsBalanceConsistent())
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		repo := newFakeRepository()
		svc, closeDB := newTestService(t, repo, 0)
		defer closeDB()

		_, err := svc.Deposit(context.Background(), uuid.New(), &DepositRequest{Amount: decimal.Zero})
		assert.ErrorIs(t, err, models.ErrInvalidTransactionAmount)
	})
}

func TestWithdraw(t *testing.T) {
	t.Run("DebitsBalance", func(t *testing.T) {
		repo := newFakeRepository()
		userID := uuid.New()
		repo.wallets[userID] = &models.Wallet{ID: uuid.New(), UserID: userID, Balance: decimal.NewFromInt(50)}

		svc, closeDB := newTestService(t, repo, 1)
		defer closeDB()

		resp, err := svc.Withdraw(context.Background(), userID, &WithdrawRequest{
			Amount: decimal.NewFromInt(20),
		})
		assert.NoError(t, err)
		assert.True(t, resp.Wallet.Balance.Equal(decimal.NewFromInt(30)), resp.Wallet.Balance.String())
		assert.True(t, resp.Transaction.Amount.Equal(decimal.NewFromInt(-20)))
	})

	t.Run("RejectsOverdraw", func(t *testing.T) {
		repo := newFakeRepository()
		userID := uuid.New()
		repo.wallets[userID] = &models.Wallet{ID: uuid.New(), UserID: userID, Balance: decimal.NewFromInt(10)}

		svc, closeDB := newTestService(t, repo, 1)
		defer closeDB()

		_, err := svc.Withdraw(context.Background(), userID, &WithdrawRequest{
			Amount: decimal.NewFromInt(20),
		})
		assert.ErrorIs(t, err, models.ErrInsufficientBalance)
		assert.True(t, repo.wallets[userID].Balance.Equal(decimal.NewFromInt(10)))
		assert.Empty(t, repo.ledger)
	})

	t.Run("RejectsUnknownWallet", func(t *testing.T) {
		repo := newFakeRepository()
		svc, closeDB := newTestService(t, repo, 1)
		defer closeDB()

		_, err := svc.Withdraw(context.Background(), uuid.New(), &WithdrawRequest{
			Amount: decimal.NewFromInt(20),
		})
		assert.ErrorIs(t, err, models.ErrRecordNotFound)
	})
}

func TestGetTransactions(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	wallet := &models.Wallet{ID: uuid.New(), UserID: userID, Balance: decimal.NewFromInt(100)}
	repo.wallets[userID] = wallet
	for i := 0; i < 3; i++ {
		repo.ledger = append(repo.ledger, *models.CreateDepositTransaction(
			userID, wallet.ID, decimal.NewFromInt(int64(i+1)), decimal.Zero, "seed",
		))
	}

	svc, closeDB := newTestService(t, repo, 0)
	defer closeDB()

	resp, err := svc.GetTransactions(context.Background(), userID, 2, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.Transactions, 2)
	assert.Equal(t, 2, resp.Limit)

	_, err = svc.GetTransactions(context.Background(), uuid.New(), 10, 0)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
}
