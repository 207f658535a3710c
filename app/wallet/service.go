package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/matchday/oddsbook/models"
)

type Service interface {
	GetOrCreateWallet(ctx context.Context, userID uuid.UUID) (*Response, error)
	Deposit(ctx context.Context, userID uuid.UUID, req *DepositRequest) (*OperationResponse, error)
	Withdraw(ctx context.Context, userID uuid.UUID, req *WithdrawRequest) (*OperationResponse, error)
	GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) (*TransactionListResponse, error)
}

type service struct {
	repo Repository
	db   *gorm.DB
}

func NewService(repo Repository, db *gorm.DB) Service {
	return &service{
		repo: repo,
		db:   db,
	}
}

// GetOrCreateWallet returns the caller's wallet, opening it with the initial
// points credit on first touch.
func (s *service) GetOrCreateWallet(ctx context.Context, userID uuid.UUID) (*Response, error) {
	wallet, err := s.repo.GetWalletByUser(ctx, userID)
	if err == nil {
		return ToWalletResponse(wallet), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	wallet, err = s.openWallet(ctx, userID)
	if err != nil {
		// a concurrent first touch can win the unique index race
		if existing, getErr := s.repo.GetWalletByUser(ctx, userID); getErr == nil {
			return ToWalletResponse(existing), nil
		}
		return nil, err
	}
	return ToWalletResponse(wallet), nil
}

// openWallet creates the wallet and books the initial balance as a ledger
// deposit so the first row already balances.
func (s *service) openWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	wallet := &models.Wallet{
		UserID:       userID,
		CurrencyCode: models.DefaultCurrencyCode,
		Balance:      models.InitialWalletBalance,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.CreateWallet(ctx, wallet); err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}

		opening := models.CreateDepositTransaction(
			userID, wallet.ID, models.InitialWalletBalance, decimal.Zero, "Initial balance credit",
		)
		if err := txRepo.CreateTransaction(ctx, opening); err != nil {
			return fmt.Errorf("failed to create opening transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *service) Deposit(ctx context.Context, userID uuid.UUID, req *DepositRequest) (*OperationResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidTransactionAmount
	}

	return s.executeWalletTransaction(ctx, userID, func(txRepo Repository, wallet *models.Wallet) (*models.Transaction, error) {
		balanceBefore := wallet.Balance
		if err := wallet.Credit(req.Amount); err != nil {
			return nil, fmt.Errorf("failed to credit wallet: %w", err)
		}
		return models.CreateDepositTransaction(userID, wallet.ID, req.Amount, balanceBefore, req.Description), nil
	})
}

func (s *service) Withdraw(ctx context.Context, userID uuid.UUID, req *WithdrawRequest) (*OperationResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidTransactionAmount
	}

	return s.executeWalletTransaction(ctx, userID, func(txRepo Repository, wallet *models.Wallet) (*models.Transaction, error) {
		balanceBefore := wallet.Balance
		if !wallet.CanDebit(req.Amount) {
			return nil, models.ErrInsufficientBalance
		}
		if err := wallet.Debit(req.Amount); err != nil {
			return nil, fmt.Errorf("failed to debit wallet: %w", err)
		}
		return models.CreateWithdrawalTransaction(userID, wallet.ID, req.Amount, balanceBefore, req.Description), nil
	})
}

func (s *service) GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) (*TransactionListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	wallet, err := s.repo.GetWalletByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	transactions, total, err := s.repo.GetWalletTransactions(ctx, wallet.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet transactions: %w", err)
	}

	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = *ToTransactionResponse(&transactions[i])
	}

	return &TransactionListResponse{
		Transactions: responses,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

// executeWalletTransaction runs a balance mutation and its ledger row in one
// database transaction, wallet row locked for the duration.
func (s *service) executeWalletTransaction(
	ctx context.Context,
	userID uuid.UUID,
	operation func(Repository, *models.Wallet) (*models.Transaction, error),
) (*OperationResponse, error) {
	var result *OperationResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		wallet, err := txRepo.GetWalletByUserForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrRecordNotFound
			}
			return fmt.Errorf("failed to get wallet: %w", err)
		}

		transaction, err := operation(txRepo, wallet)
		if err != nil {
			return err
		}

		if err := txRepo.UpdateWallet(ctx, wallet); err != nil {
			return fmt.Errorf("failed to update wallet: %w", err)
		}
		if err := txRepo.CreateTransaction(ctx, transaction); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		result = &OperationResponse{
			Wallet:      ToWalletResponse(wallet),
			Transaction: ToTransactionResponse(transaction),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
