package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matchday/oddsbook/models"
)

// DepositRequest represents the request to credit a wallet
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description,omitempty"`
}

// WithdrawRequest represents the request to debit a wallet
type WithdrawRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description,omitempty"`
}

// Response represents a wallet in API responses
type Response struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	CurrencyCode string          `json:"currency_code"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID              uuid.UUID              `json:"id"`
	UserID          uuid.UUID              `json:"user_id"`
	WalletID        uuid.UUID              `json:"wallet_id"`
	TransactionType models.TransactionType `json:"transaction_type"`
	Amount          decimal.Decimal        `json:"amount"`
	BalanceBefore   decimal.Decimal        `json:"balance_before"`
	BalanceAfter    decimal.Decimal        `json:"balance_after"`
	ReferenceType   string                 `json:"reference_type,omitempty"`
	ReferenceID     *uuid.UUID             `json:"reference_id,omitempty"`
	Description     string                 `json:"description,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// TransactionListResponse represents a page of ledger transactions
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// OperationResponse represents the response for wallet operations
type OperationResponse struct {
	Wallet      *Response            `json:"wallet"`
	Transaction *TransactionResponse `json:"transaction"`
}

// ToWalletResponse converts a models.Wallet to Response
func ToWalletResponse(wallet *models.Wallet) *Response {
	return &Response{
		ID:           wallet.ID,
		UserID:       wallet.UserID,
		CurrencyCode: wallet.CurrencyCode,
		Balance:      wallet.Balance,
		CreatedAt:    wallet.CreatedAt,
		UpdatedAt:    wallet.UpdatedAt,
	}
}

// ToTransactionResponse converts a models.Transaction to TransactionResponse
func ToTransactionResponse(transaction *models.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              transaction.ID,
		UserID:          transaction.UserID,
		WalletID:        transaction.WalletID,
		TransactionType: transaction.TransactionType,
		Amount:          transaction.Amount,
		BalanceBefore:   transaction.BalanceBefore,
		BalanceAfter:    transaction.BalanceAfter,
		ReferenceType:   transaction.ReferenceType,
		ReferenceID:     transaction.ReferenceID,
		Description:     transaction.Description,
		CreatedAt:       transaction.CreatedAt,
	}
}
