package wallet

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matchday/oddsbook/app/api"
	"github.com/matchday/oddsbook/models"
)

// Handler handles HTTP requests for wallet operations
type Handler struct {
	service Service
}

// NewHandler creates a new wallet handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMyWallet returns the caller's wallet, creating it on first touch
func (h *Handler) GetMyWallet(c *gin.Context) {
	userID := api.UserIDFromContext(c)
	if userID == uuid.Nil {
		api.UnauthorizedResponse(c)
		return
	}

	wallet, err := h.service.GetOrCreateWallet(c.Request.Context(), userID)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to fetch wallet")
		return
	}

	api.SuccessResponse(c, 200, "Wallet retrieved", wallet)
}

// Deposit credits points onto the caller's wallet
func (h *Handler) Deposit(c *gin.Context) {
	userID := api.UserIDFromContext(c)
	if userID == uuid.Nil {
		api.UnauthorizedResponse(c)
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	result, err := h.service.Deposit(c.Request.Context(), userID, &req)
	if err != nil {
		h.walletErrorResponse(c, err, "Failed to deposit")
		return
	}

	api.SuccessResponse(c, 200, "Deposit complete", result)
}

// Withdraw debits points from the caller's wallet
func (h *Handler) Withdraw(c *gin.Context) {
	userID := api.UserIDFromContext(c)
	if userID == uuid.Nil {
		api.UnauthorizedResponse(c)
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	result, err := h.service.Withdraw(c.Request.Context(), userID, &req)
	if err != nil {
		h.walletErrorResponse(c, err, "Failed to withdraw")
		return
	}

	api.SuccessResponse(c, 200, "Withdrawal complete", result)
}

// GetMyTransactions returns the caller's ledger history, newest first
func (h *Handler) GetMyTransactions(c *gin.Context) {
	userID := api.UserIDFromContext(c)
	if userID == uuid.Nil {
		api.UnauthorizedResponse(c)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.service.GetTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Wallet")
			return
		}
		api.InternalErrorResponse(c, "Failed to fetch transactions")
		return
	}

	api.SuccessResponse(c, 200, "Transactions retrieved", result)
}

func (h *Handler) walletErrorResponse(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "Wallet")
	case errors.Is(err, models.ErrInsufficientBalance),
		errors.Is(err, models.ErrInvalidTransactionAmount):
		api.ErrorResponse(c, 400, "WALLET_OPERATION_REJECTED", err.Error(), nil)
	default:
		api.InternalErrorResponse(c, fallback)
	}
}
