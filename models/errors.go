package models

import "errors"

var (
	ErrInvalidUserID  = errors.New("invalid user ID")
	ErrInvalidMatchID = errors.New("invalid match ID")
	ErrInvalidBetID   = errors.New("invalid bet ID")

	ErrInvalidMatchScores  = errors.New("match scores must be both set or both empty")
	ErrMatchNotFinal       = errors.New("match result is not final")
	ErrMatchAlreadyStarted = errors.New("match has already started")
	ErrMatchVoided         = errors.New("match has been voided")
	ErrMatchAlreadyFinal   = errors.New("match already has a final result")

	ErrInvalidMarket       = errors.New("unknown bet market")
	ErrInvalidOutcome      = errors.New("outcome not offered for this market")
	ErrInvalidPrice        = errors.New("invalid odds price")
	ErrStaleOdds           = errors.New("odds have changed since quote")
	ErrOddsNotFound        = errors.New("no odds available for this match")
	ErrInvalidOddsFormat   = errors.New("unsupported odds display format")
	ErrNegativeMarginOdds  = errors.New("odds imply a negative bookmaker margin")
	ErrInvalidMarginConfig = errors.New("bookmaker margin must be greater than zero")

	ErrInvalidBetStructure = errors.New("invalid bet structure")
	ErrInvalidSystemSpec   = errors.New("invalid system bet specification")
	ErrDuplicateLegMatch   = errors.New("duplicate match across bet legs")
	ErrInvalidStake        = errors.New("invalid stake amount")
	ErrStakeTooSmall       = errors.New("stake below minimum")
	ErrStakeTooLarge       = errors.New("stake exceeds maximum")
	ErrPayoutLimitExceeded = errors.New("potential payout exceeds maximum")
	ErrTooManyLegs         = errors.New("too many bet legs")

	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBetAlreadySettled   = errors.New("bet is already settled")
	ErrLegAlreadySettled   = errors.New("bet leg is already settled")

	ErrInvalidWalletBalance     = errors.New("invalid wallet balance")
	ErrNegativeBalance          = errors.New("balance cannot be negative")
	ErrInvalidCurrencyCode      = errors.New("invalid currency code")
	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	ErrInvalidStakeLimits              = errors.New("invalid stake limits")
	ErrInvalidOddsLimits               = errors.New("invalid odds limits")
	ErrInvalidLookbackWindow           = errors.New("invalid lookback window")
	ErrInvalidGoalCap                  = errors.New("invalid goal cap")
	ErrInvalidHomeAdvantage            = errors.New("invalid home advantage multiplier")
	ErrInvalidFallbackRate             = errors.New("invalid fallback scoring rate")
	ErrInvalidSettlementBatch          = errors.New("invalid settlement batch size")
	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")

	ErrRecordNotFound = errors.New("record not found")
	ErrForbidden      = errors.New("forbidden")
)
