package betting

import (
	"time"

	"github.com/google/uuid"
	"github.com/matchday/oddsbook/models"
	"github.com/shopspring/decimal"
)

// LegRequest is one selection of a bet as quoted to the user
// @Description A market pick with the price the user saw
type LegRequest struct {
	MatchID     uuid.UUID       `json:"match_id" validate:"required"`
	Market      string          `json:"market" validate:"required"`
	Outcome     string          `json:"outcome" validate:"required"`
	QuotedPrice decimal.Decimal `json:"quoted_price" validate:"required"`
}

// PlaceBetRequest represents the request to place a bet
// @Description Request payload for placing a single, accumulator or system bet
type PlaceBetRequest struct {
	Structure  string          `json:"structure" validate:"required,oneof=single accumulator system"`
	SystemSpec string          `json:"system_spec,omitempty"`
	TotalStake decimal.Decimal `json:"total_stake" validate:"required"`
	Legs       []LegRequest    `json:"legs" validate:"required,min=1,dive"`
}

// BetFilters represents filters for bet queries
// @Description Filters for searching and filtering user bets
type BetFilters struct {
	Status    *models.BetStatus `form:"status"`
	Structure *string           `form:"structure"`
	MatchID   *uuid.UUID        `form:"match_id"`
	DateFrom  *time.Time        `form:"date_from"`
	DateTo    *time.Time        `form:"date_to"`
	SortBy    string            `form:"sort_by"`
	SortOrder string            `form:"sort_order"`
	Page      int               `form:"page"`
	PerPage   int               `form:"per_page"`
}

// LegResponse represents a bet leg in API responses
type LegResponse struct {
	ID               uuid.UUID       `json:"id"`
	MatchID          uuid.UUID       `json:"match_id"`
	Market           string          `json:"market"`
	Outcome          string          `json:"outcome"`
	PriceAtPlacement decimal.Decimal `json:"price_at_placement"`
	Status           string          `json:"status"`
	SettledAt        *time.Time      `json:"settled_at,omitempty"`
}

// BetResponse represents a bet in API responses
// @Description Bet information with its legs and settlement state
type BetResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Structure       string          `json:"structure"`
	SystemSpec      string          `json:"system_spec,omitempty"`
	TotalStake      decimal.Decimal `json:"total_stake"`
	PotentialPayout decimal.Decimal `json:"potential_payout"`
	Payout          decimal.Decimal `json:"payout"`
	Status          string          `json:"status"`
	PlacedAt        time.Time       `json:"placed_at"`
	SettledAt       *time.Time      `json:"settled_at,omitempty"`
	Legs            []LegResponse   `json:"legs"`
}

// BetListResponse represents a paginated bet list
// @Description Paginated list of user bets
type BetListResponse struct {
	Bets    []BetResponse `json:"bets"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

// BetStats summarizes a user's betting record
// @Description Aggregate betting statistics for one user
type BetStats struct {
	TotalBets   int64           `json:"total_bets"`
	PendingBets int64           `json:"pending_bets"`
	WonBets     int64           `json:"won_bets"`
	LostBets    int64           `json:"lost_bets"`
	VoidBets    int64           `json:"void_bets"`
	TotalStaked decimal.Decimal `json:"total_staked"`
	TotalPayout decimal.Decimal `json:"total_payout"`
	NetProfit   decimal.Decimal `json:"net_profit"`
	HitRate     decimal.Decimal `json:"hit_rate"`
}

// ToBetResponse maps a bet model to its API representation
func ToBetResponse(bet *models.Bet) *BetResponse {
	legs := make([]LegResponse, 0, len(bet.Legs))
	for i := range bet.Legs {
		leg := &bet.Legs[i]
		legs = append(legs, LegResponse{
			ID:               leg.ID,
			MatchID:          leg.MatchID,
			Market:           string(leg.Market),
			Outcome:          leg.Outcome,
			PriceAtPlacement: leg.PriceAtPlacement,
			Status:           string(leg.Status),
			SettledAt:        leg.SettledAt,
		})
	}

	return &BetResponse{
		ID:              bet.ID,
		UserID:          bet.UserID,
		Structure:       string(bet.Structure),
		SystemSpec:      bet.SystemSpec,
		TotalStake:      bet.TotalStake,
		PotentialPayout: bet.PotentialPayout,
		Payout:          bet.Payout,
		Status:          string(bet.Status),
		PlacedAt:        bet.CreatedAt,
		SettledAt:       bet.SettledAt,
		Legs:            legs,
	}
}
