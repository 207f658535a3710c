package betting

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/matchday/oddsbook/app/api"
	"github.com/matchday/oddsbook/models"
)

// Handler handles HTTP requests for betting operations
type Handler struct {
	service   Service
	validator *validator.Validate
}

// NewHandler creates a new betting handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// PlaceBet places a single, accumulator or system bet
func (h *Handler) PlaceBet(c *gin.Context) {
	userID := api.UserIDFromContext(c)
	if userID == uuid.Nil {
		api.UnauthorizedResponse(c)
		return
	}

	var req PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	bet, err := h.service.PlaceBet(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Match or odds")
			return
		}
		if errors.Is(err, models.ErrStaleOdds) {
			api.ConflictResponse(c, err.Error())
			return
		}
		if h.isPlacementError(err) {
			api.ErrorResponse(c, 400, "BET_REJECTED", err.Error(), nil)
			return
		}
		api.InternalErrorResponse(c, "Failed to place bet")
		return
	}

	api.CreatedResponse(c, "Bet placed successfully", bet)
}

// GetMyBets returns the caller's bets with optional filters
func (h *Handler) GetMyBets(c *gin.Context) {
	userID := api.UserIDFromContext(c)
	if userID == uuid.Nil {
		api.UnauthorizedResponse(c)
		return
	}

	var filters BetFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	result, err := h.service.GetUserBets(c.Request.Context(), userID, &filters)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to fetch bets")
		return
	}

	meta := api.PaginationMeta{
		Page:       result.Page,
		PerPage:    result.PerPage,
		Total:      result.Total,
		TotalPages: int((result.Total + int64(result.PerPage) - 1) / int64(result.PerPage)),
		HasNext:    int64(result.Page*result.PerPage) < result.Total,
		HasPrev:    result.Page > 1,
	}

	api.SuccessResponseWithMeta(c, 200, "Bets retrieved successfully", result.Bets, meta)
}

// GetBetByID returns one of the caller's bets
func (h *Handler) GetBetByID(c *gin.Context) {
	userID := api.UserIDFromContext(c)
	if userID == uuid.Nil {
		api.UnauthorizedResponse(c)
		return
	}

	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.ValidationErrorResponse(c, "Invalid bet ID format")
		return
	}

	bet, err := h.service.GetBetByID(c.Request.Context(), userID, betID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Bet")
			return
		}
		if errors.Is(err, models.ErrForbidden) {
			api.ForbiddenResponse(c, "Access denied to this bet")
			return
		}
		api.InternalErrorResponse(c, "Failed to fetch bet")
		return
	}

	api.SuccessResponse(c, 200, "Bet retrieved successfully", bet)
}

// GetMyStats returns the caller's aggregate betting record
func (h *Handler) GetMyStats(c *gin.Context) {
	userID := api.UserIDFromContext(c)
	if userID == uuid.Nil {
		api.UnauthorizedResponse(c)
		return
	}

	stats, err := h.service.GetUserBetStats(c.Request.Context(), userID)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to fetch betting statistics")
		return
	}

	api.SuccessResponse(c, 200, "Betting statistics retrieved successfully", stats)
}

// GetMyBetsForMatch returns the caller's bets that have a leg on one match
func (h *Handler) GetMyBetsForMatch(c *gin.Context) {
	userID := api.UserIDFromContext(c)
	if userID == uuid.Nil {
		api.UnauthorizedResponse(c)
		return
	}

	matchID, err := uuid.Parse(c.Param("match_id"))
	if err != nil {
		api.ValidationErrorResponse(c, "Invalid match ID format")
		return
	}

	bets, err := h.service.GetBetsForMatch(c.Request.Context(), userID, matchID)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to fetch bets for match")
		return
	}

	api.ListResponse(c, "Bets retrieved successfully", bets, len(bets))
}

func (h *Handler) isPlacementError(err error) bool {
	return errors.Is(err, models.ErrInvalidBetStructure) ||
		errors.Is(err, models.ErrInvalidSystemSpec) ||
		errors.Is(err, models.ErrDuplicateLegMatch) ||
		errors.Is(err, models.ErrInvalidMarket) ||
		errors.Is(err, models.ErrInvalidOutcome) ||
		errors.Is(err, models.ErrOddsNotFound) ||
		errors.Is(err, models.ErrStakeTooSmall) ||
		errors.Is(err, models.ErrStakeTooLarge) ||
		errors.Is(err, models.ErrPayoutLimitExceeded) ||
		errors.Is(err, models.ErrTooManyLegs) ||
		errors.Is(err, models.ErrMatchAlreadyStarted) ||
		errors.Is(err, models.ErrMatchVoided) ||
		errors.Is(err, models.ErrInsufficientBalance)
}
