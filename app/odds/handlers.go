package odds

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/matchday/oddsbook/app/api"
	"github.com/matchday/oddsbook/models"
)

// Handler handles HTTP requests for fixtures and odds
type Handler struct {
	service   Service
	validator *validator.Validate
}

// NewHandler creates a new odds handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateMatch registers a new scheduled fixture
func (h *Handler) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	match, err := h.service.CreateMatch(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidMatchID) ||
			errors.Is(err, models.ErrMatchAlreadyStarted) ||
			errors.Is(err, models.ErrInvalidMatchScores) {
			api.ErrorResponse(c, 400, "INVALID_MATCH", err.Error(), nil)
			return
		}
		api.InternalErrorResponse(c, "Failed to create match")
		return
	}

	api.CreatedResponse(c, "Match created successfully", match)
}

// GetMatch returns one fixture
func (h *Handler) GetMatch(c *gin.Context) {
	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.ValidationErrorResponse(c, "Invalid match ID format")
		return
	}

	match, err := h.service.GetMatch(c.Request.Context(), matchID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Match")
			return
		}
		api.InternalErrorResponse(c, "Failed to fetch match")
		return
	}

	api.SuccessResponse(c, 200, "Match retrieved successfully", match)
}

// ListUpcomingMatches returns scheduled fixtures in the lookahead window
func (h *Handler) ListUpcomingMatches(c *gin.Context) {
	matches, err := h.service.ListUpcomingMatches(c.Request.Context())
	if err != nil {
		api.InternalErrorResponse(c, "Failed to fetch matches")
		return
	}

	api.ListResponse(c, "Matches retrieved successfully", matches, len(matches))
}

// ListMatchesWithOdds returns priced fixtures, most recently priced first
func (h *Handler) ListMatchesWithOdds(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		api.ValidationErrorResponse(c, "Invalid limit format")
		return
	}

	matches, err := h.service.ListMatchesWithOdds(c.Request.Context(), limit)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to fetch priced matches")
		return
	}

	api.ListResponse(c, "Matches retrieved successfully", matches, len(matches))
}

// GenerateOdds prices one match and stores the resulting book
func (h *Handler) GenerateOdds(c *gin.Context) {
	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.ValidationErrorResponse(c, "Invalid match ID format")
		return
	}

	set, err := h.service.GenerateOdds(c.Request.Context(), matchID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Match")
			return
		}
		if errors.Is(err, models.ErrMatchVoided) || errors.Is(err, models.ErrMatchAlreadyStarted) {
			api.ErrorResponse(c, 409, "MATCH_NOT_PRICEABLE", err.Error(), nil)
			return
		}
		api.InternalErrorResponse(c, "Failed to generate odds")
		return
	}

	api.SuccessResponse(c, 200, "Odds generated successfully", set)
}

// GenerateUpcomingOdds prices every upcoming fixture
func (h *Handler) GenerateUpcomingOdds(c *gin.Context) {
	result, err := h.service.GenerateUpcomingOdds(c.Request.Context())
	if err != nil {
		api.InternalErrorResponse(c, "Failed to generate odds")
		return
	}

	api.SuccessResponse(c, 200, "Odds generation completed", result)
}

// GetMatchOdds returns the stored book for a match
func (h *Handler) GetMatchOdds(c *gin.Context) {
	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.ValidationErrorResponse(c, "Invalid match ID format")
		return
	}

	set, err := h.service.GetMatchOdds(c.Request.Context(), matchID)
	if err != nil {
		if errors.Is(err, models.ErrOddsNotFound) {
			api.NotFoundResponse(c, "Odds")
			return
		}
		api.InternalErrorResponse(c, "Failed to fetch odds")
		return
	}

	if format := c.DefaultQuery("format", FormatDecimal); format != FormatDecimal {
		display, err := FormatOddsSet(set, format)
		if err != nil {
			api.ValidationErrorResponse(c, err.Error())
			return
		}
		api.SuccessResponse(c, 200, "Odds retrieved successfully", display)
		return
	}

	api.SuccessResponse(c, 200, "Odds retrieved successfully", set)
}

// GetTeamForm returns a team's recent scoring summary
func (h *Handler) GetTeamForm(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("team_id"))
	if err != nil {
		api.ValidationErrorResponse(c, "Invalid team ID format")
		return
	}

	form, err := h.service.GetTeamForm(c.Request.Context(), teamID)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to compute team form")
		return
	}

	api.SuccessResponse(c, 200, "Team form retrieved successfully", form)
}
