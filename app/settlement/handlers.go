package settlement

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matchday/oddsbook/app/api"
	"github.com/matchday/oddsbook/models"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service Service
}

// NewHandler creates a new settlement handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// SettleMatch records a final score and settles every bet on the match
func (h *Handler) SettleMatch(c *gin.Context) {
	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.ValidationErrorResponse(c, "Invalid match ID")
		return
	}

	var req RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	report, err := h.service.SettleMatch(c.Request.Context(), matchID, &req)
	if err != nil {
		h.settlementErrorResponse(c, err, "Failed to settle match")
		return
	}

	api.SuccessResponse(c, 200, "Match settled", report)
}

// VoidMatch abandons a match and voids or refunds its pending bets
func (h *Handler) VoidMatch(c *gin.Context) {
	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.ValidationErrorResponse(c, "Invalid match ID")
		return
	}

	report, err := h.service.VoidMatch(c.Request.Context(), matchID)
	if err != nil {
		h.settlementErrorResponse(c, err, "Failed to void match")
		return
	}

	api.SuccessResponse(c, 200, "Match voided", report)
}

func (h *Handler) settlementErrorResponse(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "Match")
	case errors.Is(err, models.ErrMatchVoided),
		errors.Is(err, models.ErrMatchAlreadyFinal):
		api.ConflictResponse(c, err.Error())
	case errors.Is(err, models.ErrInvalidMatchScores):
		api.ValidationErrorResponse(c, err.Error())
	default:
		api.InternalErrorResponse(c, fallback)
	}
}
