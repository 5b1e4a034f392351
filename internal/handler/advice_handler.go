package handler

import (
	"errors"
	"net/http"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/middleware"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AdviceHandler handles AI advice HTTP requests
type AdviceHandler struct {
	adviceService *service.AdviceService
}

// NewAdviceHandler creates a new AdviceHandler
func NewAdviceHandler(adviceService *service.AdviceService) *AdviceHandler {
	return &AdviceHandler{adviceService: adviceService}
}

// AdviceRequest represents the advice request body
type AdviceRequest struct {
	PersonID         int32  `json:"personId"`
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	Goals            string `json:"goals"`
	SpendingPatterns string `json:"spendingPatterns"`
}

// AdviceResponse represents the advice response
type AdviceResponse struct {
	AdviceHTML string `json:"adviceHtml"`
}

// GetAdvice handles POST /api/v1/advice
func (h *AdviceHandler) GetAdvice(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req AdviceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	advice, err := h.adviceService.GetAdvice(c.Request().Context(), workspaceID, service.AdviceRequest{
		PersonID:         req.PersonID,
		Year:             req.Year,
		Month:            req.Month,
		Goals:            req.Goals,
		SpendingPatterns: req.SpendingPatterns,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, "Month must be between 1 and 12", nil)
		case errors.Is(err, domain.ErrPersonNotFound):
			return NewNotFoundError(c, "Person not found")
		default:
			log.Error().Err(err).Msg("Failed to generate advice")
			return NewUpstreamError(c, "Advice service unavailable")
		}
	}

	return c.JSON(http.StatusOK, AdviceResponse{AdviceHTML: advice})
}
