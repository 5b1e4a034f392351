package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/middleware"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetYearOverview handles GET /api/v1/dashboard/persons/:personId/years/:year
func (h *DashboardHandler) GetYearOverview(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	personID, err := parseInt32Param(c, "personId")
	if err != nil {
		return NewValidationError(c, "Invalid person ID", nil)
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return NewValidationError(c, "Invalid year", nil)
	}

	rows, err := h.dashboardService.YearOverview(workspaceID, personID, year)
	if err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			return NewNotFoundError(c, "Person not found")
		}
		log.Error().Err(err).Msg("Failed to build year overview")
		return NewInternalError(c, "Failed to build year overview")
	}

	return c.JSON(http.StatusOK, rows)
}

// GetMonthBreakdown handles GET /api/v1/dashboard/persons/:personId/years/:year/months/:month
func (h *DashboardHandler) GetMonthBreakdown(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	personID, err := parseInt32Param(c, "personId")
	if err != nil {
		return NewValidationError(c, "Invalid person ID", nil)
	}
	year, month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	breakdown, err := h.dashboardService.GetMonthBreakdown(workspaceID, personID, year, month)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, "Month must be between 1 and 12", []ValidationError{
				{Field: "month", Message: "Must be between 1 and 12"},
			})
		case errors.Is(err, domain.ErrPersonNotFound):
			return NewNotFoundError(c, "Person not found")
		default:
			log.Error().Err(err).Msg("Failed to build month breakdown")
			return NewInternalError(c, "Failed to build month breakdown")
		}
	}

	return c.JSON(http.StatusOK, breakdown)
}
