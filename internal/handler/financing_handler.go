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

// FinancingHandler handles financing simulation HTTP requests
type FinancingHandler struct {
	financingService *service.FinancingService
}

// NewFinancingHandler creates a new FinancingHandler
func NewFinancingHandler(financingService *service.FinancingService) *FinancingHandler {
	return &FinancingHandler{financingService: financingService}
}

// SavePlanRequest represents the replace-plan request body
type SavePlanRequest struct {
	Price                 float64 `json:"price"`
	DownPaymentPct        float64 `json:"downPaymentPct"`
	InstallmentCount      int     `json:"installmentCount"`
	AnnualRatePct         float64 `json:"annualRatePct"`
	ExtraMonthlyPrincipal float64 `json:"extraMonthlyPrincipal"`
	NameA                 string  `json:"nameA"`
	IncomeA               float64 `json:"incomeA"`
	ExpensesA             float64 `json:"expensesA"`
	NameB                 string  `json:"nameB"`
	IncomeB               float64 `json:"incomeB"`
	ExpensesB             float64 `json:"expensesB"`
}

// ToggleInstallmentRequest represents the toggle request body
type ToggleInstallmentRequest struct {
	Paid bool `json:"paid"`
}

// GetSimulation handles GET /api/v1/financing
func (h *FinancingHandler) GetSimulation(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	view, err := h.financingService.GetSimulation(workspaceID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get simulation")
		return NewInternalError(c, "Failed to get simulation")
	}

	return c.JSON(http.StatusOK, view)
}

// SavePlan handles PUT /api/v1/financing
func (h *FinancingHandler) SavePlan(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req SavePlanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	plan := &domain.FinancingPlan{
		Config: domain.FinancingConfig{
			Price:                 req.Price,
			DownPaymentPct:        req.DownPaymentPct,
			InstallmentCount:      req.InstallmentCount,
			AnnualRatePct:         req.AnnualRatePct,
			ExtraMonthlyPrincipal: req.ExtraMonthlyPrincipal,
		},
		NameA:     req.NameA,
		IncomeA:   req.IncomeA,
		ExpensesA: req.ExpensesA,
		NameB:     req.NameB,
		IncomeB:   req.IncomeB,
		ExpensesB: req.ExpensesB,
	}

	if _, err := h.financingService.SavePlan(workspaceID, plan); err != nil {
		if errors.Is(err, domain.ErrFinancingValueNotFinite) {
			return NewValidationError(c, "Values must be finite numbers", nil)
		}
		log.Error().Err(err).Msg("Failed to save plan")
		return NewInternalError(c, "Failed to save plan")
	}

	// Return the full simulation so the client refreshes in one round trip
	view, err := h.financingService.GetSimulation(workspaceID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get simulation")
		return NewInternalError(c, "Failed to get simulation")
	}

	return c.JSON(http.StatusOK, view)
}

// ToggleInstallment handles PATCH /api/v1/financing/installments/:number
func (h *FinancingHandler) ToggleInstallment(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return NewValidationError(c, "Invalid installment number", nil)
	}

	var req ToggleInstallmentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.financingService.ToggleInstallment(workspaceID, number, req.Paid); err != nil {
		if errors.Is(err, domain.ErrInstallmentNumberInvalid) {
			return NewValidationError(c, "Installment number must be at least 1", nil)
		}
		log.Error().Err(err).Msg("Failed to toggle installment")
		return NewInternalError(c, "Failed to toggle installment")
	}

	return c.NoContent(http.StatusNoContent)
}
