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
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan-related HTTP requests
type LoanHandler struct {
	loanService *service.LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateLoanRequest represents the create loan request body
type CreateLoanRequest struct {
	Name             string `json:"name"`
	TotalValue       string `json:"totalValue"`
	InstallmentCount int    `json:"installmentCount"`
}

// TogglePaymentRequest represents the toggle payment request body
type TogglePaymentRequest struct {
	Paid bool `json:"paid"`
}

// LoanResponse represents a loan with its progress in API responses
type LoanResponse struct {
	*domain.Loan
	Progress service.LoanProgress `json:"progress"`
}

// LoanListResponse bundles the loans with the portfolio aggregate
type LoanListResponse struct {
	Loans     []LoanResponse            `json:"loans"`
	Portfolio service.PortfolioProgress `json:"portfolio"`
}

// CreateLoan handles POST /api/v1/loans
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	totalValue, err := decimal.NewFromString(req.TotalValue)
	if err != nil {
		return NewValidationError(c, "Invalid total value", []ValidationError{
			{Field: "totalValue", Message: "Must be a valid decimal number"},
		})
	}

	loan, err := h.loanService.CreateLoan(workspaceID, service.CreateLoanInput{
		Name:             req.Name,
		TotalValue:       totalValue,
		InstallmentCount: req.InstallmentCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNameEmpty),
			errors.Is(err, domain.ErrLoanNameTooLong),
			errors.Is(err, domain.ErrLoanValueInvalid),
			errors.Is(err, domain.ErrLoanInstallmentsInvalid):
			return NewValidationError(c, err.Error(), nil)
		default:
			log.Error().Err(err).Msg("Failed to create loan")
			return NewInternalError(c, "Failed to create loan")
		}
	}

	return c.JSON(http.StatusCreated, LoanResponse{Loan: loan, Progress: service.Progress(loan)})
}

// GetLoans handles GET /api/v1/loans
func (h *LoanHandler) GetLoans(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	loans, err := h.loanService.GetLoans(workspaceID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list loans")
		return NewInternalError(c, "Failed to list loans")
	}

	responses := make([]LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, LoanResponse{Loan: loan, Progress: service.Progress(loan)})
	}

	return c.JSON(http.StatusOK, LoanListResponse{
		Loans:     responses,
		Portfolio: service.Portfolio(loans),
	})
}

// GetLoan handles GET /api/v1/loans/:id
func (h *LoanHandler) GetLoan(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	loanID, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	loan, err := h.loanService.GetLoan(workspaceID, loanID)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		log.Error().Err(err).Msg("Failed to get loan")
		return NewInternalError(c, "Failed to get loan")
	}

	return c.JSON(http.StatusOK, LoanResponse{Loan: loan, Progress: service.Progress(loan)})
}

// TogglePayment handles PATCH /api/v1/loans/:id/payments/:number
func (h *LoanHandler) TogglePayment(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	loanID, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return NewValidationError(c, "Invalid payment number", nil)
	}

	var req TogglePaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	loan, err := h.loanService.TogglePayment(workspaceID, loanID, number, req.Paid)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return NewNotFoundError(c, "Loan not found")
		case errors.Is(err, domain.ErrLoanPaymentNotFound):
			return NewNotFoundError(c, "Payment not found")
		default:
			log.Error().Err(err).Msg("Failed to toggle payment")
			return NewInternalError(c, "Failed to toggle payment")
		}
	}

	return c.JSON(http.StatusOK, LoanResponse{Loan: loan, Progress: service.Progress(loan)})
}

// GetDeleteStats handles GET /api/v1/loans/:id/delete-stats
func (h *LoanHandler) GetDeleteStats(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	loanID, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	stats, err := h.loanService.DeleteStats(workspaceID, loanID)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		log.Error().Err(err).Msg("Failed to get delete stats")
		return NewInternalError(c, "Failed to get delete stats")
	}

	return c.JSON(http.StatusOK, stats)
}

// DeleteLoan handles DELETE /api/v1/loans/:id
func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	loanID, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	if err := h.loanService.DeleteLoan(workspaceID, loanID); err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		log.Error().Err(err).Msg("Failed to delete loan")
		return NewInternalError(c, "Failed to delete loan")
	}

	return c.NoContent(http.StatusNoContent)
}
