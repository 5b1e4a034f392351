package handler

import (
	"errors"
	"net/http"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/middleware"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CoupleHandler handles couple finance HTTP requests
type CoupleHandler struct {
	coupleService *service.CoupleService
}

// NewCoupleHandler creates a new CoupleHandler
func NewCoupleHandler(coupleService *service.CoupleService) *CoupleHandler {
	return &CoupleHandler{coupleService: coupleService}
}

// SaveCoupleMonthRequest represents the save month request body
type SaveCoupleMonthRequest struct {
	LabelA   string `json:"labelA"`
	LabelB   string `json:"labelB"`
	IncomeA  string `json:"incomeA"`
	IncomeB  string `json:"incomeB"`
	SavingsA string `json:"savingsA"`
	SavingsB string `json:"savingsB"`
}

// SharedAccountRequest represents the add/update shared account request body
type SharedAccountRequest struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// CoupleMonthResponse bundles the stored record with its computed summary
type CoupleMonthResponse struct {
	Record  *domain.CoupleMonth   `json:"record"`
	Summary service.CoupleSummary `json:"summary"`
}

// GetMonth handles GET /api/v1/couple/:year/:month
func (h *CoupleHandler) GetMonth(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	record, err := h.coupleService.GetMonth(workspaceID, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Month must be between 1 and 12", nil)
		}
		log.Error().Err(err).Msg("Failed to get couple month")
		return NewInternalError(c, "Failed to get couple month")
	}

	return c.JSON(http.StatusOK, CoupleMonthResponse{
		Record:  record,
		Summary: service.BuildCoupleSummary(record),
	})
}

// SaveMonth handles PUT /api/v1/couple/:year/:month
func (h *CoupleHandler) SaveMonth(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	var req SaveCoupleMonthRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.SaveMonthInput{LabelA: req.LabelA, LabelB: req.LabelB}
	fields := []struct {
		name  string
		raw   string
		value *decimal.Decimal
	}{
		{"incomeA", req.IncomeA, &input.IncomeA},
		{"incomeB", req.IncomeB, &input.IncomeB},
		{"savingsA", req.SavingsA, &input.SavingsA},
		{"savingsB", req.SavingsB, &input.SavingsB},
	}
	for _, field := range fields {
		if field.raw == "" {
			continue
		}
		parsed, err := decimal.NewFromString(field.raw)
		if err != nil {
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: field.name, Message: "Must be a valid decimal number"},
			})
		}
		*field.value = parsed
	}

	record, err := h.coupleService.SaveMonth(workspaceID, year, month, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Month must be between 1 and 12", nil)
		}
		log.Error().Err(err).Msg("Failed to save couple month")
		return NewInternalError(c, "Failed to save couple month")
	}

	return c.JSON(http.StatusOK, CoupleMonthResponse{
		Record:  record,
		Summary: service.BuildCoupleSummary(record),
	})
}

// AddAccount handles POST /api/v1/couple/:year/:month/accounts
func (h *CoupleHandler) AddAccount(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	req, amount, errResp := h.bindAccount(c)
	if errResp != nil {
		return errResp
	}

	account, err := h.coupleService.AddAccount(workspaceID, year, month, req.Label, amount)
	if err != nil {
		return h.accountError(c, err, "Failed to add shared account")
	}

	return c.JSON(http.StatusCreated, account)
}

// UpdateAccount handles PUT /api/v1/couple/:year/:month/accounts/:accountId
func (h *CoupleHandler) UpdateAccount(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}
	accountID, err := parseInt32Param(c, "accountId")
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	req, amount, errResp := h.bindAccount(c)
	if errResp != nil {
		return errResp
	}

	account, err := h.coupleService.UpdateAccount(workspaceID, year, month, accountID, req.Label, amount)
	if err != nil {
		return h.accountError(c, err, "Failed to update shared account")
	}

	return c.JSON(http.StatusOK, account)
}

// DeleteAccount handles DELETE /api/v1/couple/:year/:month/accounts/:accountId
func (h *CoupleHandler) DeleteAccount(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}
	accountID, err := parseInt32Param(c, "accountId")
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	if err := h.coupleService.DeleteAccount(workspaceID, year, month, accountID); err != nil {
		return h.accountError(c, err, "Failed to delete shared account")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CoupleHandler) bindAccount(c echo.Context) (*SharedAccountRequest, decimal.Decimal, error) {
	var req SharedAccountRequest
	if err := c.Bind(&req); err != nil {
		return nil, decimal.Zero, NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, decimal.Zero, NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}
	return &req, amount, nil
}

func (h *CoupleHandler) accountError(c echo.Context, err error, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrSharedAccountNotFound):
		return NewNotFoundError(c, "Shared account not found")
	case errors.Is(err, domain.ErrSharedLabelEmpty):
		return NewValidationError(c, "Label is required", nil)
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Month must be between 1 and 12", nil)
	default:
		log.Error().Err(err).Msg(logMsg)
		return NewInternalError(c, logMsg)
	}
}
