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

// ExpenseHandler handles person and expense item HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// PersonRequest represents the create/rename person request body
type PersonRequest struct {
	Name string `json:"name"`
}

// ItemRequest represents the create/update expense item request body
type ItemRequest struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Bucket   string  `json:"bucket"`
	Label    string  `json:"label"`
	Amount   string  `json:"amount"`
	Category *string `json:"category,omitempty"`
}

// MoveItemRequest represents the move item request body
type MoveItemRequest struct {
	Bucket string `json:"bucket"`
}

// CreatePerson handles POST /api/v1/persons
func (h *ExpenseHandler) CreatePerson(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req PersonRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	person, err := h.expenseService.CreatePerson(workspaceID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNameRequired), errors.Is(err, domain.ErrNameTooLong):
			return NewValidationError(c, err.Error(), []ValidationError{
				{Field: "name", Message: err.Error()},
			})
		default:
			log.Error().Err(err).Msg("Failed to create person")
			return NewInternalError(c, "Failed to create person")
		}
	}

	return c.JSON(http.StatusCreated, person)
}

// GetPersons handles GET /api/v1/persons
func (h *ExpenseHandler) GetPersons(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	persons, err := h.expenseService.GetPersons(workspaceID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list persons")
		return NewInternalError(c, "Failed to list persons")
	}
	if persons == nil {
		persons = []*domain.Person{}
	}

	return c.JSON(http.StatusOK, persons)
}

// RenamePerson handles PUT /api/v1/persons/:id
func (h *ExpenseHandler) RenamePerson(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	personID, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid person ID", nil)
	}

	var req PersonRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	person, err := h.expenseService.RenamePerson(workspaceID, personID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPersonNotFound):
			return NewNotFoundError(c, "Person not found")
		case errors.Is(err, domain.ErrNameRequired), errors.Is(err, domain.ErrNameTooLong):
			return NewValidationError(c, err.Error(), nil)
		default:
			log.Error().Err(err).Msg("Failed to rename person")
			return NewInternalError(c, "Failed to rename person")
		}
	}

	return c.JSON(http.StatusOK, person)
}

// DeletePerson handles DELETE /api/v1/persons/:id
func (h *ExpenseHandler) DeletePerson(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	personID, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid person ID", nil)
	}

	if err := h.expenseService.DeletePerson(workspaceID, personID); err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			return NewNotFoundError(c, "Person not found")
		}
		log.Error().Err(err).Msg("Failed to delete person")
		return NewInternalError(c, "Failed to delete person")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetMonth handles GET /api/v1/persons/:id/months/:year/:month
func (h *ExpenseHandler) GetMonth(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	personID, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid person ID", nil)
	}
	year, month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	record, err := h.expenseService.GetMonth(workspaceID, personID, year, month)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPersonNotFound):
			return NewNotFoundError(c, "Person not found")
		case errors.Is(err, domain.ErrMonthInvalid):
			return NewValidationError(c, "Month must be between 1 and 12", nil)
		default:
			log.Error().Err(err).Msg("Failed to get month")
			return NewInternalError(c, "Failed to get month")
		}
	}

	return c.JSON(http.StatusOK, record)
}

// AddItem handles POST /api/v1/persons/:id/items
func (h *ExpenseHandler) AddItem(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	personID, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid person ID", nil)
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	item, err := h.expenseService.AddItem(workspaceID, personID, service.AddItemInput{
		Year:     req.Year,
		Month:    req.Month,
		Bucket:   domain.Bucket(req.Bucket),
		Label:    req.Label,
		Amount:   amount,
		Category: req.Category,
	})
	if err != nil {
		return h.itemError(c, err, "Failed to add item")
	}

	return c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /api/v1/persons/:id/items/:itemId
func (h *ExpenseHandler) UpdateItem(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	personID, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid person ID", nil)
	}
	itemID, err := parseInt32Param(c, "itemId")
	if err != nil {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	item, err := h.expenseService.UpdateItem(workspaceID, personID, itemID, req.Label, amount, req.Category)
	if err != nil {
		return h.itemError(c, err, "Failed to update item")
	}

	return c.JSON(http.StatusOK, item)
}

// MoveItem handles PATCH /api/v1/persons/:id/items/:itemId/move
func (h *ExpenseHandler) MoveItem(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	personID, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid person ID", nil)
	}
	itemID, err := parseInt32Param(c, "itemId")
	if err != nil {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	var req MoveItemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	item, err := h.expenseService.MoveItem(workspaceID, personID, itemID, domain.Bucket(req.Bucket))
	if err != nil {
		return h.itemError(c, err, "Failed to move item")
	}

	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /api/v1/persons/:id/items/:itemId
func (h *ExpenseHandler) DeleteItem(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	personID, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid person ID", nil)
	}
	itemID, err := parseInt32Param(c, "itemId")
	if err != nil {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	if err := h.expenseService.DeleteItem(workspaceID, personID, itemID); err != nil {
		return h.itemError(c, err, "Failed to delete item")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ExpenseHandler) itemError(c echo.Context, err error, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrPersonNotFound):
		return NewNotFoundError(c, "Person not found")
	case errors.Is(err, domain.ErrExpenseItemNotFound):
		return NewNotFoundError(c, "Item not found")
	case errors.Is(err, domain.ErrExpenseLabelEmpty),
		errors.Is(err, domain.ErrExpenseAmountInvalid),
		errors.Is(err, domain.ErrBucketInvalid),
		errors.Is(err, domain.ErrMonthInvalid),
		errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, err.Error(), nil)
	default:
		log.Error().Err(err).Msg(logMsg)
		return NewInternalError(c, logMsg)
	}
}

func parseInt32Param(c echo.Context, name string) (int32, error) {
	value, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(value), nil
}

func parseYearMonth(c echo.Context) (year, month int, err error) {
	year, err = strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, 0, err
	}
	month, err = strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}
