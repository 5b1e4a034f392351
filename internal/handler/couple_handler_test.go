package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/service"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("Invalid test decimal %q: %v", s, err)
	}
	return d
}

func newCoupleHandler() (*CoupleHandler, *service.CoupleService) {
	coupleRepo := testutil.NewMockCoupleRepository()
	publisher := testutil.NewMockEventPublisher()
	coupleService := service.NewCoupleService(coupleRepo, publisher)
	return NewCoupleHandler(coupleService), coupleService
}

func coupleContext(e *echo.Echo, method, target, body string, year, month string, extraParams ...string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	names := []string{"year", "month"}
	values := []string{year, month}
	for i := 0; i+1 < len(extraParams); i += 2 {
		names = append(names, extraParams[i])
		values = append(values, extraParams[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	setupAuthContextWithWorkspace(c, "auth0|test", "test@example.com", "Test User", 1)
	return c, rec
}

func TestCoupleGetMonth_DefaultRecord(t *testing.T) {
	e := echo.New()
	handler, _ := newCoupleHandler()

	c, rec := coupleContext(e, http.MethodGet, "/api/v1/couple/2025/3", "", "2025", "3")

	if err := handler.GetMonth(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response CoupleMonthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Record.LabelA != "Partner A" || response.Record.LabelB != "Partner B" {
		t.Errorf("Expected default labels, got %q/%q", response.Record.LabelA, response.Record.LabelB)
	}
	if response.Summary.TotalIncome.StringFixed(2) != "0.00" {
		t.Errorf("Expected zero total income, got %s", response.Summary.TotalIncome.StringFixed(2))
	}
}

func TestCoupleGetMonth_InvalidMonth(t *testing.T) {
	e := echo.New()
	handler, _ := newCoupleHandler()

	c, rec := coupleContext(e, http.MethodGet, "/api/v1/couple/2025/13", "", "2025", "13")

	if err := handler.GetMonth(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCoupleSaveMonth_ComputesSummary(t *testing.T) {
	e := echo.New()
	handler, _ := newCoupleHandler()

	body := `{"labelA": "Ana", "labelB": "Bruno", "incomeA": "6000.00", "incomeB": "4000.00", "savingsA": "900.00", "savingsB": "400.00"}`
	c, rec := coupleContext(e, http.MethodPut, "/api/v1/couple/2025/3", body, "2025", "3")

	if err := handler.SaveMonth(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response CoupleMonthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Record.LabelA != "Ana" {
		t.Errorf("Expected label 'Ana', got %s", response.Record.LabelA)
	}
	if response.Summary.TotalIncome.StringFixed(2) != "10000.00" {
		t.Errorf("Expected total income 10000.00, got %s", response.Summary.TotalIncome.StringFixed(2))
	}
	if response.Summary.JointSavings.StringFixed(2) != "1300.00" {
		t.Errorf("Expected joint savings 1300.00, got %s", response.Summary.JointSavings.StringFixed(2))
	}
}

func TestCoupleSaveMonth_BlankLabelsFallBack(t *testing.T) {
	e := echo.New()
	handler, _ := newCoupleHandler()

	body := `{"incomeA": "6000.00", "incomeB": "4000.00"}`
	c, rec := coupleContext(e, http.MethodPut, "/api/v1/couple/2025/3", body, "2025", "3")

	if err := handler.SaveMonth(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response CoupleMonthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Record.LabelA != "Partner A" || response.Record.LabelB != "Partner B" {
		t.Errorf("Expected default labels, got %q/%q", response.Record.LabelA, response.Record.LabelB)
	}
}

func TestCoupleAddAccount_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newCoupleHandler()

	body := `{"label": "Rent", "amount": "2000.00"}`
	c, rec := coupleContext(e, http.MethodPost, "/api/v1/couple/2025/3/accounts", body, "2025", "3")

	if err := handler.AddAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var account domain.SharedAccount
	if err := json.Unmarshal(rec.Body.Bytes(), &account); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if account.Label != "Rent" {
		t.Errorf("Expected label 'Rent', got %s", account.Label)
	}
}

func TestCoupleAddAccount_EmptyLabel(t *testing.T) {
	e := echo.New()
	handler, _ := newCoupleHandler()

	body := `{"label": "", "amount": "2000.00"}`
	c, rec := coupleContext(e, http.MethodPost, "/api/v1/couple/2025/3/accounts", body, "2025", "3")

	if err := handler.AddAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCoupleUpdateAccount_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newCoupleHandler()

	body := `{"label": "Rent", "amount": "2100.00"}`
	c, rec := coupleContext(e, http.MethodPut, "/api/v1/couple/2025/3/accounts/99", body, "2025", "3", "accountId", "99")

	if err := handler.UpdateAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestCoupleDeleteAccount_Success(t *testing.T) {
	e := echo.New()
	handler, coupleService := newCoupleHandler()

	account, err := coupleService.AddAccount(1, 2025, 3, "Utilities", decimalFromString(t, "300.00"))
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	c, rec := coupleContext(e, http.MethodDelete, "/api/v1/couple/2025/3/accounts/1", "", "2025", "3", "accountId", "1")

	if err := handler.DeleteAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}

	record, err := coupleService.GetMonth(1, 2025, 3)
	if err != nil {
		t.Fatalf("GetMonth failed: %v", err)
	}
	for _, a := range record.Accounts {
		if a.ID == account.ID {
			t.Error("Expected account to be deleted")
		}
	}
}
