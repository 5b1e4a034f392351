package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() domain.AdviceInput {
	return domain.AdviceInput{
		Income:        decimal.NewFromInt(5000),
		Expenses:      decimal.NewFromInt(3000),
		Debts:         decimal.NewFromInt(11000),
		SavingRatePct: decimal.NewFromInt(40),
		Goals:         "buy a house",
	}
}

func TestClient_GetAdvice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "5000.00")
		assert.Contains(t, req.Prompt, "buy a house")

		json.NewEncoder(w).Encode(generateResponse{Response: "<p>Pay off the car loan first.</p>"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "llama3")

	advice, err := client.GetAdvice(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "<p>Pay off the car loan first.</p>", advice)
}

func TestClient_GetAdvice_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "llama3")

	_, err := client.GetAdvice(context.Background(), sampleInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_GetAdvice_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "llama3")

	_, err := client.GetAdvice(context.Background(), sampleInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestBuildPrompt_OmitsEmptyFreeText(t *testing.T) {
	input := sampleInput()
	input.Goals = ""
	input.SpendingPatterns = ""

	prompt := buildPrompt(input)
	assert.False(t, strings.Contains(prompt, "Goals:"))
	assert.False(t, strings.Contains(prompt, "Spending patterns:"))
}
