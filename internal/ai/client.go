package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

const defaultTimeout = 60 * time.Second

// Client calls an Ollama-style completion endpoint to turn the numeric
// summary into formatted advice. The prompt template and the response
// format live here, outside the financial core.
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewClient creates a new advice client for the given endpoint and model
func NewClient(baseURL, model string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// GetAdvice implements domain.AdviceProvider
func (c *Client) GetAdvice(ctx context.Context, input domain.AdviceInput) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: buildPrompt(input),
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("advice endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().
			Int("status", resp.StatusCode).
			Str("model", c.model).
			Msg("Advice endpoint returned non-OK status")
		return "", fmt.Errorf("advice endpoint returned status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.Response, nil
}

func buildPrompt(input domain.AdviceInput) string {
	var b strings.Builder
	b.WriteString("You are a personal finance assistant for a household.\n")
	b.WriteString("Given this month's numbers, give short practical advice as HTML (use <p>, <ul>, <li> and <strong> only):\n\n")
	fmt.Fprintf(&b, "Monthly income: %s\n", input.Income.StringFixed(2))
	fmt.Fprintf(&b, "Monthly expenses: %s\n", input.Expenses.StringFixed(2))
	fmt.Fprintf(&b, "Outstanding debts: %s\n", input.Debts.StringFixed(2))
	fmt.Fprintf(&b, "Saving rate: %s%%\n", input.SavingRatePct.StringFixed(2))
	if input.Goals != "" {
		fmt.Fprintf(&b, "Goals: %s\n", input.Goals)
	}
	if input.SpendingPatterns != "" {
		fmt.Fprintf(&b, "Spending patterns: %s\n", input.SpendingPatterns)
	}
	return b.String()
}
