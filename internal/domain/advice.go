package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// AdviceInput is the flat numeric summary handed to the advice collaborator,
// plus the user's free-text context.
type AdviceInput struct {
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	Debts            decimal.Decimal `json:"debts"`
	SavingRatePct    decimal.Decimal `json:"savingRatePercent"`
	Goals            string          `json:"goalsText"`
	SpendingPatterns string          `json:"spendingPatternsText"`
}

// AdviceProvider is the opaque remote advice generator. It consumes the
// numeric summary and returns formatted HTML; this core neither builds the
// prompt nor parses the text.
type AdviceProvider interface {
	GetAdvice(ctx context.Context, input AdviceInput) (adviceHTML string, err error)
}
