package service

import "github.com/shopspring/decimal"

var halfShare = decimal.NewFromFloat(0.5)

// SplitResult is a shared cost allocated between two parties in proportion
// to their incomes.
type SplitResult struct {
	AmountA decimal.Decimal `json:"amountA"`
	AmountB decimal.Decimal `json:"amountB"`
	ShareA  decimal.Decimal `json:"shareA"` // fraction of total income, not percent
	ShareB  decimal.Decimal `json:"shareB"`
}

// Split allocates a shared amount proportionally to the two incomes.
// With no income data the split falls back to an even 50/50, not zero.
func Split(incomeA, incomeB, shared decimal.Decimal) SplitResult {
	total := incomeA.Add(incomeB)

	shareA := halfShare
	shareB := halfShare
	if total.GreaterThan(decimal.Zero) {
		shareA = incomeA.Div(total)
		shareB = incomeB.Div(total)
	}

	return SplitResult{
		AmountA: shared.Mul(shareA),
		AmountB: shared.Mul(shareB),
		ShareA:  shareA,
		ShareB:  shareB,
	}
}
