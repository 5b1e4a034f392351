package domain

import "github.com/shopspring/decimal"

// MonthTotals are the derived sums over one month's items.
type MonthTotals struct {
	Income       decimal.Decimal `json:"income"`
	Essential    decimal.Decimal `json:"essential"`
	NonEssential decimal.Decimal `json:"nonEssential"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}

// MonthSummary is one row of the annual cash-flow view: the month's totals
// plus the change against the previous calendar month.
type MonthSummary struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12
	MonthTotals
	IncomeChangePct  decimal.Decimal `json:"incomeChangePct"`
	ExpenseChangePct decimal.Decimal `json:"expenseChangePct"`
}

// CategoryTotal is one slice of the category breakdown. Order of slices is
// insertion order of first occurrence, not sorted.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}
