package service

import (
	"errors"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/util"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CashFlowService rolls raw month records up into period summaries and
// estimates the month's debt service from payment marks.
type CashFlowService struct {
	expenseRepo   domain.ExpenseRepository
	financingRepo domain.FinancingRepository
	loanRepo      domain.LoanRepository
}

// NewCashFlowService creates a new CashFlowService
func NewCashFlowService(expenseRepo domain.ExpenseRepository, financingRepo domain.FinancingRepository, loanRepo domain.LoanRepository) *CashFlowService {
	return &CashFlowService{
		expenseRepo:   expenseRepo,
		financingRepo: financingRepo,
		loanRepo:      loanRepo,
	}
}

// AggregateMonth derives the totals of one month record. A nil record is an
// empty month, not an error.
func AggregateMonth(record *domain.MonthRecord) domain.MonthTotals {
	if record == nil {
		record = &domain.MonthRecord{}
	}

	income := sumItems(record.Income)
	essential := sumItems(record.Essential)
	nonEssential := sumItems(record.NonEssential)
	totalExpense := essential.Add(nonEssential)

	return domain.MonthTotals{
		Income:       income,
		Essential:    essential,
		NonEssential: nonEssential,
		TotalExpense: totalExpense,
		Balance:      income.Sub(totalExpense),
	}
}

func sumItems(items []domain.ExpenseItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// PercentChange returns the relative change from previous to current, in
// percent. A previous of zero cannot divide: going from zero to positive
// reads as +100%, staying at or below zero reads as 0%.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsZero() {
		return current.Sub(previous).Div(previous.Abs()).Mul(hundred)
	}
	if current.GreaterThan(decimal.Zero) {
		return hundred
	}
	return decimal.Zero
}

// CategoryBreakdown groups the month's expense items (essential and
// non-essential) by category. Items without a category fall into "Other".
// Group order is insertion order of first occurrence.
func CategoryBreakdown(record *domain.MonthRecord) []domain.CategoryTotal {
	if record == nil {
		return nil
	}

	var groups []domain.CategoryTotal
	index := make(map[string]int)

	add := func(items []domain.ExpenseItem) {
		for _, item := range items {
			category := domain.DefaultCategory
			if item.Category != nil && *item.Category != "" {
				category = *item.Category
			}
			if i, ok := index[category]; ok {
				groups[i].Total = groups[i].Total.Add(item.Amount)
				continue
			}
			index[category] = len(groups)
			groups = append(groups, domain.CategoryTotal{Category: category, Total: item.Amount})
		}
	}
	add(record.Essential)
	add(record.NonEssential)

	return groups
}

// MonthTotals aggregates a single (person, year, month) cell.
func (s *CashFlowService) MonthTotals(personID int32, year, month int) (domain.MonthTotals, error) {
	record, err := s.expenseRepo.GetMonth(personID, year, month)
	if err != nil {
		return domain.MonthTotals{}, err
	}
	return AggregateMonth(record), nil
}

// AggregateYear returns one summary per calendar month of the given year.
// Missing months aggregate as zero records. The first month compares against
// December of the previous year.
func (s *CashFlowService) AggregateYear(personID int32, year int) ([]domain.MonthSummary, error) {
	months, err := s.expenseRepo.GetYear(personID, year)
	if err != nil {
		return nil, err
	}

	prevYear, prevMonth := util.PreviousMonth(year, 1)
	prevRecord, err := s.expenseRepo.GetMonth(personID, prevYear, prevMonth)
	if err != nil {
		return nil, err
	}
	previous := AggregateMonth(prevRecord)

	summaries := make([]domain.MonthSummary, 0, 12)
	for month := 1; month <= 12; month++ {
		totals := AggregateMonth(months[month])
		summaries = append(summaries, domain.MonthSummary{
			Year:             year,
			Month:            month,
			MonthTotals:      totals,
			IncomeChangePct:  PercentChange(totals.Income, previous.Income),
			ExpenseChangePct: PercentChange(totals.TotalExpense, previous.TotalExpense),
		})
		previous = totals
	}

	return summaries, nil
}

// EstimateDebtService sums the debt payments attributed to a calendar month:
// the financing installment for every installment marked paid in that month,
// plus each loan payment whose paid date falls in that month. The financing
// amount is the level installment, not the exact row for the marked
// installment number; this is a documented approximation.
func (s *CashFlowService) EstimateDebtService(workspaceID int32, year, month int) (decimal.Decimal, error) {
	total := decimal.Zero

	plan, err := s.financingRepo.GetPlan(workspaceID)
	if err != nil && !errors.Is(err, domain.ErrFinancingPlanNotFound) {
		return decimal.Zero, err
	}
	if plan != nil {
		if result := domain.ComputeSchedule(plan.Config); result != nil {
			marks, err := s.financingRepo.GetMarks(workspaceID)
			if err != nil {
				return decimal.Zero, err
			}
			installment := decimal.NewFromFloat(result.FirstInstallment).Round(2)
			for _, mark := range marks {
				if mark.PaidAt.Year() == year && int(mark.PaidAt.Month()) == month {
					total = total.Add(installment)
				}
			}
		}
	}

	loans, err := s.loanRepo.GetAllByWorkspace(workspaceID)
	if err != nil {
		return decimal.Zero, err
	}
	for _, loan := range loans {
		for _, payment := range loan.Payments {
			if payment.Paid && payment.PaidAt != nil &&
				payment.PaidAt.Year() == year && int(payment.PaidAt.Month()) == month {
				total = total.Add(payment.Amount)
			}
		}
	}

	return total, nil
}
