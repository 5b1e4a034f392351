package service

import (
	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/util"
	"github.com/shopspring/decimal"
)

// DashboardService assembles the annual overview and the month breakdown
type DashboardService struct {
	personRepo  domain.PersonRepository
	expenseRepo domain.ExpenseRepository
	cashFlow    *CashFlowService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(personRepo domain.PersonRepository, expenseRepo domain.ExpenseRepository, cashFlow *CashFlowService) *DashboardService {
	return &DashboardService{
		personRepo:  personRepo,
		expenseRepo: expenseRepo,
		cashFlow:    cashFlow,
	}
}

// OverviewRow is one month of the annual cash-flow table, the month summary
// plus the estimated debt service attributed to that month.
type OverviewRow struct {
	domain.MonthSummary
	DebtService decimal.Decimal `json:"debtService"`
}

// YearOverview returns one row per calendar month of the year for the given
// person. The person must belong to the workspace.
func (s *DashboardService) YearOverview(workspaceID, personID int32, year int) ([]OverviewRow, error) {
	if _, err := s.personRepo.GetByID(workspaceID, personID); err != nil {
		return nil, err
	}

	summaries, err := s.cashFlow.AggregateYear(personID, year)
	if err != nil {
		return nil, err
	}

	rows := make([]OverviewRow, 0, len(summaries))
	for _, summary := range summaries {
		debtService, err := s.cashFlow.EstimateDebtService(workspaceID, year, summary.Month)
		if err != nil {
			return nil, err
		}
		rows = append(rows, OverviewRow{MonthSummary: summary, DebtService: debtService})
	}

	return rows, nil
}

// MonthBreakdown is the single-month drill-down: totals plus the category
// grouping for the donut chart.
type MonthBreakdown struct {
	Year       int                    `json:"year"`
	Month      int                    `json:"month"`
	Totals     domain.MonthTotals     `json:"totals"`
	Categories []domain.CategoryTotal `json:"categories"`
}

// GetMonthBreakdown aggregates one (person, year, month) cell with its
// category breakdown. The person must belong to the workspace.
func (s *DashboardService) GetMonthBreakdown(workspaceID, personID int32, year, month int) (*MonthBreakdown, error) {
	if !util.IsValidMonth(month) {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.personRepo.GetByID(workspaceID, personID); err != nil {
		return nil, err
	}

	record, err := s.expenseRepo.GetMonth(personID, year, month)
	if err != nil {
		return nil, err
	}

	categories := CategoryBreakdown(record)
	if categories == nil {
		categories = []domain.CategoryTotal{}
	}

	return &MonthBreakdown{
		Year:       year,
		Month:      month,
		Totals:     AggregateMonth(record),
		Categories: categories,
	}, nil
}
