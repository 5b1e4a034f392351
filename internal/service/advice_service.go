package service

import (
	"context"
	"strings"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// AdviceService builds the numeric summary for the advice collaborator.
// Prompt construction and response parsing live behind the provider.
type AdviceService struct {
	expenseRepo domain.ExpenseRepository
	loanRepo    domain.LoanRepository
	provider    domain.AdviceProvider
}

// NewAdviceService creates a new AdviceService
func NewAdviceService(expenseRepo domain.ExpenseRepository, loanRepo domain.LoanRepository, provider domain.AdviceProvider) *AdviceService {
	return &AdviceService{
		expenseRepo: expenseRepo,
		loanRepo:    loanRepo,
		provider:    provider,
	}
}

// AdviceRequest is the caller-supplied part of an advice request
type AdviceRequest struct {
	PersonID         int32
	Year             int
	Month            int
	Goals            string
	SpendingPatterns string
}

// BuildInput assembles the flat numeric summary from the month's aggregates
// and the loan portfolio: income, expenses, remaining debt, and the saving
// rate (balance over income, 0% when there is no income).
func (s *AdviceService) BuildInput(workspaceID int32, req AdviceRequest) (domain.AdviceInput, error) {
	record, err := s.expenseRepo.GetMonth(req.PersonID, req.Year, req.Month)
	if err != nil {
		return domain.AdviceInput{}, err
	}
	totals := AggregateMonth(record)

	loans, err := s.loanRepo.GetAllByWorkspace(workspaceID)
	if err != nil {
		return domain.AdviceInput{}, err
	}
	debts := Portfolio(loans).RemainingAmount

	savingRate := decimal.Zero
	if totals.Income.GreaterThan(decimal.Zero) {
		savingRate = totals.Balance.Div(totals.Income).Mul(hundred)
	}

	return domain.AdviceInput{
		Income:           totals.Income,
		Expenses:         totals.TotalExpense,
		Debts:            debts,
		SavingRatePct:    savingRate,
		Goals:            strings.TrimSpace(req.Goals),
		SpendingPatterns: strings.TrimSpace(req.SpendingPatterns),
	}, nil
}

// GetAdvice builds the summary and hands it to the provider
func (s *AdviceService) GetAdvice(ctx context.Context, workspaceID int32, req AdviceRequest) (string, error) {
	input, err := s.BuildInput(workspaceID, req)
	if err != nil {
		return "", err
	}
	return s.provider.GetAdvice(ctx, input)
}
