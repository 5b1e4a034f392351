package service

import (
	"strings"
	"time"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// LoanService handles loan business logic
type LoanService struct {
	loanRepo  domain.LoanRepository
	publisher websocket.EventPublisher
}

// NewLoanService creates a new LoanService
func NewLoanService(loanRepo domain.LoanRepository, publisher websocket.EventPublisher) *LoanService {
	return &LoanService{
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// LoanProgress summarizes how far along a loan's repayment is.
type LoanProgress struct {
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	PercentComplete decimal.Decimal `json:"percentComplete"`
}

// CreateLoanInput contains input for creating a loan
type CreateLoanInput struct {
	Name             string
	TotalValue       decimal.Decimal
	InstallmentCount int
}

// CreateLoan creates a loan with equal unpaid installments. The per-payment
// amount is totalValue/count rounded to 2dp; the last payment absorbs the
// rounding remainder so the amounts sum back to the total.
func (s *LoanService) CreateLoan(workspaceID int32, input CreateLoanInput) (*domain.Loan, error) {
	loan := &domain.Loan{
		WorkspaceID:      workspaceID,
		Name:             strings.TrimSpace(input.Name),
		TotalValue:       input.TotalValue,
		InstallmentCount: input.InstallmentCount,
	}
	if err := loan.Validate(); err != nil {
		return nil, err
	}

	loan.Payments = buildEqualPayments(loan.TotalValue, loan.InstallmentCount)

	created, err := s.loanRepo.Create(loan)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, websocket.LoanCreated(created))
	return created, nil
}

func buildEqualPayments(total decimal.Decimal, count int) []domain.LoanPayment {
	per := total.Div(decimal.NewFromInt(int64(count))).Round(2)
	payments := make([]domain.LoanPayment, count)
	for i := range payments {
		payments[i] = domain.LoanPayment{Number: i + 1, Amount: per}
	}
	// Last payment absorbs the rounding remainder
	payments[count-1].Amount = total.Sub(per.Mul(decimal.NewFromInt(int64(count - 1))))
	return payments
}

// GetLoans returns all loans of the workspace
func (s *LoanService) GetLoans(workspaceID int32) ([]*domain.Loan, error) {
	return s.loanRepo.GetAllByWorkspace(workspaceID)
}

// GetLoan returns a single loan by ID
func (s *LoanService) GetLoan(workspaceID, loanID int32) (*domain.Loan, error) {
	return s.loanRepo.GetByID(workspaceID, loanID)
}

// TogglePayment marks one payment paid or unpaid. Marking paid stamps the
// current time so the payment attributes to this calendar month; unmarking
// clears the date.
func (s *LoanService) TogglePayment(workspaceID, loanID int32, number int, paid bool) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(workspaceID, loanID)
	if err != nil {
		return nil, err
	}
	if _, err := loan.Payment(number); err != nil {
		return nil, err
	}

	var paidAt *time.Time
	if paid {
		now := time.Now().UTC()
		paidAt = &now
	}

	updated, err := s.loanRepo.SetPaymentPaid(workspaceID, loanID, number, paid, paidAt)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, websocket.LoanPaymentToggled(updated))
	return updated, nil
}

// Progress derives a loan's repayment progress from its paid flags.
// A zero total reads as 0% rather than dividing.
func Progress(loan *domain.Loan) LoanProgress {
	paid := decimal.Zero
	for _, payment := range loan.Payments {
		if payment.Paid {
			paid = paid.Add(payment.Amount)
		}
	}

	percent := decimal.Zero
	if loan.TotalValue.GreaterThan(decimal.Zero) {
		percent = paid.Div(loan.TotalValue).Mul(hundred)
	}

	return LoanProgress{
		PaidAmount:      paid,
		RemainingAmount: loan.TotalValue.Sub(paid),
		PercentComplete: percent,
	}
}

// PortfolioProgress aggregates progress across all loans of a workspace.
type PortfolioProgress struct {
	TotalDebt       decimal.Decimal `json:"totalDebt"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	PercentComplete decimal.Decimal `json:"percentComplete"`
}

// Portfolio sums progress over the given loans.
func Portfolio(loans []*domain.Loan) PortfolioProgress {
	total := decimal.Zero
	paid := decimal.Zero
	for _, loan := range loans {
		total = total.Add(loan.TotalValue)
		paid = paid.Add(Progress(loan).PaidAmount)
	}

	percent := decimal.Zero
	if total.GreaterThan(decimal.Zero) {
		percent = paid.Div(total).Mul(hundred)
	}

	return PortfolioProgress{
		TotalDebt:       total,
		PaidAmount:      paid,
		RemainingAmount: total.Sub(paid),
		PercentComplete: percent,
	}
}

// DeleteStats returns the payment summary shown before an irreversible delete.
func (s *LoanService) DeleteStats(workspaceID, loanID int32) (*domain.LoanDeleteStats, error) {
	loan, err := s.loanRepo.GetByID(workspaceID, loanID)
	if err != nil {
		return nil, err
	}

	stats := &domain.LoanDeleteStats{
		TotalCount: len(loan.Payments),
		PaidAmount: decimal.Zero,
	}
	for _, payment := range loan.Payments {
		if payment.Paid {
			stats.PaidCount++
			stats.PaidAmount = stats.PaidAmount.Add(payment.Amount)
		}
	}
	stats.UnpaidCount = stats.TotalCount - stats.PaidCount

	return stats, nil
}

// DeleteLoan permanently removes a loan and its payments
func (s *LoanService) DeleteLoan(workspaceID, loanID int32) error {
	loan, err := s.loanRepo.GetByID(workspaceID, loanID)
	if err != nil {
		return err
	}

	if err := s.loanRepo.Delete(workspaceID, loanID); err != nil {
		return err
	}

	s.publisher.Publish(workspaceID, websocket.LoanDeleted(loan))
	return nil
}
