package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrLoanNotFound            = errors.New("loan not found")
	ErrLoanNameEmpty           = errors.New("loan name is required")
	ErrLoanNameTooLong         = errors.New("loan name must be 200 characters or less")
	ErrLoanValueInvalid        = errors.New("loan total value must be positive")
	ErrLoanInstallmentsInvalid = errors.New("loan installment count must be at least 1")
	ErrLoanPaymentNotFound     = errors.New("loan payment not found")
)

// LoanPayment is one equal-split installment of a loan. PaidAt is set while
// the payment is marked paid; the date attributes the payment to a calendar
// month for debt-service estimation.
type LoanPayment struct {
	Number int             `json:"number"`
	Amount decimal.Decimal `json:"amount"`
	Paid   bool            `json:"paid"`
	PaidAt *time.Time      `json:"paidAt,omitempty"`
}

// Loan is a tracked debt repaid in equal installments.
type Loan struct {
	ID               int32           `json:"id"`
	WorkspaceID      int32           `json:"workspaceId"`
	Name             string          `json:"name"`
	TotalValue       decimal.Decimal `json:"totalValue"`
	InstallmentCount int             `json:"installmentCount"`
	Payments         []LoanPayment   `json:"payments"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func (l *Loan) Validate() error {
	if l.Name == "" {
		return ErrLoanNameEmpty
	}
	if len(l.Name) > MaxNameLength {
		return ErrLoanNameTooLong
	}
	if l.TotalValue.LessThanOrEqual(decimal.Zero) {
		return ErrLoanValueInvalid
	}
	if l.InstallmentCount < 1 {
		return ErrLoanInstallmentsInvalid
	}
	return nil
}

// Payment returns the payment with the given 1-based number.
func (l *Loan) Payment(number int) (*LoanPayment, error) {
	for i := range l.Payments {
		if l.Payments[i].Number == number {
			return &l.Payments[i], nil
		}
	}
	return nil, ErrLoanPaymentNotFound
}

// LoanDeleteStats summarizes a loan's payments for the delete confirmation
// dialog. Deletion is irreversible.
type LoanDeleteStats struct {
	TotalCount  int             `json:"totalCount"`
	PaidCount   int             `json:"paidCount"`
	UnpaidCount int             `json:"unpaidCount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
}

type LoanRepository interface {
	Create(loan *Loan) (*Loan, error)
	GetByID(workspaceID, id int32) (*Loan, error)
	GetAllByWorkspace(workspaceID int32) ([]*Loan, error)
	SetPaymentPaid(workspaceID, loanID int32, number int, paid bool, paidAt *time.Time) (*Loan, error)
	Delete(workspaceID, id int32) error
}
