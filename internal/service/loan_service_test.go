package service

import (
	"testing"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanService_CreateLoan_EqualSplit(t *testing.T) {
	loanRepo := testutil.NewMockLoanRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewLoanService(loanRepo, publisher)

	loan, err := svc.CreateLoan(1, CreateLoanInput{
		Name:             "Car",
		TotalValue:       decimal.NewFromInt(12000),
		InstallmentCount: 12,
	})

	require.NoError(t, err)
	require.Len(t, loan.Payments, 12)
	for i, payment := range loan.Payments {
		assert.Equal(t, i+1, payment.Number)
		assert.Equal(t, "1000.00", payment.Amount.StringFixed(2))
		assert.False(t, payment.Paid)
		assert.Nil(t, payment.PaidAt)
	}

	progress := Progress(loan)
	assert.Equal(t, "0.00", progress.PaidAmount.StringFixed(2))
	assert.Equal(t, "12000.00", progress.RemainingAmount.StringFixed(2))
	assert.True(t, progress.PercentComplete.IsZero())

	assert.Equal(t, []string{"loan.created"}, publisher.EventTypes())
}

func TestLoanService_CreateLoan_RoundingRemainderGoesToLastPayment(t *testing.T) {
	loanRepo := testutil.NewMockLoanRepository()
	svc := NewLoanService(loanRepo, testutil.NewMockEventPublisher())

	loan, err := svc.CreateLoan(1, CreateLoanInput{
		Name:             "Sofa",
		TotalValue:       decimal.NewFromInt(1000),
		InstallmentCount: 3,
	})

	require.NoError(t, err)
	require.Len(t, loan.Payments, 3)
	assert.Equal(t, "333.33", loan.Payments[0].Amount.StringFixed(2))
	assert.Equal(t, "333.33", loan.Payments[1].Amount.StringFixed(2))
	assert.Equal(t, "333.34", loan.Payments[2].Amount.StringFixed(2))

	sum := decimal.Zero
	for _, payment := range loan.Payments {
		sum = sum.Add(payment.Amount)
	}
	assert.True(t, sum.Equal(loan.TotalValue))
}

func TestLoanService_CreateLoan_Validation(t *testing.T) {
	loanRepo := testutil.NewMockLoanRepository()
	svc := NewLoanService(loanRepo, testutil.NewMockEventPublisher())

	tests := []struct {
		name    string
		input   CreateLoanInput
		wantErr error
	}{
		{"empty name", CreateLoanInput{Name: "  ", TotalValue: decimal.NewFromInt(100), InstallmentCount: 2}, domain.ErrLoanNameEmpty},
		{"zero value", CreateLoanInput{Name: "TV", TotalValue: decimal.Zero, InstallmentCount: 2}, domain.ErrLoanValueInvalid},
		{"negative value", CreateLoanInput{Name: "TV", TotalValue: decimal.NewFromInt(-5), InstallmentCount: 2}, domain.ErrLoanValueInvalid},
		{"zero installments", CreateLoanInput{Name: "TV", TotalValue: decimal.NewFromInt(100), InstallmentCount: 0}, domain.ErrLoanInstallmentsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateLoan(1, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Nothing persisted on rejection
	loans, err := loanRepo.GetAllByWorkspace(1)
	require.NoError(t, err)
	assert.Empty(t, loans)
}

func TestLoanService_TogglePayment(t *testing.T) {
	loanRepo := testutil.NewMockLoanRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewLoanService(loanRepo, publisher)

	loan, err := svc.CreateLoan(1, CreateLoanInput{
		Name:             "Car",
		TotalValue:       decimal.NewFromInt(12000),
		InstallmentCount: 12,
	})
	require.NoError(t, err)

	for number := 1; number <= 3; number++ {
		_, err := svc.TogglePayment(1, loan.ID, number, true)
		require.NoError(t, err)
	}

	updated, err := svc.GetLoan(1, loan.ID)
	require.NoError(t, err)

	paid, err := updated.Payment(2)
	require.NoError(t, err)
	assert.True(t, paid.Paid)
	assert.NotNil(t, paid.PaidAt)

	progress := Progress(updated)
	assert.Equal(t, "3000.00", progress.PaidAmount.StringFixed(2))
	assert.Equal(t, "9000.00", progress.RemainingAmount.StringFixed(2))
	assert.Equal(t, "25.00", progress.PercentComplete.StringFixed(2))

	// Unmarking clears the paid date
	_, err = svc.TogglePayment(1, loan.ID, 2, false)
	require.NoError(t, err)

	updated, err = svc.GetLoan(1, loan.ID)
	require.NoError(t, err)
	unpaid, err := updated.Payment(2)
	require.NoError(t, err)
	assert.False(t, unpaid.Paid)
	assert.Nil(t, unpaid.PaidAt)
}

func TestLoanService_TogglePayment_UnknownNumber(t *testing.T) {
	loanRepo := testutil.NewMockLoanRepository()
	svc := NewLoanService(loanRepo, testutil.NewMockEventPublisher())

	loan, err := svc.CreateLoan(1, CreateLoanInput{
		Name:             "Car",
		TotalValue:       decimal.NewFromInt(1200),
		InstallmentCount: 12,
	})
	require.NoError(t, err)

	_, err = svc.TogglePayment(1, loan.ID, 13, true)
	assert.ErrorIs(t, err, domain.ErrLoanPaymentNotFound)

	_, err = svc.TogglePayment(1, loan.ID, 0, true)
	assert.ErrorIs(t, err, domain.ErrLoanPaymentNotFound)
}

func TestLoanService_TogglePayment_WrongWorkspace(t *testing.T) {
	loanRepo := testutil.NewMockLoanRepository()
	svc := NewLoanService(loanRepo, testutil.NewMockEventPublisher())

	loan, err := svc.CreateLoan(1, CreateLoanInput{
		Name:             "Car",
		TotalValue:       decimal.NewFromInt(1200),
		InstallmentCount: 12,
	})
	require.NoError(t, err)

	_, err = svc.TogglePayment(2, loan.ID, 1, true)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestLoanService_DeleteStats(t *testing.T) {
	loanRepo := testutil.NewMockLoanRepository()
	svc := NewLoanService(loanRepo, testutil.NewMockEventPublisher())

	loan, err := svc.CreateLoan(1, CreateLoanInput{
		Name:             "Car",
		TotalValue:       decimal.NewFromInt(12000),
		InstallmentCount: 12,
	})
	require.NoError(t, err)

	for number := 1; number <= 5; number++ {
		_, err := svc.TogglePayment(1, loan.ID, number, true)
		require.NoError(t, err)
	}

	stats, err := svc.DeleteStats(1, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalCount)
	assert.Equal(t, 5, stats.PaidCount)
	assert.Equal(t, 7, stats.UnpaidCount)
	assert.Equal(t, "5000.00", stats.PaidAmount.StringFixed(2))
}

func TestLoanService_DeleteLoan(t *testing.T) {
	loanRepo := testutil.NewMockLoanRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewLoanService(loanRepo, publisher)

	loan, err := svc.CreateLoan(1, CreateLoanInput{
		Name:             "Car",
		TotalValue:       decimal.NewFromInt(1200),
		InstallmentCount: 12,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLoan(1, loan.ID))

	_, err = svc.GetLoan(1, loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)

	assert.Equal(t, []string{"loan.created", "loan.deleted"}, publisher.EventTypes())

	// Deleting again reports not found
	assert.ErrorIs(t, svc.DeleteLoan(1, loan.ID), domain.ErrLoanNotFound)
}

func TestPortfolio_AggregatesAcrossLoans(t *testing.T) {
	loanRepo := testutil.NewMockLoanRepository()
	svc := NewLoanService(loanRepo, testutil.NewMockEventPublisher())

	car, err := svc.CreateLoan(1, CreateLoanInput{
		Name:             "Car",
		TotalValue:       decimal.NewFromInt(12000),
		InstallmentCount: 12,
	})
	require.NoError(t, err)
	_, err = svc.CreateLoan(1, CreateLoanInput{
		Name:             "Fridge",
		TotalValue:       decimal.NewFromInt(4000),
		InstallmentCount: 4,
	})
	require.NoError(t, err)

	for number := 1; number <= 4; number++ {
		_, err := svc.TogglePayment(1, car.ID, number, true)
		require.NoError(t, err)
	}

	loans, err := svc.GetLoans(1)
	require.NoError(t, err)
	portfolio := Portfolio(loans)

	assert.Equal(t, "16000.00", portfolio.TotalDebt.StringFixed(2))
	assert.Equal(t, "4000.00", portfolio.PaidAmount.StringFixed(2))
	assert.Equal(t, "12000.00", portfolio.RemainingAmount.StringFixed(2))
	assert.Equal(t, "25.00", portfolio.PercentComplete.StringFixed(2))
}

func TestPortfolio_Empty(t *testing.T) {
	portfolio := Portfolio(nil)
	assert.True(t, portfolio.TotalDebt.IsZero())
	assert.True(t, portfolio.PercentComplete.IsZero())
}
