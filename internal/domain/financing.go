package domain

import (
	"errors"
	"math"
	"time"
)

var (
	ErrFinancingPlanNotFound     = errors.New("financing plan not found")
	ErrFinancingValueNotFinite   = errors.New("financing values must be finite numbers")
	ErrInstallmentNumberInvalid  = errors.New("installment number must be at least 1")
)

// FinancingConfig holds the inputs of a financing simulation.
// An invalid config is not an error: ComputeSchedule returns nil and the
// caller renders an input prompt instead.
type FinancingConfig struct {
	Price                 float64 `json:"price"`
	DownPaymentPct        float64 `json:"downPaymentPct"`
	InstallmentCount      int     `json:"installmentCount"`
	AnnualRatePct         float64 `json:"annualRatePct"`
	ExtraMonthlyPrincipal float64 `json:"extraMonthlyPrincipal"`
}

// FinancingPlan is the per-workspace financing simulation state: the config
// plus the two parties whose incomes drive the proportional split.
type FinancingPlan struct {
	WorkspaceID int32           `json:"workspaceId"`
	Config      FinancingConfig `json:"config"`
	NameA       string          `json:"nameA"`
	IncomeA     float64         `json:"incomeA"`
	ExpensesA   float64         `json:"expensesA"`
	NameB       string          `json:"nameB"`
	IncomeB     float64         `json:"incomeB"`
	ExpensesB   float64         `json:"expensesB"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Validate rejects non-finite numbers; anything else is storable, the
// simulator reports incomplete input instead of failing.
func (p *FinancingPlan) Validate() error {
	values := []float64{
		p.Config.Price, p.Config.DownPaymentPct, p.Config.AnnualRatePct,
		p.Config.ExtraMonthlyPrincipal, p.IncomeA, p.ExpensesA, p.IncomeB, p.ExpensesB,
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrFinancingValueNotFinite
		}
	}
	return nil
}

// InstallmentMark records that a schedule installment was marked paid.
// Marks survive config edits; marks past a shrunken installment count are
// kept but meaningless.
type InstallmentMark struct {
	Number int       `json:"number"`
	PaidAt time.Time `json:"paidAt"`
}

type FinancingRepository interface {
	GetPlan(workspaceID int32) (*FinancingPlan, error)
	SavePlan(plan *FinancingPlan) (*FinancingPlan, error)
	GetMarks(workspaceID int32) ([]InstallmentMark, error)
	SetMark(workspaceID int32, number int, paid bool, paidAt time.Time) error
}
