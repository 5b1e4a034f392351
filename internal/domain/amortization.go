package domain

import "math"

// PayoffEpsilon is the remaining-balance threshold below which a financing
// is considered fully paid.
const PayoffEpsilon = 0.01

// AmortizationRow is one line of a French-system (Price) schedule.
type AmortizationRow struct {
	Installment      int     `json:"installment"`
	RemainingBalance float64 `json:"remainingBalance"` // before this payment
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	Payment          float64 `json:"payment"`
}

// AmortizationResult holds the full schedule plus the accelerated-payoff
// comparison for a financing simulation.
type AmortizationResult struct {
	DownPayment      float64 `json:"downPayment"`
	FinancedAmount   float64 `json:"financedAmount"`
	MonthlyRate      float64 `json:"monthlyRate"` // fraction, not percent
	FirstInstallment float64 `json:"firstInstallment"`

	Months       int     `json:"months"`
	TotalPaid    float64 `json:"totalPaid"`
	InterestCost float64 `json:"interestCost"`

	MonthsAccelerated       int     `json:"monthsAccelerated"`
	TotalPaidAccelerated    float64 `json:"totalPaidAccelerated"`
	InterestCostAccelerated float64 `json:"interestCostAccelerated"`
	CapReached              bool    `json:"capReached"`

	MonthsSaved   int     `json:"monthsSaved"`
	InterestSaved float64 `json:"interestSaved"`

	Schedule []AmortizationRow `json:"schedule"`
}

// ComputeSchedule produces the amortization schedule for a financing config.
// Returns nil when the config cannot produce a schedule (non-positive price
// or term, negative rate, or nothing left to finance after the down payment).
//
// The monthly rate is the effective compound conversion of the annual rate,
// (1+annual/100)^(1/12)-1. With a positive rate the schedule is the French
// system: constant payment, shifting interest/principal mix. At zero rate it
// degrades to an equal-principal split with no interest.
func ComputeSchedule(cfg FinancingConfig) *AmortizationResult {
	if cfg.Price <= 0 || cfg.InstallmentCount <= 0 || cfg.AnnualRatePct < 0 {
		return nil
	}
	downPayment := cfg.Price * cfg.DownPaymentPct / 100
	financed := cfg.Price - downPayment
	if financed <= 0 {
		return nil
	}

	n := cfg.InstallmentCount
	rate := math.Pow(1+cfg.AnnualRatePct/100, 1.0/12) - 1

	var installment float64
	if rate > 0 {
		growth := math.Pow(1+rate, float64(n))
		installment = financed * rate * growth / (growth - 1)
	} else {
		installment = financed / float64(n)
	}

	schedule := make([]AmortizationRow, 0, n)
	balance := financed
	totalPaid := 0.0
	for i := 1; i <= n; i++ {
		interest := balance * rate
		principal := installment - interest
		schedule = append(schedule, AmortizationRow{
			Installment:      i,
			RemainingBalance: balance,
			Principal:        principal,
			Interest:         interest,
			Payment:          installment,
		})
		totalPaid += installment
		balance -= principal
	}

	result := &AmortizationResult{
		DownPayment:      downPayment,
		FinancedAmount:   financed,
		MonthlyRate:      rate,
		FirstInstallment: installment,
		Months:           n,
		TotalPaid:        totalPaid,
		InterestCost:     totalPaid - financed,
		Schedule:         schedule,
	}

	result.MonthsAccelerated, result.TotalPaidAccelerated, result.CapReached =
		simulatePayoff(financed, rate, installment, cfg.ExtraMonthlyPrincipal, n)
	result.InterestCostAccelerated = result.TotalPaidAccelerated - financed
	result.MonthsSaved = n - result.MonthsAccelerated
	result.InterestSaved = result.InterestCost - result.InterestCostAccelerated

	return result
}

// simulatePayoff replays the schedule with a fixed extra principal payment
// each month, recomputing interest against the faster-shrinking balance.
// The iteration cap of 2*n guards against non-convergence on pathological
// configs; on hitting it the state reached so far is reported.
func simulatePayoff(financed, rate, installment, extra float64, n int) (months int, totalPaid float64, capReached bool) {
	balance := financed
	for balance > PayoffEpsilon {
		if months >= 2*n {
			return months, totalPaid, true
		}
		interest := balance * rate
		principal := installment - interest + extra
		if principal > balance {
			principal = balance
		}
		totalPaid += principal + interest
		balance -= principal
		months++
	}
	return months, totalPaid, false
}
