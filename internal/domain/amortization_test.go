package domain

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestComputeSchedule_InvalidConfigs(t *testing.T) {
	tests := []struct {
		name string
		cfg  FinancingConfig
	}{
		{"zero price", FinancingConfig{Price: 0, InstallmentCount: 12, AnnualRatePct: 5}},
		{"negative price", FinancingConfig{Price: -1000, InstallmentCount: 12, AnnualRatePct: 5}},
		{"zero installments", FinancingConfig{Price: 1000, InstallmentCount: 0, AnnualRatePct: 5}},
		{"negative rate", FinancingConfig{Price: 1000, InstallmentCount: 12, AnnualRatePct: -1}},
		{"full down payment", FinancingConfig{Price: 1000, DownPaymentPct: 100, InstallmentCount: 12, AnnualRatePct: 5}},
		{"down payment above 100", FinancingConfig{Price: 1000, DownPaymentPct: 150, InstallmentCount: 12, AnnualRatePct: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ComputeSchedule(tt.cfg); result != nil {
				t.Errorf("Expected nil result for %s, got %+v", tt.name, result)
			}
		})
	}
}

func TestComputeSchedule_ConstantInstallment(t *testing.T) {
	cfg := FinancingConfig{Price: 210000, DownPaymentPct: 20, InstallmentCount: 360, AnnualRatePct: 10}
	result := ComputeSchedule(cfg)
	if result == nil {
		t.Fatal("Expected a result for a valid config")
	}

	if len(result.Schedule) != 360 {
		t.Fatalf("Expected 360 rows, got %d", len(result.Schedule))
	}
	for _, row := range result.Schedule {
		if !almostEqual(row.Payment, result.FirstInstallment, 1e-6) {
			t.Errorf("Row %d payment %.6f differs from installment %.6f", row.Installment, row.Payment, result.FirstInstallment)
		}
	}
}

func TestComputeSchedule_PrincipalSumsToFinancedAmount(t *testing.T) {
	cfg := FinancingConfig{Price: 210000, DownPaymentPct: 20, InstallmentCount: 360, AnnualRatePct: 10}
	result := ComputeSchedule(cfg)
	if result == nil {
		t.Fatal("Expected a result for a valid config")
	}

	sum := 0.0
	for _, row := range result.Schedule {
		sum += row.Principal
	}
	if !almostEqual(sum, result.FinancedAmount, 0.01) {
		t.Errorf("Sum of principal portions %.4f, want %.4f", sum, result.FinancedAmount)
	}
}

func TestComputeSchedule_RemainingBalanceMonotonic(t *testing.T) {
	cfg := FinancingConfig{Price: 300000, DownPaymentPct: 10, InstallmentCount: 240, AnnualRatePct: 8}
	result := ComputeSchedule(cfg)
	if result == nil {
		t.Fatal("Expected a result for a valid config")
	}

	for i := 1; i < len(result.Schedule); i++ {
		if result.Schedule[i].RemainingBalance > result.Schedule[i-1].RemainingBalance {
			t.Fatalf("Remaining balance increased at row %d", i+1)
		}
	}
	last := result.Schedule[len(result.Schedule)-1]
	if !almostEqual(last.RemainingBalance-last.Principal, 0, 0.01) {
		t.Errorf("Balance after last row = %.6f, want ~0", last.RemainingBalance-last.Principal)
	}
}

func TestComputeSchedule_ZeroRate(t *testing.T) {
	cfg := FinancingConfig{Price: 120000, DownPaymentPct: 0, InstallmentCount: 12, AnnualRatePct: 0}
	result := ComputeSchedule(cfg)
	if result == nil {
		t.Fatal("Expected a result for a valid config")
	}

	if result.MonthlyRate != 0 {
		t.Errorf("Expected zero monthly rate, got %f", result.MonthlyRate)
	}
	for _, row := range result.Schedule {
		if row.Interest != 0 {
			t.Errorf("Row %d has interest %.4f, want 0", row.Installment, row.Interest)
		}
		if !almostEqual(row.Principal, 10000, 1e-9) {
			t.Errorf("Row %d principal %.4f, want 10000", row.Installment, row.Principal)
		}
	}
	if !almostEqual(result.InterestCost, 0, 1e-6) {
		t.Errorf("Interest cost %.4f, want 0", result.InterestCost)
	}
}

func TestComputeSchedule_Deterministic(t *testing.T) {
	cfg := FinancingConfig{Price: 210000, DownPaymentPct: 20, InstallmentCount: 360, AnnualRatePct: 10, ExtraMonthlyPrincipal: 1000}

	first := ComputeSchedule(cfg)
	second := ComputeSchedule(cfg)
	if first == nil || second == nil {
		t.Fatal("Expected results for a valid config")
	}

	if first.FirstInstallment != second.FirstInstallment ||
		first.TotalPaid != second.TotalPaid ||
		first.MonthsAccelerated != second.MonthsAccelerated ||
		first.TotalPaidAccelerated != second.TotalPaidAccelerated {
		t.Error("Two runs on the same config produced different results")
	}
	for i := range first.Schedule {
		if first.Schedule[i] != second.Schedule[i] {
			t.Fatalf("Schedule row %d differs between runs", i+1)
		}
	}
}

func TestComputeSchedule_ReferenceScenario(t *testing.T) {
	// 210000 at 20% down, 360 months, 10% a.a., 1000 extra per month
	cfg := FinancingConfig{Price: 210000, DownPaymentPct: 20, InstallmentCount: 360, AnnualRatePct: 10, ExtraMonthlyPrincipal: 1000}
	result := ComputeSchedule(cfg)
	if result == nil {
		t.Fatal("Expected a result for a valid config")
	}

	if !almostEqual(result.DownPayment, 42000, 1e-9) {
		t.Errorf("Down payment %.2f, want 42000", result.DownPayment)
	}
	if !almostEqual(result.FinancedAmount, 168000, 1e-9) {
		t.Errorf("Financed amount %.2f, want 168000", result.FinancedAmount)
	}
	if !almostEqual(result.MonthlyRate, 0.007974, 0.000001) {
		t.Errorf("Monthly rate %.6f, want ~0.007974", result.MonthlyRate)
	}
	if !almostEqual(result.FirstInstallment, 1421.10, 0.01) {
		t.Errorf("First installment %.2f, want ~1421.10", result.FirstInstallment)
	}
	if result.MonthsAccelerated >= 360 {
		t.Errorf("Accelerated payoff took %d months, want well under 360", result.MonthsAccelerated)
	}
	if result.MonthsSaved != 360-result.MonthsAccelerated {
		t.Errorf("Months saved %d inconsistent with accelerated months %d", result.MonthsSaved, result.MonthsAccelerated)
	}
	if result.InterestSaved <= 0 {
		t.Errorf("Interest saved %.2f, want positive", result.InterestSaved)
	}
	if result.CapReached {
		t.Error("Cap should not be reached on a converging config")
	}
}

func TestComputeSchedule_AcceleratedNeverSlower(t *testing.T) {
	configs := []FinancingConfig{
		{Price: 210000, DownPaymentPct: 20, InstallmentCount: 360, AnnualRatePct: 10, ExtraMonthlyPrincipal: 1000},
		{Price: 50000, DownPaymentPct: 0, InstallmentCount: 48, AnnualRatePct: 15, ExtraMonthlyPrincipal: 50},
		{Price: 80000, DownPaymentPct: 50, InstallmentCount: 120, AnnualRatePct: 0, ExtraMonthlyPrincipal: 200},
	}
	for _, cfg := range configs {
		result := ComputeSchedule(cfg)
		if result == nil {
			t.Fatalf("Expected a result for config %+v", cfg)
		}
		if result.MonthsAccelerated > cfg.InstallmentCount {
			t.Errorf("Accelerated payoff %d months exceeds term %d", result.MonthsAccelerated, cfg.InstallmentCount)
		}
	}
}

func TestComputeSchedule_NoExtraMatchesNormalTerm(t *testing.T) {
	cfg := FinancingConfig{Price: 100000, DownPaymentPct: 0, InstallmentCount: 60, AnnualRatePct: 12}
	result := ComputeSchedule(cfg)
	if result == nil {
		t.Fatal("Expected a result for a valid config")
	}
	if result.MonthsAccelerated != 60 {
		t.Errorf("With no extra payment the parallel payoff took %d months, want 60", result.MonthsAccelerated)
	}
	if !almostEqual(result.TotalPaidAccelerated, result.TotalPaid, 0.05) {
		t.Errorf("Totals diverge without extra payment: %.4f vs %.4f", result.TotalPaidAccelerated, result.TotalPaid)
	}
}
