package service

import (
	"math"
	"testing"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referencePlan(workspaceID int32) *domain.FinancingPlan {
	return &domain.FinancingPlan{
		WorkspaceID: workspaceID,
		Config: domain.FinancingConfig{
			Price:            210000,
			DownPaymentPct:   20,
			InstallmentCount: 360,
			AnnualRatePct:    10,
		},
		NameA:     "Ana",
		IncomeA:   6000,
		ExpensesA: 2000,
		NameB:     "Bruno",
		IncomeB:   4000,
		ExpensesB: 1500,
	}
}

func TestFinancingService_GetSimulation_NoPlanIsIncomplete(t *testing.T) {
	svc := NewFinancingService(testutil.NewMockFinancingRepository(), testutil.NewMockEventPublisher())

	view, err := svc.GetSimulation(1)
	require.NoError(t, err)

	assert.True(t, view.Incomplete)
	assert.Nil(t, view.Result)
	assert.Nil(t, view.PartyA)
	assert.NotNil(t, view.Marks)
	assert.Equal(t, "Person A", view.Plan.NameA)
}

func TestFinancingService_GetSimulation_ZeroPriceIsIncomplete(t *testing.T) {
	financingRepo := testutil.NewMockFinancingRepository()
	svc := NewFinancingService(financingRepo, testutil.NewMockEventPublisher())

	plan := referencePlan(1)
	plan.Config.Price = 0
	_, err := svc.SavePlan(1, plan)
	require.NoError(t, err)

	view, err := svc.GetSimulation(1)
	require.NoError(t, err)
	assert.True(t, view.Incomplete)
	assert.Nil(t, view.Result)
}

func TestFinancingService_GetSimulation_SplitAndLeftovers(t *testing.T) {
	financingRepo := testutil.NewMockFinancingRepository()
	svc := NewFinancingService(financingRepo, testutil.NewMockEventPublisher())

	_, err := svc.SavePlan(1, referencePlan(1))
	require.NoError(t, err)

	view, err := svc.GetSimulation(1)
	require.NoError(t, err)

	require.NotNil(t, view.Result)
	assert.False(t, view.Incomplete)
	assert.InDelta(t, 1421.10, view.Result.FirstInstallment, 0.01)

	require.NotNil(t, view.PartyA)
	require.NotNil(t, view.PartyB)

	// 6000/4000 income puts 60% of the outlay on party A
	assert.InDelta(t, 0.6, view.PartyA.Share, 1e-9)
	assert.InDelta(t, 0.4, view.PartyB.Share, 1e-9)

	outlay := view.Result.FirstInstallment
	assert.InDelta(t, outlay*0.6, view.PartyA.Amount, 1e-9)
	assert.InDelta(t, outlay*0.4, view.PartyB.Amount, 1e-9)

	assert.InDelta(t, 6000-2000-outlay*0.6, view.PartyA.Leftover, 1e-9)
	assert.InDelta(t, 4000-1500-outlay*0.4, view.PartyB.Leftover, 1e-9)
}

func TestFinancingService_GetSimulation_ExtraJoinsTheOutlay(t *testing.T) {
	financingRepo := testutil.NewMockFinancingRepository()
	svc := NewFinancingService(financingRepo, testutil.NewMockEventPublisher())

	plan := referencePlan(1)
	plan.Config.ExtraMonthlyPrincipal = 500
	_, err := svc.SavePlan(1, plan)
	require.NoError(t, err)

	view, err := svc.GetSimulation(1)
	require.NoError(t, err)

	outlay := view.Result.FirstInstallment + 500
	assert.InDelta(t, outlay*0.6, view.PartyA.Amount, 1e-9)
	assert.True(t, view.Result.MonthsAccelerated < view.Result.Months)
}

func TestFinancingService_GetSimulation_NoIncomeSplitsEvenly(t *testing.T) {
	financingRepo := testutil.NewMockFinancingRepository()
	svc := NewFinancingService(financingRepo, testutil.NewMockEventPublisher())

	plan := referencePlan(1)
	plan.IncomeA = 0
	plan.IncomeB = 0
	_, err := svc.SavePlan(1, plan)
	require.NoError(t, err)

	view, err := svc.GetSimulation(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, view.PartyA.Share, 1e-9)
	assert.InDelta(t, 0.5, view.PartyB.Share, 1e-9)
}

func TestFinancingService_SavePlan(t *testing.T) {
	financingRepo := testutil.NewMockFinancingRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewFinancingService(financingRepo, publisher)

	saved, err := svc.SavePlan(7, referencePlan(0))
	require.NoError(t, err)
	assert.Equal(t, int32(7), saved.WorkspaceID)
	assert.Equal(t, []string{"financing_plan.updated"}, publisher.EventTypes())
}

func TestFinancingService_SavePlan_RejectsNonFinite(t *testing.T) {
	svc := NewFinancingService(testutil.NewMockFinancingRepository(), testutil.NewMockEventPublisher())

	plan := referencePlan(1)
	plan.IncomeA = math.NaN()
	_, err := svc.SavePlan(1, plan)
	assert.ErrorIs(t, err, domain.ErrFinancingValueNotFinite)
}

func TestFinancingService_ToggleInstallment(t *testing.T) {
	financingRepo := testutil.NewMockFinancingRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewFinancingService(financingRepo, publisher)

	require.NoError(t, svc.ToggleInstallment(1, 3, true))

	marks, err := financingRepo.GetMarks(1)
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, 3, marks[0].Number)
	assert.False(t, marks[0].PaidAt.IsZero())

	require.NoError(t, svc.ToggleInstallment(1, 3, false))
	marks, err = financingRepo.GetMarks(1)
	require.NoError(t, err)
	assert.Empty(t, marks)

	assert.Equal(t, []string{"installment_mark.toggled", "installment_mark.toggled"}, publisher.EventTypes())
}

func TestFinancingService_ToggleInstallment_InvalidNumber(t *testing.T) {
	svc := NewFinancingService(testutil.NewMockFinancingRepository(), testutil.NewMockEventPublisher())

	assert.ErrorIs(t, svc.ToggleInstallment(1, 0, true), domain.ErrInstallmentNumberInvalid)
	assert.ErrorIs(t, svc.ToggleInstallment(1, -1, true), domain.ErrInstallmentNumberInvalid)
}

func TestFinancingService_MarksSurviveConfigEdit(t *testing.T) {
	financingRepo := testutil.NewMockFinancingRepository()
	svc := NewFinancingService(financingRepo, testutil.NewMockEventPublisher())

	_, err := svc.SavePlan(1, referencePlan(1))
	require.NoError(t, err)
	require.NoError(t, svc.ToggleInstallment(1, 1, true))
	require.NoError(t, svc.ToggleInstallment(1, 2, true))

	edited := referencePlan(1)
	edited.Config.AnnualRatePct = 9
	_, err = svc.SavePlan(1, edited)
	require.NoError(t, err)

	view, err := svc.GetSimulation(1)
	require.NoError(t, err)
	assert.Len(t, view.Marks, 2)
}
