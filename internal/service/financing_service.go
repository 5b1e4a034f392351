package service

import (
	"errors"
	"time"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/websocket"
)

// FinancingService handles the per-workspace financing simulation
type FinancingService struct {
	financingRepo domain.FinancingRepository
	publisher     websocket.EventPublisher
}

// NewFinancingService creates a new FinancingService
func NewFinancingService(financingRepo domain.FinancingRepository, publisher websocket.EventPublisher) *FinancingService {
	return &FinancingService{
		financingRepo: financingRepo,
		publisher:     publisher,
	}
}

// PartyShare is one party's side of the financing split: their proportional
// share of the monthly outlay and what remains of their income after it and
// their own expenses.
type PartyShare struct {
	Name     string  `json:"name"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Share    float64 `json:"share"` // fraction of combined income
	Amount   float64 `json:"amount"`
	Leftover float64 `json:"leftover"`
}

// SimulationView is the full financing simulation state: the stored plan,
// the computed schedule (nil while inputs are incomplete), the paid marks
// and the per-party split of the monthly outlay.
type SimulationView struct {
	Plan       *domain.FinancingPlan     `json:"plan"`
	Incomplete bool                      `json:"incomplete"`
	Result     *domain.AmortizationResult `json:"result,omitempty"`
	Marks      []domain.InstallmentMark  `json:"marks"`
	PartyA     *PartyShare               `json:"partyA,omitempty"`
	PartyB     *PartyShare               `json:"partyB,omitempty"`
}

// GetSimulation returns the workspace's simulation. A workspace that never
// saved a plan gets an empty plan with Incomplete set, not an error.
func (s *FinancingService) GetSimulation(workspaceID int32) (*SimulationView, error) {
	plan, err := s.financingRepo.GetPlan(workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrFinancingPlanNotFound) {
			plan = &domain.FinancingPlan{
				WorkspaceID: workspaceID,
				NameA:       "Person A",
				NameB:       "Person B",
			}
		} else {
			return nil, err
		}
	}

	marks, err := s.financingRepo.GetMarks(workspaceID)
	if err != nil {
		return nil, err
	}
	if marks == nil {
		marks = []domain.InstallmentMark{}
	}

	view := &SimulationView{
		Plan:  plan,
		Marks: marks,
	}

	result := domain.ComputeSchedule(plan.Config)
	if result == nil {
		view.Incomplete = true
		return view, nil
	}
	view.Result = result

	outlay := result.FirstInstallment + plan.Config.ExtraMonthlyPrincipal
	partyA, partyB := splitOutlay(plan, outlay)
	view.PartyA = partyA
	view.PartyB = partyB

	return view, nil
}

// splitOutlay allocates the monthly outlay between the two parties in
// proportion to income, falling back to an even split with no income data.
func splitOutlay(plan *domain.FinancingPlan, outlay float64) (*PartyShare, *PartyShare) {
	total := plan.IncomeA + plan.IncomeB

	shareA := 0.5
	if total > 0 {
		shareA = plan.IncomeA / total
	}
	shareB := 1 - shareA

	amountA := outlay * shareA
	amountB := outlay * shareB

	return &PartyShare{
			Name:     plan.NameA,
			Income:   plan.IncomeA,
			Expenses: plan.ExpensesA,
			Share:    shareA,
			Amount:   amountA,
			Leftover: plan.IncomeA - plan.ExpensesA - amountA,
		}, &PartyShare{
			Name:     plan.NameB,
			Income:   plan.IncomeB,
			Expenses: plan.ExpensesB,
			Share:    shareB,
			Amount:   amountB,
			Leftover: plan.IncomeB - plan.ExpensesB - amountB,
		}
}

// SavePlan replaces the workspace's whole plan. Paid marks are stored
// separately and survive the replacement.
func (s *FinancingService) SavePlan(workspaceID int32, plan *domain.FinancingPlan) (*domain.FinancingPlan, error) {
	plan.WorkspaceID = workspaceID
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.financingRepo.SavePlan(plan)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, websocket.FinancingPlanUpdated(saved))
	return saved, nil
}

// ToggleInstallment marks a schedule installment paid or unpaid. Marking
// paid stamps the current time; the mark attributes the installment to this
// calendar month for the debt-service estimate.
func (s *FinancingService) ToggleInstallment(workspaceID int32, number int, paid bool) error {
	if number < 1 {
		return domain.ErrInstallmentNumberInvalid
	}

	if err := s.financingRepo.SetMark(workspaceID, number, paid, time.Now().UTC()); err != nil {
		return err
	}

	s.publisher.Publish(workspaceID, websocket.InstallmentMarkToggled(map[string]interface{}{
		"number": number,
		"paid":   paid,
	}))
	return nil
}
