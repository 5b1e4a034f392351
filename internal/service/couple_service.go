package service

import (
	"errors"
	"strings"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/util"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

const (
	defaultLabelA = "Partner A"
	defaultLabelB = "Partner B"
)

// CoupleService handles the couple finance record and its shared accounts
type CoupleService struct {
	coupleRepo domain.CoupleRepository
	publisher  websocket.EventPublisher
}

// NewCoupleService creates a new CoupleService
func NewCoupleService(coupleRepo domain.CoupleRepository, publisher websocket.EventPublisher) *CoupleService {
	return &CoupleService{
		coupleRepo: coupleRepo,
		publisher:  publisher,
	}
}

// PartySummary is one partner's side of the computed couple summary.
type PartySummary struct {
	Label          string          `json:"label"`
	Income         decimal.Decimal `json:"income"`
	BillsShare     decimal.Decimal `json:"billsShare"`
	Savings        decimal.Decimal `json:"savings"`
	Leftover       decimal.Decimal `json:"leftover"`
	SavingsRatePct decimal.Decimal `json:"savingsRatePercent"`
}

// CoupleSummary is the derived view of one couple month: the proportional
// bills split, each partner's leftover, and the joint savings.
type CoupleSummary struct {
	TotalBills   decimal.Decimal `json:"totalBills"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	JointSavings decimal.Decimal `json:"jointSavings"`
	PartyA       PartySummary    `json:"partyA"`
	PartyB       PartySummary    `json:"partyB"`
}

// GetMonth returns the couple record for (year, month). A month without a
// record is an empty record with default labels, not an error.
func (s *CoupleService) GetMonth(workspaceID int32, year, month int) (*domain.CoupleMonth, error) {
	if !util.IsValidMonth(month) {
		return nil, domain.ErrInvalidInput
	}

	record, err := s.coupleRepo.GetMonth(workspaceID, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrCoupleMonthNotFound) {
			return &domain.CoupleMonth{
				WorkspaceID: workspaceID,
				Year:        year,
				Month:       month,
				LabelA:      defaultLabelA,
				LabelB:      defaultLabelB,
				Accounts:    []domain.SharedAccount{},
			}, nil
		}
		return nil, err
	}
	return record, nil
}

// SaveMonthInput contains the writable fields of a couple month
type SaveMonthInput struct {
	LabelA   string
	LabelB   string
	IncomeA  decimal.Decimal
	IncomeB  decimal.Decimal
	SavingsA decimal.Decimal
	SavingsB decimal.Decimal
}

// SaveMonth upserts the incomes, savings and labels of one couple month.
// Shared accounts are managed through the account operations, not here.
func (s *CoupleService) SaveMonth(workspaceID int32, year, month int, input SaveMonthInput) (*domain.CoupleMonth, error) {
	if !util.IsValidMonth(month) {
		return nil, domain.ErrInvalidInput
	}

	labelA := strings.TrimSpace(input.LabelA)
	if labelA == "" {
		labelA = defaultLabelA
	}
	labelB := strings.TrimSpace(input.LabelB)
	if labelB == "" {
		labelB = defaultLabelB
	}

	record := &domain.CoupleMonth{
		WorkspaceID: workspaceID,
		Year:        year,
		Month:       month,
		LabelA:      labelA,
		LabelB:      labelB,
		IncomeA:     input.IncomeA,
		IncomeB:     input.IncomeB,
		SavingsA:    input.SavingsA,
		SavingsB:    input.SavingsB,
	}

	saved, err := s.coupleRepo.UpsertMonth(record)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, websocket.CoupleMonthUpdated(saved))
	return saved, nil
}

// AddAccount adds one shared bill to the month
func (s *CoupleService) AddAccount(workspaceID int32, year, month int, label string, amount decimal.Decimal) (*domain.SharedAccount, error) {
	if !util.IsValidMonth(month) {
		return nil, domain.ErrInvalidInput
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, domain.ErrSharedLabelEmpty
	}

	account, err := s.coupleRepo.AddAccount(workspaceID, year, month, label, amount)
	if err != nil {
		return nil, err
	}

	s.publishMonth(workspaceID, year, month)
	return account, nil
}

// UpdateAccount edits one shared bill's label and amount
func (s *CoupleService) UpdateAccount(workspaceID int32, year, month int, id int32, label string, amount decimal.Decimal) (*domain.SharedAccount, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, domain.ErrSharedLabelEmpty
	}

	account, err := s.coupleRepo.UpdateAccount(workspaceID, id, label, amount)
	if err != nil {
		return nil, err
	}

	s.publishMonth(workspaceID, year, month)
	return account, nil
}

// DeleteAccount removes one shared bill
func (s *CoupleService) DeleteAccount(workspaceID int32, year, month int, id int32) error {
	if err := s.coupleRepo.DeleteAccount(workspaceID, id); err != nil {
		return err
	}

	s.publishMonth(workspaceID, year, month)
	return nil
}

func (s *CoupleService) publishMonth(workspaceID int32, year, month int) {
	record, err := s.coupleRepo.GetMonth(workspaceID, year, month)
	if err != nil {
		return
	}
	s.publisher.Publish(workspaceID, websocket.CoupleMonthUpdated(record))
}

// BuildCoupleSummary derives the proportional split of the month's shared
// bills and each partner's leftover (income minus allocated bills minus own
// savings). A partner with zero income reads as 0% savings rate.
func BuildCoupleSummary(record *domain.CoupleMonth) CoupleSummary {
	totalBills := decimal.Zero
	for _, account := range record.Accounts {
		totalBills = totalBills.Add(account.Amount)
	}

	split := Split(record.IncomeA, record.IncomeB, totalBills)

	return CoupleSummary{
		TotalBills:   totalBills,
		TotalIncome:  record.IncomeA.Add(record.IncomeB),
		JointSavings: record.SavingsA.Add(record.SavingsB),
		PartyA: PartySummary{
			Label:          record.LabelA,
			Income:         record.IncomeA,
			BillsShare:     split.AmountA,
			Savings:        record.SavingsA,
			Leftover:       record.IncomeA.Sub(split.AmountA).Sub(record.SavingsA),
			SavingsRatePct: savingsRate(record.SavingsA, record.IncomeA),
		},
		PartyB: PartySummary{
			Label:          record.LabelB,
			Income:         record.IncomeB,
			BillsShare:     split.AmountB,
			Savings:        record.SavingsB,
			Leftover:       record.IncomeB.Sub(split.AmountB).Sub(record.SavingsB),
			SavingsRatePct: savingsRate(record.SavingsB, record.IncomeB),
		},
	}
}

func savingsRate(savings, income decimal.Decimal) decimal.Decimal {
	if income.GreaterThan(decimal.Zero) {
		return savings.Div(income).Mul(hundred)
	}
	return decimal.Zero
}
