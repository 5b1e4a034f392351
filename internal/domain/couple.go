package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrCoupleMonthNotFound   = errors.New("couple month not found")
	ErrSharedAccountNotFound = errors.New("shared account not found")
	ErrSharedLabelEmpty      = errors.New("shared account label is required")
)

// SharedAccount is one shared bill within a couple month.
type SharedAccount struct {
	ID     int32           `json:"id"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CoupleMonth holds the couple finance record for one (year, month):
// both incomes and savings contributions plus the shared bills split
// proportionally between the two.
type CoupleMonth struct {
	WorkspaceID int32           `json:"workspaceId"`
	Year        int             `json:"year"`
	Month       int             `json:"month"` // 1-12
	LabelA      string          `json:"labelA"`
	LabelB      string          `json:"labelB"`
	IncomeA     decimal.Decimal `json:"incomeA"`
	IncomeB     decimal.Decimal `json:"incomeB"`
	SavingsA    decimal.Decimal `json:"savingsA"`
	SavingsB    decimal.Decimal `json:"savingsB"`
	Accounts    []SharedAccount `json:"accounts"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type CoupleRepository interface {
	GetMonth(workspaceID int32, year, month int) (*CoupleMonth, error)
	UpsertMonth(month *CoupleMonth) (*CoupleMonth, error)
	AddAccount(workspaceID int32, year, month int, label string, amount decimal.Decimal) (*SharedAccount, error)
	UpdateAccount(workspaceID, id int32, label string, amount decimal.Decimal) (*SharedAccount, error)
	DeleteAccount(workspaceID, id int32) error
}
