package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrPersonNotFound       = errors.New("person not found")
	ErrExpenseItemNotFound  = errors.New("expense item not found")
	ErrExpenseLabelEmpty    = errors.New("expense item label is required")
	ErrExpenseAmountInvalid = errors.New("expense item amount must not be negative")
	ErrBucketInvalid        = errors.New("invalid expense bucket")
	ErrMonthInvalid         = errors.New("month must be between 1 and 12")
)

// Bucket identifies which of the three lists of a month an item belongs to.
type Bucket string

const (
	BucketIncome       Bucket = "income"
	BucketEssential    Bucket = "essential"
	BucketNonEssential Bucket = "non_essential"
)

// Valid reports whether b is one of the three known buckets.
func (b Bucket) Valid() bool {
	switch b {
	case BucketIncome, BucketEssential, BucketNonEssential:
		return true
	}
	return false
}

// DefaultCategory is the grouping used for items without a category.
const DefaultCategory = "Other"

// Person is a tracked person within a workspace (the expense tracker's
// sub-tabs).
type Person struct {
	ID          int32     `json:"id"`
	WorkspaceID int32     `json:"workspaceId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ExpenseItem is a single income or expense line within one
// (person, year, month) cell. An item belongs to exactly one bucket; moving
// it is a single atomic operation, never a delete plus insert.
type ExpenseItem struct {
	ID        int32           `json:"id"`
	PersonID  int32           `json:"personId"`
	Year      int             `json:"year"`
	Month     int             `json:"month"` // 1-12
	Bucket    Bucket          `json:"bucket"`
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
	Category  *string         `json:"category,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (i *ExpenseItem) Validate() error {
	if i.Label == "" {
		return ErrExpenseLabelEmpty
	}
	if len(i.Label) > MaxNameLength {
		return ErrNameTooLong
	}
	if i.Amount.IsNegative() {
		return ErrExpenseAmountInvalid
	}
	if i.Month < 1 || i.Month > 12 {
		return ErrMonthInvalid
	}
	if !i.Bucket.Valid() {
		return ErrBucketInvalid
	}
	return nil
}

// MonthRecord groups one month's items by bucket. Aggregates over it are
// always derived, never stored.
type MonthRecord struct {
	Income       []ExpenseItem `json:"income"`
	Essential    []ExpenseItem `json:"essential"`
	NonEssential []ExpenseItem `json:"nonEssential"`
}

type PersonRepository interface {
	Create(person *Person) (*Person, error)
	GetByID(workspaceID, id int32) (*Person, error)
	GetAllByWorkspace(workspaceID int32) ([]*Person, error)
	Rename(workspaceID, id int32, name string) (*Person, error)
	Delete(workspaceID, id int32) error
}

type ExpenseRepository interface {
	CreateItem(item *ExpenseItem) (*ExpenseItem, error)
	GetItemByID(personID, id int32) (*ExpenseItem, error)
	GetMonth(personID int32, year, month int) (*MonthRecord, error)
	GetYear(personID int32, year int) (map[int]*MonthRecord, error)
	UpdateItem(item *ExpenseItem) (*ExpenseItem, error)
	MoveItem(personID, id int32, target Bucket) (*ExpenseItem, error)
	DeleteItem(personID, id int32) error
}
