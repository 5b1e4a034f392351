package service

import (
	"strings"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/util"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// ExpenseService handles the expense tracker: persons and their per-month
// income/expense items.
type ExpenseService struct {
	personRepo  domain.PersonRepository
	expenseRepo domain.ExpenseRepository
	publisher   websocket.EventPublisher
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(personRepo domain.PersonRepository, expenseRepo domain.ExpenseRepository, publisher websocket.EventPublisher) *ExpenseService {
	return &ExpenseService{
		personRepo:  personRepo,
		expenseRepo: expenseRepo,
		publisher:   publisher,
	}
}

// CreatePerson adds a tracked person (a new expense sub-tab) to the workspace.
func (s *ExpenseService) CreatePerson(workspaceID int32, name string) (*domain.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	return s.personRepo.Create(&domain.Person{WorkspaceID: workspaceID, Name: name})
}

// GetPersons lists the workspace's tracked persons.
func (s *ExpenseService) GetPersons(workspaceID int32) ([]*domain.Person, error) {
	return s.personRepo.GetAllByWorkspace(workspaceID)
}

// RenamePerson changes a person's display name.
func (s *ExpenseService) RenamePerson(workspaceID, id int32, name string) (*domain.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	return s.personRepo.Rename(workspaceID, id, name)
}

// DeletePerson removes a person and all their items.
func (s *ExpenseService) DeletePerson(workspaceID, id int32) error {
	if _, err := s.personRepo.GetByID(workspaceID, id); err != nil {
		return err
	}
	return s.personRepo.Delete(workspaceID, id)
}

// GetMonth returns one (person, year, month) record. A month with no items
// is an empty record, never an error.
func (s *ExpenseService) GetMonth(workspaceID, personID int32, year, month int) (*domain.MonthRecord, error) {
	if !util.IsValidMonth(month) {
		return nil, domain.ErrMonthInvalid
	}
	if _, err := s.personRepo.GetByID(workspaceID, personID); err != nil {
		return nil, err
	}
	return s.expenseRepo.GetMonth(personID, year, month)
}

// AddItemInput contains input for adding an expense item
type AddItemInput struct {
	Year     int
	Month    int
	Bucket   domain.Bucket
	Label    string
	Amount   decimal.Decimal
	Category *string
}

// AddItem creates a new line item in one bucket of a month. Validation
// failures create nothing.
func (s *ExpenseService) AddItem(workspaceID, personID int32, input AddItemInput) (*domain.ExpenseItem, error) {
	if _, err := s.personRepo.GetByID(workspaceID, personID); err != nil {
		return nil, err
	}

	item := &domain.ExpenseItem{
		PersonID: personID,
		Year:     input.Year,
		Month:    input.Month,
		Bucket:   input.Bucket,
		Label:    strings.TrimSpace(input.Label),
		Amount:   input.Amount,
		Category: input.Category,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	created, err := s.expenseRepo.CreateItem(item)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(workspaceID, websocket.ExpenseItemCreated(created))
	return created, nil
}

// UpdateItem edits an item's label, amount, or category in place.
func (s *ExpenseService) UpdateItem(workspaceID, personID, id int32, label string, amount decimal.Decimal, category *string) (*domain.ExpenseItem, error) {
	if _, err := s.personRepo.GetByID(workspaceID, personID); err != nil {
		return nil, err
	}

	item, err := s.expenseRepo.GetItemByID(personID, id)
	if err != nil {
		return nil, err
	}
	item.Label = strings.TrimSpace(label)
	item.Amount = amount
	item.Category = category
	if err := item.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.expenseRepo.UpdateItem(item)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(workspaceID, websocket.ExpenseItemUpdated(updated))
	return updated, nil
}

// MoveItem reassigns an item to another bucket of the same month in a single
// atomic operation, preserving its identity. Moving to the bucket it is
// already in is a no-op.
func (s *ExpenseService) MoveItem(workspaceID, personID, id int32, target domain.Bucket) (*domain.ExpenseItem, error) {
	if !target.Valid() {
		return nil, domain.ErrBucketInvalid
	}
	if _, err := s.personRepo.GetByID(workspaceID, personID); err != nil {
		return nil, err
	}

	item, err := s.expenseRepo.GetItemByID(personID, id)
	if err != nil {
		return nil, err
	}
	if item.Bucket == target {
		return item, nil
	}

	moved, err := s.expenseRepo.MoveItem(personID, id, target)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(workspaceID, websocket.ExpenseItemUpdated(moved))
	return moved, nil
}

// DeleteItem removes an item from its bucket.
func (s *ExpenseService) DeleteItem(workspaceID, personID, id int32) error {
	if _, err := s.personRepo.GetByID(workspaceID, personID); err != nil {
		return err
	}
	item, err := s.expenseRepo.GetItemByID(personID, id)
	if err != nil {
		return err
	}
	if err := s.expenseRepo.DeleteItem(personID, id); err != nil {
		return err
	}
	s.publisher.Publish(workspaceID, websocket.ExpenseItemDeleted(item))
	return nil
}
