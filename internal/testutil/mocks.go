package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/gfmachado/casaflow/casaflow-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users map[string]*domain.User
	ByID  map[uuid.UUID]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name *string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:        uuid.New(),
		Auth0ID:   auth0ID,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces map[int32]*domain.Workspace
	ByUser     map[uuid.UUID]*domain.Workspace
	ByAuth0    map[string]*domain.Workspace
	nextID     int32
}

// NewMockWorkspaceRepository creates a new MockWorkspaceRepository
func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{
		Workspaces: make(map[int32]*domain.Workspace),
		ByUser:     make(map[uuid.UUID]*domain.Workspace),
		ByAuth0:    make(map[string]*domain.Workspace),
		nextID:     1,
	}
}

// GetByID retrieves a workspace by ID
func (m *MockWorkspaceRepository) GetByID(id int32) (*domain.Workspace, error) {
	if workspace, ok := m.Workspaces[id]; ok {
		return workspace, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetByUserID retrieves a workspace by user ID
func (m *MockWorkspaceRepository) GetByUserID(userID uuid.UUID) (*domain.Workspace, error) {
	if workspace, ok := m.ByUser[userID]; ok {
		return workspace, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetByUserAuth0ID retrieves a workspace by the owning user's Auth0 ID
func (m *MockWorkspaceRepository) GetByUserAuth0ID(auth0ID string) (*domain.Workspace, error) {
	if workspace, ok := m.ByAuth0[auth0ID]; ok {
		return workspace, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// Create creates a new workspace
func (m *MockWorkspaceRepository) Create(workspace *domain.Workspace) (*domain.Workspace, error) {
	workspace.ID = m.nextID
	m.nextID++
	workspace.CreatedAt = time.Now()
	m.Workspaces[workspace.ID] = workspace
	m.ByUser[workspace.UserID] = workspace
	return workspace, nil
}

// LinkAuth0 associates an Auth0 ID with an existing workspace (test helper)
func (m *MockWorkspaceRepository) LinkAuth0(auth0ID string, workspace *domain.Workspace) {
	m.ByAuth0[auth0ID] = workspace
}

// MockPersonRepository is a mock implementation of domain.PersonRepository
type MockPersonRepository struct {
	Persons map[int32]*domain.Person
	nextID  int32
}

// NewMockPersonRepository creates a new MockPersonRepository
func NewMockPersonRepository() *MockPersonRepository {
	return &MockPersonRepository{
		Persons: make(map[int32]*domain.Person),
		nextID:  1,
	}
}

// Create creates a new person
func (m *MockPersonRepository) Create(person *domain.Person) (*domain.Person, error) {
	person.ID = m.nextID
	m.nextID++
	person.CreatedAt = time.Now()
	m.Persons[person.ID] = person
	return person, nil
}

// GetByID retrieves a person scoped to a workspace
func (m *MockPersonRepository) GetByID(workspaceID, id int32) (*domain.Person, error) {
	person, ok := m.Persons[id]
	if !ok || person.WorkspaceID != workspaceID {
		return nil, domain.ErrPersonNotFound
	}
	return person, nil
}

// GetAllByWorkspace retrieves all persons of a workspace
func (m *MockPersonRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Person, error) {
	var persons []*domain.Person
	for id := int32(1); id < m.nextID; id++ {
		if person, ok := m.Persons[id]; ok && person.WorkspaceID == workspaceID {
			persons = append(persons, person)
		}
	}
	return persons, nil
}

// Rename updates a person's name
func (m *MockPersonRepository) Rename(workspaceID, id int32, name string) (*domain.Person, error) {
	person, err := m.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}
	person.Name = name
	return person, nil
}

// Delete removes a person
func (m *MockPersonRepository) Delete(workspaceID, id int32) error {
	if _, err := m.GetByID(workspaceID, id); err != nil {
		return err
	}
	delete(m.Persons, id)
	return nil
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Items  map[int32]*domain.ExpenseItem
	nextID int32
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Items:  make(map[int32]*domain.ExpenseItem),
		nextID: 1,
	}
}

// CreateItem creates a new expense item
func (m *MockExpenseRepository) CreateItem(item *domain.ExpenseItem) (*domain.ExpenseItem, error) {
	item.ID = m.nextID
	m.nextID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	m.Items[item.ID] = item
	return item, nil
}

// GetItemByID retrieves an item scoped to a person
func (m *MockExpenseRepository) GetItemByID(personID, id int32) (*domain.ExpenseItem, error) {
	item, ok := m.Items[id]
	if !ok || item.PersonID != personID {
		return nil, domain.ErrExpenseItemNotFound
	}
	return item, nil
}

// GetMonth retrieves one month's items grouped by bucket
func (m *MockExpenseRepository) GetMonth(personID int32, year, month int) (*domain.MonthRecord, error) {
	record := &domain.MonthRecord{}
	for id := int32(1); id < m.nextID; id++ {
		item, ok := m.Items[id]
		if !ok || item.PersonID != personID || item.Year != year || item.Month != month {
			continue
		}
		switch item.Bucket {
		case domain.BucketIncome:
			record.Income = append(record.Income, *item)
		case domain.BucketEssential:
			record.Essential = append(record.Essential, *item)
		case domain.BucketNonEssential:
			record.NonEssential = append(record.NonEssential, *item)
		}
	}
	return record, nil
}

// GetYear retrieves all months of a year that have items
func (m *MockExpenseRepository) GetYear(personID int32, year int) (map[int]*domain.MonthRecord, error) {
	months := make(map[int]*domain.MonthRecord)
	for month := 1; month <= 12; month++ {
		record, err := m.GetMonth(personID, year, month)
		if err != nil {
			return nil, err
		}
		if len(record.Income)+len(record.Essential)+len(record.NonEssential) > 0 {
			months[month] = record
		}
	}
	return months, nil
}

// UpdateItem updates an existing item
func (m *MockExpenseRepository) UpdateItem(item *domain.ExpenseItem) (*domain.ExpenseItem, error) {
	existing, ok := m.Items[item.ID]
	if !ok || existing.PersonID != item.PersonID {
		return nil, domain.ErrExpenseItemNotFound
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()
	m.Items[item.ID] = item
	return item, nil
}

// MoveItem moves an item to another bucket in a single step
func (m *MockExpenseRepository) MoveItem(personID, id int32, target domain.Bucket) (*domain.ExpenseItem, error) {
	item, err := m.GetItemByID(personID, id)
	if err != nil {
		return nil, err
	}
	item.Bucket = target
	item.UpdatedAt = time.Now()
	return item, nil
}

// DeleteItem removes an item
func (m *MockExpenseRepository) DeleteItem(personID, id int32) error {
	if _, err := m.GetItemByID(personID, id); err != nil {
		return err
	}
	delete(m.Items, id)
	return nil
}

// MockFinancingRepository is a mock implementation of domain.FinancingRepository
type MockFinancingRepository struct {
	Plans map[int32]*domain.FinancingPlan
	Marks map[int32]map[int]domain.InstallmentMark
}

// NewMockFinancingRepository creates a new MockFinancingRepository
func NewMockFinancingRepository() *MockFinancingRepository {
	return &MockFinancingRepository{
		Plans: make(map[int32]*domain.FinancingPlan),
		Marks: make(map[int32]map[int]domain.InstallmentMark),
	}
}

// GetPlan retrieves a workspace's financing plan
func (m *MockFinancingRepository) GetPlan(workspaceID int32) (*domain.FinancingPlan, error) {
	if plan, ok := m.Plans[workspaceID]; ok {
		return plan, nil
	}
	return nil, domain.ErrFinancingPlanNotFound
}

// SavePlan upserts a workspace's financing plan
func (m *MockFinancingRepository) SavePlan(plan *domain.FinancingPlan) (*domain.FinancingPlan, error) {
	plan.UpdatedAt = time.Now()
	m.Plans[plan.WorkspaceID] = plan
	return plan, nil
}

// GetMarks retrieves all paid installment marks of a workspace
func (m *MockFinancingRepository) GetMarks(workspaceID int32) ([]domain.InstallmentMark, error) {
	var marks []domain.InstallmentMark
	for _, mark := range m.Marks[workspaceID] {
		marks = append(marks, mark)
	}
	return marks, nil
}

// SetMark records or clears a paid installment mark
func (m *MockFinancingRepository) SetMark(workspaceID int32, number int, paid bool, paidAt time.Time) error {
	if m.Marks[workspaceID] == nil {
		m.Marks[workspaceID] = make(map[int]domain.InstallmentMark)
	}
	if paid {
		m.Marks[workspaceID][number] = domain.InstallmentMark{Number: number, PaidAt: paidAt}
	} else {
		delete(m.Marks[workspaceID], number)
	}
	return nil
}

// MockCoupleRepository is a mock implementation of domain.CoupleRepository
type MockCoupleRepository struct {
	Months map[string]*domain.CoupleMonth
	nextID int32
}

// NewMockCoupleRepository creates a new MockCoupleRepository
func NewMockCoupleRepository() *MockCoupleRepository {
	return &MockCoupleRepository{
		Months: make(map[string]*domain.CoupleMonth),
		nextID: 1,
	}
}

func coupleKey(workspaceID int32, year, month int) string {
	return fmt.Sprintf("%d-%d-%d", workspaceID, year, month)
}

// GetMonth retrieves a couple month record
func (m *MockCoupleRepository) GetMonth(workspaceID int32, year, month int) (*domain.CoupleMonth, error) {
	if record, ok := m.Months[coupleKey(workspaceID, year, month)]; ok {
		return record, nil
	}
	return nil, domain.ErrCoupleMonthNotFound
}

// UpsertMonth creates or replaces a couple month record, keeping accounts
func (m *MockCoupleRepository) UpsertMonth(month *domain.CoupleMonth) (*domain.CoupleMonth, error) {
	key := coupleKey(month.WorkspaceID, month.Year, month.Month)
	if existing, ok := m.Months[key]; ok {
		month.Accounts = existing.Accounts
	}
	if month.Accounts == nil {
		month.Accounts = []domain.SharedAccount{}
	}
	month.UpdatedAt = time.Now()
	m.Months[key] = month
	return month, nil
}

// AddAccount adds a shared account to a month, creating the month if needed
func (m *MockCoupleRepository) AddAccount(workspaceID int32, year, month int, label string, amount decimal.Decimal) (*domain.SharedAccount, error) {
	key := coupleKey(workspaceID, year, month)
	record, ok := m.Months[key]
	if !ok {
		record = &domain.CoupleMonth{WorkspaceID: workspaceID, Year: year, Month: month}
		m.Months[key] = record
	}
	account := domain.SharedAccount{ID: m.nextID, Label: label, Amount: amount}
	m.nextID++
	record.Accounts = append(record.Accounts, account)
	return &record.Accounts[len(record.Accounts)-1], nil
}

// UpdateAccount edits a shared account
func (m *MockCoupleRepository) UpdateAccount(workspaceID, id int32, label string, amount decimal.Decimal) (*domain.SharedAccount, error) {
	for _, record := range m.Months {
		if record.WorkspaceID != workspaceID {
			continue
		}
		for i := range record.Accounts {
			if record.Accounts[i].ID == id {
				record.Accounts[i].Label = label
				record.Accounts[i].Amount = amount
				return &record.Accounts[i], nil
			}
		}
	}
	return nil, domain.ErrSharedAccountNotFound
}

// DeleteAccount removes a shared account
func (m *MockCoupleRepository) DeleteAccount(workspaceID, id int32) error {
	for _, record := range m.Months {
		if record.WorkspaceID != workspaceID {
			continue
		}
		for i := range record.Accounts {
			if record.Accounts[i].ID == id {
				record.Accounts = append(record.Accounts[:i], record.Accounts[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrSharedAccountNotFound
}

// MockLoanRepository is a mock implementation of domain.LoanRepository
type MockLoanRepository struct {
	Loans  map[int32]*domain.Loan
	nextID int32
}

// NewMockLoanRepository creates a new MockLoanRepository
func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{
		Loans:  make(map[int32]*domain.Loan),
		nextID: 1,
	}
}

// Create creates a new loan with its payments
func (m *MockLoanRepository) Create(loan *domain.Loan) (*domain.Loan, error) {
	loan.ID = m.nextID
	m.nextID++
	loan.CreatedAt = time.Now()
	m.Loans[loan.ID] = loan
	return loan, nil
}

// GetByID retrieves a loan scoped to a workspace
func (m *MockLoanRepository) GetByID(workspaceID, id int32) (*domain.Loan, error) {
	loan, ok := m.Loans[id]
	if !ok || loan.WorkspaceID != workspaceID {
		return nil, domain.ErrLoanNotFound
	}
	return loan, nil
}

// GetAllByWorkspace retrieves all loans of a workspace
func (m *MockLoanRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Loan, error) {
	var loans []*domain.Loan
	for id := int32(1); id < m.nextID; id++ {
		if loan, ok := m.Loans[id]; ok && loan.WorkspaceID == workspaceID {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

// SetPaymentPaid flips one payment's paid flag and date
func (m *MockLoanRepository) SetPaymentPaid(workspaceID, loanID int32, number int, paid bool, paidAt *time.Time) (*domain.Loan, error) {
	loan, err := m.GetByID(workspaceID, loanID)
	if err != nil {
		return nil, err
	}
	payment, err := loan.Payment(number)
	if err != nil {
		return nil, err
	}
	payment.Paid = paid
	payment.PaidAt = paidAt
	return loan, nil
}

// Delete removes a loan
func (m *MockLoanRepository) Delete(workspaceID, id int32) error {
	if _, err := m.GetByID(workspaceID, id); err != nil {
		return err
	}
	delete(m.Loans, id)
	return nil
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent is one captured Publish call
type PublishedEvent struct {
	WorkspaceID int32
	Event       websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(workspaceID int32, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{WorkspaceID: workspaceID, Event: event})
}

// EventTypes returns the types of all recorded events in order
func (m *MockEventPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, published := range m.Events {
		types[i] = published.Event.Type
	}
	return types
}

// MockAdviceProvider is a mock implementation of domain.AdviceProvider
type MockAdviceProvider struct {
	Advice    string
	Err       error
	LastInput domain.AdviceInput
	Calls     int
}

// GetAdvice records the input and returns the canned response
func (m *MockAdviceProvider) GetAdvice(ctx context.Context, input domain.AdviceInput) (string, error) {
	m.Calls++
	m.LastInput = input
	if m.Err != nil {
		return "", m.Err
	}
	return m.Advice, nil
}
