package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypeToggled EventType = "toggled"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeExpenseItem     EntityType = "expense_item"
	EntityTypePerson          EntityType = "person"
	EntityTypeFinancingPlan   EntityType = "financing_plan"
	EntityTypeInstallmentMark EntityType = "installment_mark"
	EntityTypeCoupleMonth     EntityType = "couple_month"
	EntityTypeLoan            EntityType = "loan"
	EntityTypeLoanPayment     EntityType = "loan_payment"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "loan.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "loan"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseItemCreated creates an expense_item.created event
func ExpenseItemCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeExpenseItem, payload)
}

// ExpenseItemUpdated creates an expense_item.updated event
func ExpenseItemUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeExpenseItem, payload)
}

// ExpenseItemDeleted creates an expense_item.deleted event
func ExpenseItemDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeExpenseItem, payload)
}

// FinancingPlanUpdated creates a financing_plan.updated event
func FinancingPlanUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeFinancingPlan, payload)
}

// InstallmentMarkToggled creates an installment_mark.toggled event
func InstallmentMarkToggled(payload interface{}) Event {
	return NewEvent(EventTypeToggled, EntityTypeInstallmentMark, payload)
}

// CoupleMonthUpdated creates a couple_month.updated event
func CoupleMonthUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCoupleMonth, payload)
}

// LoanCreated creates a loan.created event
func LoanCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeLoan, payload)
}

// LoanDeleted creates a loan.deleted event
func LoanDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeLoan, payload)
}

// LoanPaymentToggled creates a loan_payment.toggled event
func LoanPaymentToggled(payload interface{}) Event {
	return NewEvent(EventTypeToggled, EntityTypeLoanPayment, payload)
}
