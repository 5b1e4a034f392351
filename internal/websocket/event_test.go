package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_TypeFormat(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		wantType string
		entity   EntityType
	}{
		{"expense item created", ExpenseItemCreated(nil), "expense_item.created", EntityTypeExpenseItem},
		{"expense item updated", ExpenseItemUpdated(nil), "expense_item.updated", EntityTypeExpenseItem},
		{"expense item deleted", ExpenseItemDeleted(nil), "expense_item.deleted", EntityTypeExpenseItem},
		{"financing plan updated", FinancingPlanUpdated(nil), "financing_plan.updated", EntityTypeFinancingPlan},
		{"installment mark toggled", InstallmentMarkToggled(nil), "installment_mark.toggled", EntityTypeInstallmentMark},
		{"couple month updated", CoupleMonthUpdated(nil), "couple_month.updated", EntityTypeCoupleMonth},
		{"loan created", LoanCreated(nil), "loan.created", EntityTypeLoan},
		{"loan deleted", LoanDeleted(nil), "loan.deleted", EntityTypeLoan},
		{"loan payment toggled", LoanPaymentToggled(nil), "loan_payment.toggled", EntityTypeLoanPayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.event.Type)
			assert.Equal(t, tt.entity, tt.event.Entity)
			assert.False(t, tt.event.Timestamp.IsZero())
		})
	}
}

func TestEvent_ToJSON(t *testing.T) {
	event := LoanCreated(map[string]interface{}{"id": 1, "name": "Car"})

	data, err := event.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "loan.created", decoded["type"])
	assert.Equal(t, "loan", decoded["entity"])
	assert.NotNil(t, decoded["payload"])
	assert.NotEmpty(t, decoded["timestamp"])
}
