package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD00001", FormatOrderNumber(1))
	assert.Equal(t, "ORD00042", FormatOrderNumber(42))
	assert.Equal(t, "ORD123456", FormatOrderNumber(123456))
}

func TestOrderMarshalJSON(t *testing.T) {
	cash := int64(2000)
	order := Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD00001",
		Subtotal:      1300,
		Total:         1300,
		PaymentMethod: enum.PaymentMethodCash,
		CashAmount:    &cash,
		Status:        enum.OrderStatusCompleted,
		Lines: []OrderLine{{
			LineIndex: 0,
			ItemID:    uuid.New(),
			Name:      "Latte",
			UnitPrice: 500,
			Quantity:  2,
			Modifiers: []LineModifier{{ModifierID: uuid.New(), Name: "Oat milk", Cost: 75}},
		}},
	}

	b, err := json.Marshal(order)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, 13.0, got["subtotal"])
	assert.Equal(t, 20.0, got["cash_amount"])
	assert.NotContains(t, got, "change_amount")
	assert.Equal(t, "completed", got["status"])
	assert.NotContains(t, got, "tenant_id")

	items := got["items"].([]interface{})
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, 5.0, line["price"])
	assert.Equal(t, false, line["returned"])
	mods := line["modifiers"].([]interface{})
	assert.Equal(t, 0.75, mods[0].(map[string]interface{})["cost"])
}

func TestUserTenantID(t *testing.T) {
	client := User{ID: uuid.New(), Role: enum.RoleClient}
	assert.Equal(t, client.ID, client.TenantID())

	staff := User{ID: uuid.New(), Role: enum.RoleStaff, ClientID: &client.ID}
	assert.Equal(t, client.ID, staff.TenantID())
}

func TestModifierJSONCategoryIDs(t *testing.T) {
	catID := uuid.New()
	m := Modifier{Name: "Extra shot", Cost: 100, Categories: []ModifierCategory{{CategoryID: catID}}}

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(b), catID.String())
	assert.Contains(t, string(b), `"cost":1`)
}
