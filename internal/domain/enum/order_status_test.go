package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusJSON(t *testing.T) {
	b, err := json.Marshal(OrderStatusRefunded)
	require.NoError(t, err)
	assert.Equal(t, `"refunded"`, string(b))

	var s OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`"completed"`), &s))
	assert.Equal(t, OrderStatusCompleted, s)

	require.NoError(t, json.Unmarshal([]byte(`1`), &s))
	assert.Equal(t, OrderStatusRefunded, s)

	assert.Error(t, json.Unmarshal([]byte(`"cancelled"`), &s))
}

func TestOrderStatusScan(t *testing.T) {
	var s OrderStatus
	require.NoError(t, s.Scan(int64(1)))
	assert.Equal(t, OrderStatusRefunded, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, OrderStatusCompleted, s)

	assert.Error(t, s.Scan("refunded"))
}

func TestPaymentMethodAndRole(t *testing.T) {
	assert.True(t, PaymentMethodCash.IsValid())
	assert.True(t, PaymentMethod("qr").IsValid())
	assert.False(t, PaymentMethod("card").IsValid())

	assert.True(t, RoleStaff.IsValid())
	assert.False(t, Role("owner").IsValid())
}
