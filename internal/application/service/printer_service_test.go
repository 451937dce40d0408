package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintOrderReceipt(t *testing.T) {
	env := newTestEnv(t)
	ctx, client := env.newTenant(t, "0811")

	l := line(uuid.New(), "Latte", 450, 2)
	l.Modifiers = []entity.LineModifier{{Name: "Oat milk", Cost: 60}}
	in := cashOrder(client.ID, l)
	in.CashAmount = cents(1000)
	order, err := env.orders.CreateOrder(ctx, in)
	require.NoError(t, err)

	receipt, err := env.printing.PrintOrderReceipt(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shop 0811", receipt.Header.StoreName)
	assert.Equal(t, "9.00", receipt.Total)
	assert.Equal(t, "1.00", receipt.Change)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, "0.60", receipt.Items[0].Modifiers[0].Cost)

	jobs := env.printer.Jobs()
	require.Len(t, jobs, 1)
	text := string(jobs[0])
	assert.Contains(t, text, "ORD00001")
	assert.Contains(t, text, "2x Latte")
	assert.Contains(t, text, "+ Oat milk")
	assert.NotContains(t, text, "REFUNDED")

	_, err = env.printing.PrintOrderReceipt(ctx, uuid.New())
	assertKind(t, err, apperror.KindNotFound)
}

func TestFormatReceiptMarksRefund(t *testing.T) {
	r := &entity.Receipt{
		Header:        entity.ReceiptHeader{StoreName: "Corner Shop"},
		OrderNumber:   "ORD00042",
		PaymentMethod: "qr",
		Items:         []entity.ReceiptItem{{Name: "Tea", Quantity: 1, UnitPrice: "2.00", Total: "2.00", Returned: true}},
		Subtotal:      "2.00",
		Discount:      "0.20",
		DiscountLabel: "Discount (10%)",
		Total:         "1.80",
		Refunded:      true,
	}

	text := string(FormatReceipt(r, 32))
	assert.Contains(t, text, "*** REFUNDED ***")
	assert.Contains(t, text, "(returned)")
	assert.Contains(t, text, "-0.20")
	for _, l := range strings.Split(text, "\n") {
		assert.LessOrEqual(t, len([]rune(l)), 32+8, l)
	}
}

func TestPrinterStatus(t *testing.T) {
	env := newTestEnv(t)
	st := env.printing.GetStatus(context.Background())
	assert.True(t, st.Configured)
	assert.True(t, st.Connected)
}
