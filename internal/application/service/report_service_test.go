package service

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/sangkips/gopos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func reportOrder(at time.Duration, method enum.PaymentMethod, status enum.OrderStatus, total, discount int64, lines ...entity.OrderLine) entity.Order {
	for i := range lines {
		lines[i].LineIndex = i
	}
	return entity.Order{
		ID:             uuid.New(),
		Total:          total,
		Subtotal:       total + discount,
		DiscountAmount: discount,
		PaymentMethod:  method,
		Status:         status,
		CreatedAt:      day.Add(at),
		Lines:          lines,
	}
}

func soldLine(id uuid.UUID, name string, price int64, qty int) entity.OrderLine {
	return entity.OrderLine{ItemID: id, Name: name, UnitPrice: price, Quantity: qty}
}

func TestEmptyReportIsZero(t *testing.T) {
	report := BuildSalesReport(nil, ReportWindow{Start: day, End: endOfDay(day)})

	assert.Zero(t, report.TotalSales)
	assert.Zero(t, report.ReturnSales)
	assert.Zero(t, report.TotalDiscount)
	assert.Zero(t, report.QtySold)
	assert.Zero(t, report.CashSales)
	assert.Zero(t, report.QRSales)
	assert.Zero(t, report.TotalOrders)
	assert.Equal(t, "2026-03-14", report.StartDate)
	assert.Equal(t, "2026-03-14", report.EndDate)

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"top_items":[]`)
	assert.Contains(t, string(raw), `"by_payment_method":[]`)
}

func TestReportTotals(t *testing.T) {
	tea, cake := uuid.New(), uuid.New()
	orders := []entity.Order{
		reportOrder(time.Hour, enum.PaymentMethodCash, enum.OrderStatusCompleted, 1000, 100,
			soldLine(tea, "Tea", 200, 3), soldLine(cake, "Cake", 500, 1)),
		reportOrder(2*time.Hour, enum.PaymentMethodQR, enum.OrderStatusCompleted, 450, 0,
			soldLine(cake, "Cake", 450, 1)),
		reportOrder(3*time.Hour, enum.PaymentMethodCash, enum.OrderStatusRefunded, 700, 50,
			soldLine(tea, "Tea", 200, 4)),
	}
	// Partially returned lines still count as sold.
	orders[0].Lines[1].Returned = true

	report := BuildSalesReport(orders, ReportWindow{Start: day, End: endOfDay(day)})

	assert.Equal(t, 14.5, report.TotalSales)
	assert.Equal(t, 7.0, report.ReturnSales)
	assert.Equal(t, 1.0, report.TotalDiscount)
	assert.Equal(t, 5, report.QtySold)
	assert.Equal(t, 10.0, report.CashSales)
	assert.Equal(t, 4.5, report.QRSales)
	assert.Equal(t, 2, report.TotalOrders)
	assert.Equal(t, 1, report.RefundedOrders)

	require.Len(t, report.ByPaymentMethod, 2)
	assert.Equal(t, PaymentMethodTotal{PaymentMethod: enum.PaymentMethodCash, Total: 10, Count: 1}, report.ByPaymentMethod[0])
	assert.Equal(t, PaymentMethodTotal{PaymentMethod: enum.PaymentMethodQR, Total: 4.5, Count: 1}, report.ByPaymentMethod[1])

	require.Len(t, report.TopItems, 2)
	assert.Equal(t, TopItem{ItemID: tea, Name: "Tea", Quantity: 3, Revenue: 6}, report.TopItems[0])
	assert.Equal(t, TopItem{ItemID: cake, Name: "Cake", Quantity: 2, Revenue: 9.5}, report.TopItems[1])
}

func TestTopItemsTieBreakAndLimit(t *testing.T) {
	var lines []entity.OrderLine
	ids := make([]uuid.UUID, 12)
	for i := range ids {
		ids[i] = uuid.New()
		lines = append(lines, soldLine(ids[i], fmt.Sprintf("Item %02d", i), 100, 1))
	}
	// Item 11 outsells the rest; the others tie on quantity.
	lines[11].Quantity = 5

	late := reportOrder(2*time.Hour, enum.PaymentMethodCash, enum.OrderStatusCompleted, 100, 0, lines[6:]...)
	early := reportOrder(time.Hour, enum.PaymentMethodCash, enum.OrderStatusCompleted, 100, 0, lines[:6]...)

	report := BuildSalesReport([]entity.Order{late, early}, ReportWindow{Start: day, End: endOfDay(day)})

	require.Len(t, report.TopItems, 10)
	assert.Equal(t, ids[11], report.TopItems[0].ItemID)
	for i := 1; i < 10; i++ {
		assert.Equal(t, ids[i-1], report.TopItems[i].ItemID, "position %d", i)
		assert.GreaterOrEqual(t, report.TopItems[i-1].Quantity, report.TopItems[i].Quantity)
	}
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

	w, err := ResolveWindow(WindowQuery{}, now)
	require.NoError(t, err)
	assert.Equal(t, day, w.Start)
	assert.Equal(t, time.Date(2026, 3, 14, 23, 59, 59, 999999000, time.UTC), w.End)

	w, err = ResolveWindow(WindowQuery{Date: "2026-01-02"}, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), w.Start)

	w, err = ResolveWindow(WindowQuery{StartDate: "2026-01-01", EndDate: "2026-01-31", Date: "2026-02-01"}, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, 999999000, time.UTC), w.End)

	w, err = ResolveWindow(WindowQuery{StartDate: "2026-01-01T08:00:00Z", EndDate: "2026-01-01T17:00:00+02:00"}, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC), w.End)

	_, err = ResolveWindow(WindowQuery{StartDate: "2026-01-01"}, now)
	assertKind(t, err, apperror.KindBadRequest)
	_, err = ResolveWindow(WindowQuery{EndDate: "2026-01-31", Date: "2026-01-02"}, now)
	assertKind(t, err, apperror.KindBadRequest)

	_, err = ResolveWindow(WindowQuery{Date: "14/03/2026"}, now)
	assertKind(t, err, apperror.KindBadRequest)

	_, err = ResolveWindow(WindowQuery{StartDate: "2026-02-01", EndDate: "2026-01-01"}, now)
	assertKind(t, err, apperror.KindBadRequest)
}

func TestSalesReportMatchesLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx, client := env.newTenant(t, "0811")

	var want int64
	for i := 1; i <= 5; i++ {
		env.clock.advance(time.Minute)
		in := cashOrder(client.ID, line(uuid.New(), "Tea", int64(i*150), 1))
		want += in.Total
		_, err := env.orders.CreateOrder(ctx, in)
		require.NoError(t, err)
	}

	// Next day: outside the window.
	env.clock.advance(24 * time.Hour)
	_, err := env.orders.CreateOrder(ctx, cashOrder(client.ID, line(uuid.New(), "Tea", 999, 1)))
	require.NoError(t, err)

	report, err := env.reports.GetSalesReport(ctx, WindowQuery{Date: "2026-03-14"})
	require.NoError(t, err)
	assert.Equal(t, float64(want)/100, report.TotalSales)
	assert.Equal(t, 5, report.TotalOrders)
}

func TestOrdersListFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx, client := env.newTenant(t, "0811")

	first, err := env.orders.CreateOrder(ctx, cashOrder(client.ID, line(uuid.New(), "Tea", 200, 1)))
	require.NoError(t, err)
	env.clock.advance(time.Minute)
	second, err := env.orders.CreateOrder(ctx, cashOrder(client.ID, line(uuid.New(), "Cake", 300, 1)))
	require.NoError(t, err)
	_, err = env.orders.RefundOrder(ctx, first.ID, client.ID)
	require.NoError(t, err)

	q := WindowQuery{StartDate: "2026-03-14", EndDate: "2026-03-14"}

	all, err := env.reports.GetOrdersList(ctx, q, "all")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
	assert.Equal(t, 1, all[1].ReturnedCount)

	refunded, err := env.reports.GetOrdersList(ctx, q, "refunded")
	require.NoError(t, err)
	require.Len(t, refunded, 1)
	assert.Equal(t, first.ID, refunded[0].ID)

	completed, err := env.reports.GetOrdersList(ctx, q, "completed")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, second.ID, completed[0].ID)

	unfiltered, err := env.reports.GetOrdersList(ctx, q, "")
	require.NoError(t, err)
	assert.Len(t, unfiltered, 2)

	_, err = env.reports.GetOrdersList(ctx, q, "pending")
	assertKind(t, err, apperror.KindBadRequest)
}
