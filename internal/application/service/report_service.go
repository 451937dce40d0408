package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/sangkips/gopos-api/internal/domain/repository"
	"github.com/sangkips/gopos-api/pkg/apperror"
	"github.com/sangkips/gopos-api/pkg/money"
)

const (
	dateLayout   = "2006-01-02"
	topItemLimit = 10
)

// ReportService aggregates the order ledger over a time window
type ReportService struct {
	orderRepo repository.OrderRepository
	now       func() time.Time
}

// NewReportService creates a new report service
func NewReportService(orderRepo repository.OrderRepository) *ReportService {
	return &ReportService{
		orderRepo: orderRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ReportWindow is an inclusive created_at range in UTC
type ReportWindow struct {
	Start time.Time
	End   time.Time
}

// WindowQuery holds the raw date query parameters of a report request
type WindowQuery struct {
	Date      string
	StartDate string
	EndDate   string
}

// ResolveWindow picks the report window: start_date and end_date when both
// are set, otherwise the single date, otherwise today. A lone start_date or
// end_date is rejected. Bounds given as
// YYYY-MM-DD cover whole UTC days; RFC 3339 timestamps are used as given.
func ResolveWindow(q WindowQuery, now time.Time) (ReportWindow, error) {
	if (q.StartDate == "") != (q.EndDate == "") {
		return ReportWindow{}, apperror.NewBadRequestError("start_date and end_date must be given together")
	}
	if q.StartDate != "" {
		start, _, err := parseBound(q.StartDate, "start_date")
		if err != nil {
			return ReportWindow{}, err
		}
		end, wholeDay, err := parseBound(q.EndDate, "end_date")
		if err != nil {
			return ReportWindow{}, err
		}
		if wholeDay {
			end = endOfDay(end)
		}
		if end.Before(start) {
			return ReportWindow{}, apperror.NewBadRequestError("start_date must not be after end_date")
		}
		return ReportWindow{Start: start, End: end}, nil
	}

	day := now.UTC().Truncate(24 * time.Hour)
	if q.Date != "" {
		d, err := time.ParseInLocation(dateLayout, q.Date, time.UTC)
		if err != nil {
			return ReportWindow{}, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
		}
		day = d
	}
	return ReportWindow{Start: day, End: endOfDay(day)}, nil
}

// parseBound accepts YYYY-MM-DD or an RFC 3339 timestamp and reports
// whether the value was a bare date.
func parseBound(value, field string) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(dateLayout, value, time.UTC); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, apperror.NewBadRequestError("Invalid " + field + ", expected YYYY-MM-DD")
}

// endOfDay returns 23:59:59.999999 of day
func endOfDay(day time.Time) time.Time {
	return day.Add(24*time.Hour - time.Microsecond)
}

// TopItem is one entry of the best sellers list
type TopItem struct {
	ItemID   uuid.UUID `json:"item_id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	Revenue  float64   `json:"revenue"`
}

// PaymentMethodTotal sums completed orders of one payment method
type PaymentMethodTotal struct {
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Total         float64            `json:"total"`
	Count         int                `json:"count"`
}

// SalesReport is the rollup of one window
type SalesReport struct {
	StartDate       string               `json:"start_date"`
	EndDate         string               `json:"end_date"`
	TotalSales      float64              `json:"total_sales"`
	ReturnSales     float64              `json:"return_sales"`
	TotalDiscount   float64              `json:"total_discount"`
	QtySold         int                  `json:"qty_sold"`
	CashSales       float64              `json:"cash_sales"`
	QRSales         float64              `json:"qr_sales"`
	TotalOrders     int                  `json:"total_orders"`
	RefundedOrders  int                  `json:"refunded_orders"`
	ByPaymentMethod []PaymentMethodTotal `json:"by_payment_method"`
	TopItems        []TopItem            `json:"top_items"`
}

// GetSalesReport computes the sales report of the current tenant
func (s *ReportService) GetSalesReport(ctx context.Context, q WindowQuery) (*SalesReport, error) {
	window, err := ResolveWindow(q, s.now())
	if err != nil {
		return nil, err
	}

	orders, _, err := s.orderRepo.List(ctx, &repository.OrderFilterParams{
		StartDate: &window.Start,
		EndDate:   &window.End,
		SortOrder: "asc",
	})
	if err != nil {
		return nil, err
	}

	return BuildSalesReport(orders, window), nil
}

type itemTally struct {
	id       uuid.UUID
	name     string
	quantity int
	revenue  int64
}

// BuildSalesReport aggregates orders into a report. Refunded orders only
// count towards return_sales and refunded_orders. Top items are ranked by
// quantity; ties keep the order in which items first appear when orders
// are scanned oldest first.
func BuildSalesReport(orders []entity.Order, window ReportWindow) *SalesReport {
	scan := make([]entity.Order, len(orders))
	copy(scan, orders)
	sort.SliceStable(scan, func(i, j int) bool {
		return scan[i].CreatedAt.Before(scan[j].CreatedAt)
	})

	var totalSales, returnSales, totalDiscount int64
	byMethod := make(map[enum.PaymentMethod]*PaymentMethodTotal)
	methodCents := make(map[enum.PaymentMethod]int64)
	tallies := make(map[uuid.UUID]*itemTally)
	var ranked []*itemTally

	report := &SalesReport{
		StartDate:       window.Start.Format(dateLayout),
		EndDate:         window.End.Format(dateLayout),
		ByPaymentMethod: []PaymentMethodTotal{},
		TopItems:        []TopItem{},
	}

	for i := range scan {
		order := &scan[i]
		if order.IsRefunded() {
			returnSales += order.Total
			report.RefundedOrders++
			continue
		}

		report.TotalOrders++
		totalSales += order.Total
		totalDiscount += order.DiscountAmount
		methodCents[order.PaymentMethod] += order.Total
		if byMethod[order.PaymentMethod] == nil {
			byMethod[order.PaymentMethod] = &PaymentMethodTotal{PaymentMethod: order.PaymentMethod}
		}
		byMethod[order.PaymentMethod].Count++

		lines := make([]entity.OrderLine, len(order.Lines))
		copy(lines, order.Lines)
		sort.SliceStable(lines, func(a, b int) bool { return lines[a].LineIndex < lines[b].LineIndex })

		for _, line := range lines {
			report.QtySold += line.Quantity
			t, ok := tallies[line.ItemID]
			if !ok {
				t = &itemTally{id: line.ItemID, name: line.Name}
				tallies[line.ItemID] = t
				ranked = append(ranked, t)
			}
			t.quantity += line.Quantity
			t.revenue += line.Revenue()
		}
	}

	report.TotalSales = money.ToFloat(totalSales)
	report.ReturnSales = money.ToFloat(returnSales)
	report.TotalDiscount = money.ToFloat(totalDiscount)
	report.CashSales = money.ToFloat(methodCents[enum.PaymentMethodCash])
	report.QRSales = money.ToFloat(methodCents[enum.PaymentMethodQR])

	for _, method := range enum.PaymentMethods {
		if m, ok := byMethod[method]; ok {
			m.Total = money.ToFloat(methodCents[method])
			report.ByPaymentMethod = append(report.ByPaymentMethod, *m)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].quantity > ranked[j].quantity })
	if len(ranked) > topItemLimit {
		ranked = ranked[:topItemLimit]
	}
	for _, t := range ranked {
		report.TopItems = append(report.TopItems, TopItem{
			ItemID:   t.id,
			Name:     t.name,
			Quantity: t.quantity,
			Revenue:  money.ToFloat(t.revenue),
		})
	}

	return report
}

// OrderSummary is the list view of an order
type OrderSummary struct {
	ID              uuid.UUID          `json:"id"`
	OrderNumber     string             `json:"order_number"`
	Subtotal        float64            `json:"subtotal"`
	DiscountAmount  float64            `json:"discount_amount"`
	Total           float64            `json:"total"`
	PaymentMethod   enum.PaymentMethod `json:"payment_method"`
	Status          enum.OrderStatus   `json:"status"`
	SalesPersonName string             `json:"sales_person_name"`
	ItemCount       int                `json:"item_count"`
	ReturnedCount   int                `json:"returned_count"`
	CreatedAt       time.Time          `json:"created_at"`
	RefundedAt      *time.Time         `json:"refunded_at,omitempty"`
}

// NewOrderSummary builds the list view of order
func NewOrderSummary(order *entity.Order) OrderSummary {
	return OrderSummary{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Subtotal:        money.ToFloat(order.Subtotal),
		DiscountAmount:  money.ToFloat(order.DiscountAmount),
		Total:           money.ToFloat(order.Total),
		PaymentMethod:   order.PaymentMethod,
		Status:          order.Status,
		SalesPersonName: order.SalesPersonName,
		ItemCount:       len(order.Lines),
		ReturnedCount:   order.ReturnedLines(),
		CreatedAt:       order.CreatedAt,
		RefundedAt:      order.RefundedAt,
	}
}

// GetOrdersList lists the orders of a window, newest first. status is one
// of all, completed or refunded; empty means all. A completed order with
// some returned lines is still completed.
func (s *ReportService) GetOrdersList(ctx context.Context, q WindowQuery, status string) ([]OrderSummary, error) {
	params := &repository.OrderFilterParams{SortOrder: "desc"}

	switch status {
	case "", "all":
	case "completed", "refunded":
		st, err := enum.ParseOrderStatus(status)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid status")
		}
		params.Status = &st
	default:
		return nil, apperror.NewBadRequestError("Invalid status, expected all, completed or refunded")
	}

	window, err := ResolveWindow(q, s.now())
	if err != nil {
		return nil, err
	}
	params.StartDate = &window.Start
	params.EndDate = &window.End

	orders, _, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, NewOrderSummary(&orders[i]))
	}
	return summaries, nil
}
