package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/sangkips/gopos-api/internal/domain/repository"
	infraRepo "github.com/sangkips/gopos-api/internal/infrastructure/repository"
	"github.com/sangkips/gopos-api/pkg/apperror"
	"github.com/sangkips/gopos-api/pkg/money"
	"github.com/sangkips/gopos-api/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	printerType string
	width       int
	storeName   string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	printerType string,
	width int,
	storeName string,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		printerType: printerType,
		width:       width,
		storeName:   storeName,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Target     string `json:"target,omitempty"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	st := s.printer.Status(ctx)
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  st.Connected,
		Type:       st.Type,
		Target:     st.Target,
	}
}

// PrintOrderReceipt fetches an order and prints its receipt. The receipt is
// returned even when printing fails so the caller can show it on screen.
func (s *PrinterService) PrintOrderReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	receipt := NewReceipt(order, s.header(ctx))

	data := FormatReceipt(receipt, s.width)
	if err := s.printer.Print(ctx, data); err != nil {
		log.Printf("Printer error (order %s): %v", order.OrderNumber, err)
		return receipt, apperror.NewUnavailableError(fmt.Sprintf("Failed to print receipt: %v", err))
	}

	return receipt, nil
}

// header uses the tenant's company details, falling back to the
// configured store name.
func (s *PrinterService) header(ctx context.Context) entity.ReceiptHeader {
	h := entity.ReceiptHeader{StoreName: s.storeName}

	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return h
	}
	owner, err := s.userRepo.GetByID(ctx, tenantID)
	if err != nil || owner == nil {
		return h
	}

	if owner.CompanyName != nil && *owner.CompanyName != "" {
		h.StoreName = *owner.CompanyName
	} else if owner.Role == enum.RoleClient {
		h.StoreName = owner.Name
	}
	if owner.Address != nil {
		h.Address = *owner.Address
	}
	h.Phone = owner.Phone
	return h
}

// NewReceipt composes the printable receipt of an order.
func NewReceipt(order *entity.Order, header entity.ReceiptHeader) *entity.Receipt {
	r := &entity.Receipt{
		Header:        header,
		OrderNumber:   order.OrderNumber,
		Date:          order.CreatedAt.Format("2006-01-02 15:04"),
		SalesPerson:   order.SalesPersonName,
		PaymentMethod: order.PaymentMethod.String(),
		Items:         make([]entity.ReceiptItem, 0, len(order.Lines)),
		Subtotal:      money.Format(order.Subtotal),
		Total:         money.Format(order.Total),
		Refunded:      order.IsRefunded(),
	}

	if order.DiscountAmount > 0 {
		r.Discount = money.Format(order.DiscountAmount)
		r.DiscountLabel = fmt.Sprintf("Discount (%g%%)", order.DiscountPercentage)
	}
	if order.CashAmount != nil {
		r.Cash = money.Format(*order.CashAmount)
	}
	if order.ChangeAmount != nil {
		r.Change = money.Format(*order.ChangeAmount)
	}

	for _, line := range order.Lines {
		item := entity.ReceiptItem{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: money.Format(line.UnitPrice),
			Total:     money.Format(line.Revenue()),
			Returned:  line.Returned,
		}
		for _, m := range line.Modifiers {
			item.Modifiers = append(item.Modifiers, entity.ReceiptModifier{Name: m.Name, Cost: money.Format(m.Cost)})
		}
		r.Items = append(r.Items, item)
	}

	return r
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Refunded {
		doc.SetBold(true).Text("*** REFUNDED ***").SetBold(false)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Order:", r.OrderNumber).
		KeyValue("Date:", r.Date)
	if r.SalesPerson != "" {
		doc.KeyValue("Served by:", r.SalesPerson)
	}
	doc.KeyValue("Payment:", r.PaymentMethod)

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, item.Total)
		if item.Quantity > 1 {
			doc.SubLine("@ "+item.UnitPrice+" each", "")
		}
		for _, m := range item.Modifiers {
			doc.SubLine("+ "+m.Name, m.Cost)
		}
		if item.Returned {
			doc.SubLine("(returned)", "")
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", r.Subtotal)
	if r.Discount != "" {
		doc.KeyValue(r.DiscountLabel+":", "-"+r.Discount)
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total).
		SetBold(false)

	if r.Cash != "" {
		doc.KeyValue("Cash:", r.Cash)
	}
	if r.Change != "" {
		doc.KeyValue("Change:", r.Change)
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		FeedLines(1).
		Text("Thank you for your purchase!").
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}
