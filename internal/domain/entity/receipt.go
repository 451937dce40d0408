package entity

// ReceiptHeader holds the shop header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptModifier is a modifier printed under its line.
type ReceiptModifier struct {
	Name string `json:"name"`
	Cost string `json:"cost"`
}

// ReceiptItem represents a single line on a receipt. Money fields are
// preformatted with two decimals.
type ReceiptItem struct {
	Name      string            `json:"name"`
	Quantity  int               `json:"quantity"`
	UnitPrice string            `json:"unit_price"`
	Total     string            `json:"total"`
	Returned  bool              `json:"returned"`
	Modifiers []ReceiptModifier `json:"modifiers,omitempty"`
}

// Receipt is a value object representing a printable receipt.
// It is composed from an order at print time and never stored.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	OrderNumber   string        `json:"order_number"`
	Date          string        `json:"date"`
	SalesPerson   string        `json:"sales_person,omitempty"`
	PaymentMethod string        `json:"payment_method"`
	Items         []ReceiptItem `json:"items"`
	Subtotal      string        `json:"subtotal"`
	Discount      string        `json:"discount,omitempty"`
	DiscountLabel string        `json:"discount_label,omitempty"`
	Total         string        `json:"total"`
	Cash          string        `json:"cash,omitempty"`
	Change        string        `json:"change,omitempty"`
	Refunded      bool          `json:"refunded"`
}
