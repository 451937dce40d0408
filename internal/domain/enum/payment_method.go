package enum

// PaymentMethod is how an order was settled.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodQR   PaymentMethod = "qr"
)

// PaymentMethods lists every accepted method in report order.
var PaymentMethods = []PaymentMethod{PaymentMethodCash, PaymentMethodQR}

func (p PaymentMethod) IsValid() bool {
	return p == PaymentMethodCash || p == PaymentMethodQR
}

func (p PaymentMethod) String() string {
	return string(p)
}
