package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the lifecycle state of an order. The only
// transition is completed -> refunded.
type OrderStatus int

const (
	OrderStatusCompleted OrderStatus = 0
	OrderStatusRefunded  OrderStatus = 1
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusCompleted:
		return "completed"
	case OrderStatusRefunded:
		return "refunded"
	}
	return fmt.Sprintf("OrderStatus(%d)", int(s))
}

// ParseOrderStatus parses the wire form of an order status.
func ParseOrderStatus(str string) (OrderStatus, error) {
	switch str {
	case "completed":
		return OrderStatusCompleted, nil
	case "refunded":
		return OrderStatusRefunded, nil
	}
	return 0, fmt.Errorf("unknown order status %q", str)
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	parsed, err := ParseOrderStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusCompleted
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int32:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}
	return nil
}
