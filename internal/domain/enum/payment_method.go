package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod is the channel money moved through
type PaymentMethod int

const (
	PaymentMethodBankak PaymentMethod = iota + 1
	PaymentMethodCash
)

// PaymentMethods lists every valid channel in display order
var PaymentMethods = []PaymentMethod{PaymentMethodBankak, PaymentMethodCash}

func (p PaymentMethod) String() string {
	switch p {
	case PaymentMethodBankak:
		return "bankak"
	case PaymentMethodCash:
		return "cash"
	}
	return ""
}

// Valid reports whether p is one of the known channels
func (p PaymentMethod) Valid() bool {
	return p == PaymentMethodBankak || p == PaymentMethodCash
}

// ParsePaymentMethod converts the wire name into a PaymentMethod
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "bankak":
		return PaymentMethodBankak, nil
	case "cash":
		return PaymentMethodCash, nil
	}
	return 0, fmt.Errorf("unknown payment method %q", s)
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid payment method %d", int(p))
	}
	return json.Marshal(p.String())
}

func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p PaymentMethod) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid payment method %d", int(p))
	}
	return p.String(), nil
}

func (p *PaymentMethod) Scan(value interface{}) error {
	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentMethod", value)
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
