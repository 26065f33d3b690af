package enum

import (
	"encoding/json"
	"testing"
)

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    PaymentMethod
		wantErr bool
	}{
		{in: "bankak", want: PaymentMethodBankak},
		{in: "cash", want: PaymentMethodCash},
		{in: "Cash", wantErr: true},
		{in: "card", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePaymentMethod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePaymentMethod(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePaymentMethod(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPaymentMethodZeroValueIsInvalid(t *testing.T) {
	var p PaymentMethod
	if p.Valid() {
		t.Fatal("zero value must not be a valid channel")
	}
	if _, err := json.Marshal(p); err == nil {
		t.Fatal("marshalling the zero value should fail")
	}
	if _, err := p.Value(); err == nil {
		t.Fatal("storing the zero value should fail")
	}
}

func TestPaymentMethodJSON(t *testing.T) {
	var out struct {
		Method PaymentMethod `json:"paymentMethod"`
	}
	if err := json.Unmarshal([]byte(`{"paymentMethod":"cash"}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Method != PaymentMethodCash {
		t.Fatalf("got %v", out.Method)
	}

	b, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"paymentMethod":"cash"}` {
		t.Fatalf("got %s", b)
	}

	if err := json.Unmarshal([]byte(`{"paymentMethod":"cheque"}`), &out); err == nil {
		t.Fatal("expected error for unknown channel")
	}
}

func TestPaymentMethodScan(t *testing.T) {
	var p PaymentMethod
	if err := p.Scan([]byte("bankak")); err != nil || p != PaymentMethodBankak {
		t.Fatalf("scan bytes: %v %v", p, err)
	}
	if err := p.Scan(int64(1)); err == nil {
		t.Fatal("expected error scanning an integer")
	}
}
