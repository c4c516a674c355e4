package views

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₱0.00"},
		{"999.5", "₱999.50"},
		{"1000", "₱1,000.00"},
		{"1234567.891", "₱1,234,567.89"},
		{"-25000", "-₱25,000.00"},
	}
	for _, tt := range tests {
		if got := Money(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("Money(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	var none *time.Time
	if got := Date(d); got != "Mar 9, 2024" {
		t.Errorf("Date(time) = %q", got)
	}
	if got := Date(&d); got != "Mar 9, 2024" {
		t.Errorf("Date(*time) = %q", got)
	}
	if got := Date(none); got != "-" {
		t.Errorf("Date(nil) = %q", got)
	}
}

func TestDict(t *testing.T) {
	m, err := Dict("a", 1, "b", "two")
	if err != nil {
		t.Fatal(err)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected map %v", m)
	}
	if _, err := Dict("a"); err == nil {
		t.Error("expected error for odd arguments")
	}
	if _, err := Dict(1, 2); err == nil {
		t.Error("expected error for non-string key")
	}
}

func TestEngineLoadsTemplates(t *testing.T) {
	if err := New().Load(); err != nil {
		t.Fatalf("templates do not parse: %v", err)
	}
}
