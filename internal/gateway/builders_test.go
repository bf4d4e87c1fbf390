package gateway

import (
	"testing"

	"ibsession/internal/domain"
)

func TestCreateContractAppliesOverride(t *testing.T) {
	s, _ := newTestSession(t)

	// Map override must win regardless of the caller-supplied default.
	got := s.CreateContract("GLD", "STK", "SMART", "SMART", "USD")
	want := domain.Contract{
		Symbol: "gld", SecType: "stk",
		Exchange: "SMART", PrimaryExchange: "ARCA", Currency: "USD",
	}
	if got != want {
		t.Errorf("CreateContract = %+v, want %+v", got, want)
	}

	got = s.CreateContract("gld", "stk", "NYSE", "NYSE", "USD")
	if got.PrimaryExchange != "ARCA" {
		t.Errorf("PrimaryExchange = %q with caller default NYSE, want ARCA", got.PrimaryExchange)
	}
	if got.Exchange != "NYSE" {
		t.Errorf("Exchange = %q, want caller's NYSE preserved", got.Exchange)
	}
}

func TestCreateContractPreservesDefaultsWhenUnmapped(t *testing.T) {
	s, _ := newTestSession(t)

	got := s.CreateContract("AAPL", "STK", "SMART", "ISLAND", "USD")
	if got.PrimaryExchange != "ISLAND" {
		t.Errorf("PrimaryExchange = %q for unmapped symbol, want ISLAND preserved", got.PrimaryExchange)
	}

	// Same symbol under an unmapped security type also keeps the default.
	got = s.CreateContract("gld", "fut", "SMART", "SMART", "USD")
	if got.PrimaryExchange != "SMART" {
		t.Errorf("PrimaryExchange = %q for unmapped sec type, want SMART preserved", got.PrimaryExchange)
	}
}

func TestCreateContractLowercases(t *testing.T) {
	s, _ := newTestSession(t)

	got := s.CreateStockContract("GLD", "STK")
	if got.Symbol != "gld" || got.SecType != "stk" {
		t.Errorf("CreateStockContract = %+v, want lowercased gld/stk", got)
	}
	if got.PrimaryExchange != "ARCA" {
		t.Errorf("PrimaryExchange = %q, want ARCA via lowercased lookup", got.PrimaryExchange)
	}
}

func TestCreateContractIdempotent(t *testing.T) {
	s, _ := newTestSession(t)

	a := s.CreateContract("Gld", "Stk", "SMART", "SMART", "USD")
	b := s.CreateContract("Gld", "Stk", "SMART", "SMART", "USD")
	if a != b {
		t.Errorf("identical inputs built different contracts: %+v vs %+v", a, b)
	}
}

func TestCreateOrder(t *testing.T) {
	got := CreateOrder("mkt", 200, "sell")
	want := domain.Order{Type: "mkt", Quantity: 200, Action: "sell"}
	if got != want {
		t.Errorf("CreateOrder = %+v, want %+v", got, want)
	}

	// No validation happens at this layer.
	odd := CreateOrder("weird", -5, "hold")
	if odd.Type != "weird" || odd.Quantity != -5 || odd.Action != "hold" {
		t.Errorf("CreateOrder must pass values through unvalidated, got %+v", odd)
	}
}
