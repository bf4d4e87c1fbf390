// Package domain defines the shared types passed between the gateway
// session, the builders, and the journals.
package domain

import "time"

// Order actions accepted by the gateway.
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// Order types accepted by the gateway.
const (
	OrderTypeMarket = "MKT"
	OrderTypeLimit  = "LMT"
)

// Contract describes the instrument an order is written against: what is
// being traded, on which exchange, and in which currency. Contracts are
// value types constructed per request and never persisted.
type Contract struct {
	Symbol          string
	SecType         string
	Exchange        string
	PrimaryExchange string
	Currency        string
}

// Order describes a single outgoing order. Quantity sign, order type, and
// action are not validated here; invalid combinations are rejected by the
// gateway, not by this layer.
type Order struct {
	Type     string
	Quantity int
	Action   string
}

// OrderRecord is the persisted trace of one submitted order.
type OrderRecord struct {
	OrderID     int
	Account     string
	Symbol      string
	SecType     string
	Exchange    string
	PrimaryExch string
	Currency    string
	OrderType   string
	Quantity    int
	Action      string
	SubmittedAt time.Time
}

// Tick is a single market-data tick received through a quote subscription.
type Tick struct {
	TickerID  int
	Field     string
	Price     float64
	Size      int64
	Timestamp time.Time
}
