package gateway

import (
	"fmt"
	"sync"

	"ibsession/internal/domain"
)

// Compile-time interface check.
var _ Transport = (*SimTransport)(nil)

// SimTransport implements Transport in memory for paper mode and tests. On
// Connect it replays the gateway's handshake, a next-valid-id message
// followed by a managed-accounts message, and it records every placed
// order and quote request. Handlers are invoked inline, one at a time.
type SimTransport struct {
	mu        sync.Mutex
	handlers  map[MessageKind]Handler
	connected bool

	account     string
	nextOrderID int
	placed      []SimOrder
	quotes      []SimQuote
}

// SimOrder is one order captured by the simulator.
type SimOrder struct {
	OrderID  int
	Contract domain.Contract
	Order    domain.Order
}

// SimQuote is one market-data request captured by the simulator.
type SimQuote struct {
	TickerID     int
	Contract     domain.Contract
	GenericTicks string
	Snapshot     bool
}

// NewSimTransport creates a simulator with a paper account and an initial
// next order id of 1.
func NewSimTransport() *SimTransport {
	return &SimTransport{
		handlers:    make(map[MessageKind]Handler),
		account:     "DU12345",
		nextOrderID: 1,
	}
}

// SetAccount overrides the simulated managed account id.
func (t *SimTransport) SetAccount(account string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.account = account
}

// SetNextOrderID overrides the next order id the handshake announces.
func (t *SimTransport) SetNextOrderID(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextOrderID = id
}

// Connect marks the transport connected and replays the handshake messages
// to the registered handlers.
func (t *SimTransport) Connect() error {
	t.mu.Lock()
	t.connected = true
	id, account := t.nextOrderID, t.account
	t.mu.Unlock()

	t.Emit(KindNextValidID, fmt.Sprintf("<nextValidId orderId=%d>", id))
	t.Emit(KindManagedAccounts, fmt.Sprintf("<managedAccounts accountsList=%s>", account))
	return nil
}

// Disconnect marks the transport disconnected.
func (t *SimTransport) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connected = false
	return nil
}

// Connected reports the simulated connection state.
func (t *SimTransport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

// PlaceOrder records the order.
func (t *SimTransport) PlaceOrder(orderID int, contract domain.Contract, order domain.Order) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.connected {
		return fmt.Errorf("sim transport: not connected")
	}
	t.placed = append(t.placed, SimOrder{OrderID: orderID, Contract: contract, Order: order})
	return nil
}

// ReqMktData records the request and emits two canned ticks for the
// subscription.
func (t *SimTransport) ReqMktData(tickerID int, contract domain.Contract, genericTicks string, snapshot bool) error {
	t.mu.Lock()
	if !t.connected {
		t.mu.Unlock()
		return fmt.Errorf("sim transport: not connected")
	}
	t.quotes = append(t.quotes, SimQuote{
		TickerID:     tickerID,
		Contract:     contract,
		GenericTicks: genericTicks,
		Snapshot:     snapshot,
	})
	t.mu.Unlock()

	t.Emit(KindTick, fmt.Sprintf("tickerId=%d, field=LAST, price=150.25, size=100", tickerID))
	t.Emit(KindTick, fmt.Sprintf("tickerId=%d, field=LAST, price=150.30, size=40", tickerID))
	return nil
}

// Register binds a handler to a message kind.
func (t *SimTransport) Register(kind MessageKind, h Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[kind] = h
}

// Emit delivers a message to the handler registered for its kind, if any.
// Tests use it to simulate arbitrary server messages.
func (t *SimTransport) Emit(kind MessageKind, text string) {
	t.mu.Lock()
	h := t.handlers[kind]
	t.mu.Unlock()
	if h != nil {
		h(Message{Kind: kind, Text: text})
	}
}

// Placed returns the orders captured so far.
func (t *SimTransport) Placed() []SimOrder {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]SimOrder, len(t.placed))
	copy(out, t.placed)
	return out
}

// Quotes returns the market-data requests captured so far.
func (t *SimTransport) Quotes() []SimQuote {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]SimQuote, len(t.quotes))
	copy(out, t.quotes)
	return out
}
