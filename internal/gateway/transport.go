// Package gateway implements the broker session adapter: it owns the
// connection to the trading gateway, binds handlers to the asynchronous
// server messages the gateway emits, and provides builders for contracts and
// orders plus passthroughs for order submission and market-data requests.
//
// The wire protocol lives entirely behind the Transport boundary; this
// package never frames or parses gateway bytes.
package gateway

import "ibsession/internal/domain"

// MessageKind names a category of asynchronous server message. The names
// match the message-type registration keys of the wrapped gateway client.
type MessageKind string

// Message kinds the session registers handlers for.
const (
	KindAccountValue    MessageKind = "UpdateAccountValue"
	KindError           MessageKind = "Error"
	KindNextValidID     MessageKind = "NextValidId"
	KindManagedAccounts MessageKind = "ManagedAccounts"
	KindTick            MessageKind = "TickPrice"
	KindReply           MessageKind = "Reply"
)

// Message is one asynchronous server event. Text is the message's rendered
// form; field extraction against it is the only place incoming data is
// parsed.
type Message struct {
	Kind MessageKind
	Text string
}

// Handler consumes one server message. The transport invokes handlers
// sequentially, never concurrently with each other.
type Handler func(Message)

// Transport is the boundary to the wrapped gateway client. Implementations
// own the socket and the wire protocol, and dispatch server messages to the
// handlers registered per kind.
type Transport interface {
	// Connect opens the connection to the gateway.
	Connect() error

	// Disconnect closes the connection. Disconnecting an already-closed
	// transport is not an error.
	Disconnect() error

	// PlaceOrder submits an order for the given contract under the given
	// order id.
	PlaceOrder(orderID int, contract domain.Contract, order domain.Order) error

	// ReqMktData subscribes to market data for the contract under the given
	// ticker id.
	ReqMktData(tickerID int, contract domain.Contract, genericTicks string, snapshot bool) error

	// Register binds a handler to a message kind, replacing any previous
	// binding for that kind.
	Register(kind MessageKind, h Handler)
}
