package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ibsession/internal/domain"
	"ibsession/internal/journal"
	"ibsession/internal/logging"
	"ibsession/internal/symbolmap"
)

// Default contract parameters applied when the caller does not override them.
const (
	DefaultExchange = "SMART"
	DefaultCurrency = "USD"
)

// QuoteTickerID is the fixed request id used for quote subscriptions.
const QuoteTickerID = 1

// Config wires a Session's collaborators.
type Config struct {
	// Addr is the gateway connection string, host:port. Informational; the
	// transport owns the actual dial parameters.
	Addr string

	// Transport is the wrapped gateway client. Required.
	Transport Transport

	// Multiplier scales signal sizes for callers driving the adapter from a
	// strategy layer. Stored, not interpreted here.
	Multiplier int

	// ConnectWait is how long Connect blocks after the transport opens so
	// the gateway's handshake messages can arrive. Zero means no wait.
	ConnectWait time.Duration

	// Symbols is the exchange-override table. Nil means no overrides.
	Symbols *symbolmap.Map

	// UISink, when non-nil, mirrors selected messages for user display.
	UISink logging.UISink

	// Orders, when non-nil, records every placed order.
	Orders journal.OrderStore

	// Ticks, when non-nil, records parsed market-data ticks.
	Ticks journal.TickStore

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Session is a live adapter over one gateway connection. It tracks the two
// pieces of server-assigned state the caller needs, the next valid order id
// and the managed account id, and exposes the builders and passthroughs.
//
// Handlers run on the transport's dispatch goroutine; all session state is
// guarded by mu.
type Session struct {
	addr       string
	transport  Transport
	multiplier int
	wait       time.Duration
	symbols    *symbolmap.Map
	uiSink     logging.UISink
	orders     journal.OrderStore
	ticks      journal.TickStore
	log        *slog.Logger

	mu          sync.Mutex
	nextOrderID int
	accountID   string
	connected   bool
	dead        bool
}

// New creates a Session and registers its handlers on the transport. The
// transport is not connected yet; call Connect.
func New(cfg Config) *Session {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	symbols := cfg.Symbols
	if symbols == nil {
		symbols = symbolmap.Empty()
	}

	s := &Session{
		addr:       cfg.Addr,
		transport:  cfg.Transport,
		multiplier: cfg.Multiplier,
		wait:       cfg.ConnectWait,
		symbols:    symbols,
		uiSink:     cfg.UISink,
		orders:     cfg.Orders,
		ticks:      cfg.Ticks,
		log:        log.With("component", "gateway"),
	}

	// Bind handlers to the server message categories. Kinds without a
	// binding are dropped by the transport.
	s.transport.Register(KindAccountValue, s.dispatch(s.handleAccountValue))
	s.transport.Register(KindError, s.dispatch(s.handleError))
	s.transport.Register(KindNextValidID, s.dispatch(s.handleNextValidID))
	s.transport.Register(KindManagedAccounts, s.dispatch(s.handleManagedAccounts))
	s.transport.Register(KindTick, s.dispatch(s.handleTick))

	return s
}

// dispatch adapts an error-returning handler to the transport's Handler
// shape. A handler error means one update could not be extracted from the
// message; the update is dropped and logged, the session stays up.
func (s *Session) dispatch(h func(Message) error) Handler {
	return func(m Message) {
		if err := h(m); err != nil {
			s.log.Error("dropping gateway update", "kind", string(m.Kind), "err", err)
		}
	}
}

// Connect opens the transport and then blocks briefly so the gateway's
// initial handshake messages (next valid id, managed accounts) can arrive
// before the caller proceeds.
func (s *Session) Connect() error {
	if err := s.transport.Connect(); err != nil {
		return fmt.Errorf("connecting to gateway at %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.connected = true
	s.dead = false
	s.mu.Unlock()

	s.log.Info("connected to gateway", "addr", s.addr)

	// Give the gateway a moment to push initial data.
	if s.wait > 0 {
		time.Sleep(s.wait)
	}
	return nil
}

// Disconnect logs the account and connection string, then closes the
// transport.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	account := s.accountID
	s.connected = false
	s.mu.Unlock()

	s.logAll(fmt.Sprintf("disconnecting gateway account %s @ %s", account, s.addr), slog.LevelInfo)
	return s.transport.Disconnect()
}

// NextOrderID returns the most recent server-assigned next valid order id.
// It stays at zero until the gateway's next-valid-id message arrives.
func (s *Session) NextOrderID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextOrderID
}

// AccountID returns the managed account id, or "" before discovery.
func (s *Session) AccountID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountID
}

// Connected reports whether Connect has succeeded and Disconnect has not
// been called.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Dead reports whether the error handler has seen the gateway's
// account-shutdown signal. The session does not reconnect.
func (s *Session) Dead() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dead
}

// Multiplier returns the configured signal multiplier.
func (s *Session) Multiplier() int {
	return s.multiplier
}

// PlaceOrder submits the order through the transport under the given order
// id. The transport's result is returned unexamined. When an order journal
// is configured the submission is also recorded; a journal failure is
// logged, not returned.
func (s *Session) PlaceOrder(ctx context.Context, orderID int, contract domain.Contract, order domain.Order) error {
	err := s.transport.PlaceOrder(orderID, contract, order)

	if s.orders != nil {
		rec := domain.OrderRecord{
			OrderID:     orderID,
			Account:     s.AccountID(),
			Symbol:      contract.Symbol,
			SecType:     contract.SecType,
			Exchange:    contract.Exchange,
			PrimaryExch: contract.PrimaryExchange,
			Currency:    contract.Currency,
			OrderType:   order.Type,
			Quantity:    order.Quantity,
			Action:      order.Action,
			SubmittedAt: time.Now().UTC(),
		}
		if jerr := s.orders.Record(ctx, rec); jerr != nil {
			s.log.Error("recording order", "orderId", orderID, "err", jerr)
		}
	}
	return err
}

// RequestQuote subscribes to streaming market data for the contract using
// the fixed quote ticker id, no generic ticks, non-snapshot.
func (s *Session) RequestQuote(contract domain.Contract) error {
	return s.transport.ReqMktData(QuoteTickerID, contract, "", false)
}

// logAll writes to the file log and mirrors the message to the UI sink when
// one is configured.
func (s *Session) logAll(msg string, level slog.Level) {
	if level == slog.LevelError {
		s.log.Error(msg)
		if s.uiSink != nil {
			s.uiSink.Error(msg)
		}
		return
	}
	s.log.Info(msg)
	if s.uiSink != nil {
		s.uiSink.Info(msg)
	}
}
