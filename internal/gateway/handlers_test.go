package gateway

import (
	"errors"
	"strings"
	"testing"
)

func TestHandleNextValidID(t *testing.T) {
	s, _ := newTestSession(t)

	err := s.handleNextValidID(Message{Kind: KindNextValidID, Text: "<nextValidId orderId=42>"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got := s.NextOrderID(); got != 42 {
		t.Errorf("NextOrderID() = %d, want 42", got)
	}

	// A later message overwrites the prior value.
	if err := s.handleNextValidID(Message{Kind: KindNextValidID, Text: "orderId=43"}); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got := s.NextOrderID(); got != 43 {
		t.Errorf("NextOrderID() = %d, want 43", got)
	}
}

func TestHandleNextValidIDMismatch(t *testing.T) {
	s, _ := newTestSession(t)

	err := s.handleNextValidID(Message{Kind: KindNextValidID, Text: "<nextValidId nothing here>"})
	if !errors.Is(err, ErrParseMismatch) {
		t.Fatalf("handler error = %v, want ErrParseMismatch", err)
	}
	if got := s.NextOrderID(); got != 0 {
		t.Errorf("NextOrderID() = %d after mismatch, want 0", got)
	}
}

func TestHandleManagedAccounts(t *testing.T) {
	s, _ := newTestSession(t)

	err := s.handleManagedAccounts(Message{Kind: KindManagedAccounts, Text: "<managedAccounts accountsList=U123456>"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got := s.AccountID(); got != "U123456" {
		t.Errorf("AccountID() = %q, want U123456", got)
	}
}

func TestHandleManagedAccountsMismatch(t *testing.T) {
	s, _ := newTestSession(t)

	err := s.handleManagedAccounts(Message{Kind: KindManagedAccounts, Text: "<managedAccounts>"})
	if !errors.Is(err, ErrParseMismatch) {
		t.Fatalf("handler error = %v, want ErrParseMismatch", err)
	}
	if got := s.AccountID(); got != "" {
		t.Errorf("AccountID() = %q after mismatch, want empty", got)
	}
}

func TestHandleErrorParsed(t *testing.T) {
	s, _ := newTestSession(t)

	err := s.handleError(Message{Kind: KindError, Text: "<error id=3, errorCode=201, errorMsg=Order rejected>"})
	if err != nil {
		t.Fatalf("error handler must not fail on parsed input: %v", err)
	}
	if s.Dead() {
		t.Error("ordinary gateway error must not mark the session dead")
	}
}

func TestHandleErrorUnparseable(t *testing.T) {
	s, _ := newTestSession(t)

	err := s.handleError(Message{Kind: KindError, Text: "something went sideways"})
	if err != nil {
		t.Fatalf("error handler must not fail on unparseable input: %v", err)
	}
	if s.Dead() {
		t.Error("unparseable error must not mark the session dead")
	}
}

func TestHandleErrorShutdownHeuristic(t *testing.T) {
	sink := &fakeSink{}
	sim := NewSimTransport()
	sim.SetAccount("U123456")
	s := New(Config{
		Addr:      "localhost:7496",
		Transport: sim,
		UISink:    sink,
		Logger:    testLogger(),
	})
	if err := s.Connect(); err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}

	text := "<error id=None, errorCode=None, errorMsg=unpack requires a string argument of length 4>"
	if err := s.handleError(Message{Kind: KindError, Text: text}); err != nil {
		t.Fatalf("error handler returned error: %v", err)
	}

	if !s.Dead() {
		t.Error("shutdown heuristic must mark the session dead")
	}
	if s.Connected() {
		t.Error("shutdown heuristic must mark the session disconnected")
	}
	if len(sink.errors) != 1 {
		t.Fatalf("UI sink saw %d error messages, want 1", len(sink.errors))
	}
	if !strings.Contains(sink.errors[0], "U123456") {
		t.Errorf("shutdown message = %q, want it to name the account", sink.errors[0])
	}
}

func TestHandleAccountValue(t *testing.T) {
	s, _ := newTestSession(t)
	// Verbatim logging only; must never fail.
	if err := s.handleAccountValue(Message{Kind: KindAccountValue, Text: "<accountValue NetLiquidation=250000 USD>"}); err != nil {
		t.Fatalf("account-value handler returned error: %v", err)
	}
}

func TestDispatchDropsMismatchedUpdate(t *testing.T) {
	s, sim := newTestSession(t)
	if err := s.Connect(); err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	before := s.NextOrderID()

	// A garbled next-valid-id message must be dropped without tearing the
	// session down.
	sim.Emit(KindNextValidID, "<garbled>")

	if got := s.NextOrderID(); got != before {
		t.Errorf("NextOrderID() = %d after garbled message, want %d", got, before)
	}
	if !s.Connected() {
		t.Error("session must stay up after a dropped update")
	}
}

func TestHandleReply(t *testing.T) {
	s, sim := newTestSession(t)
	// Not bound by default; binding it must route arbitrary kinds through.
	sim.Register(KindReply, s.HandleReply)
	sim.Emit(KindReply, "<openOrderEnd>")
}
