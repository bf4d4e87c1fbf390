package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ibsession/internal/domain"
)

// ErrParseMismatch marks a message whose expected field pattern did not
// match. For the account-id and next-id handlers this is a protocol-contract
// violation; the dispatch shim logs it and drops the update.
var ErrParseMismatch = errors.New("message did not match expected pattern")

// Extraction patterns over the textual message form.
var (
	accountsListRe = regexp.MustCompile(`accountsList=(\w+)`)
	orderIDRe      = regexp.MustCompile(`orderId=(\d+)`)
	errorRe        = regexp.MustCompile(`<.*errorCode=(.*),\serrorMsg=(.*)>`)
	tickRe         = regexp.MustCompile(`tickerId=(\d+),\sfield=(\w+),\sprice=([\d.]+),\ssize=(\d+)`)
)

// shutdownPrefix is the transport-library failure text that signals the
// gateway force-closed the account's session. String sniffing is fragile,
// but the gateway offers no explicit disconnect event on this path.
const shutdownPrefix = "unpack requires a string"

// handleAccountValue logs account-value updates verbatim.
func (s *Session) handleAccountValue(m Message) error {
	s.log.Info(m.Text)
	return nil
}

// handleManagedAccounts captures the managed account id.
func (s *Session) handleManagedAccounts(m Message) error {
	match := accountsListRe.FindStringSubmatch(m.Text)
	if match == nil {
		return fmt.Errorf("no account id in message %q: %w", m.Text, ErrParseMismatch)
	}

	s.mu.Lock()
	s.accountID = match[1]
	s.mu.Unlock()

	s.log.Info("gateway account", "account", match[1])
	return nil
}

// handleNextValidID captures the next valid order id, overwriting any prior
// value. This is the only writer of nextOrderID.
func (s *Session) handleNextValidID(m Message) error {
	match := orderIDRe.FindStringSubmatch(m.Text)
	if match == nil {
		return fmt.Errorf("no next valid id in message %q: %w", m.Text, ErrParseMismatch)
	}
	id, err := strconv.Atoi(match[1])
	if err != nil {
		return fmt.Errorf("next valid id %q: %w", match[1], ErrParseMismatch)
	}

	s.mu.Lock()
	s.nextOrderID = id
	s.mu.Unlock()

	s.log.Info("next valid id", "orderId", id)
	return nil
}

// handleError logs gateway-reported errors. It never fails: an unparseable
// error string is logged raw. The "None"/unpack pair is the heuristic for a
// gateway-side account shutdown; it marks the session dead and mirrors the
// event to the UI sink.
func (s *Session) handleError(m Message) error {
	match := errorRe.FindStringSubmatch(m.Text)
	if match == nil {
		s.log.Error("gateway error", "msg", m.Text)
		return nil
	}

	code, errMsg := match[1], match[2]
	s.log.Error("gateway error", "code", code, "msg", errMsg)

	if code == "None" && strings.HasPrefix(errMsg, shutdownPrefix) {
		s.mu.Lock()
		account := s.accountID
		s.dead = true
		s.connected = false
		s.mu.Unlock()

		s.logAll(fmt.Sprintf("gateway account %s was shutdown", account), slog.LevelError)
	}
	return nil
}

// handleTick logs tick messages and, when a tick journal is configured,
// records the parsed tick. A tick that does not match the pattern is logged
// only, matching the other informational handlers.
func (s *Session) handleTick(m Message) error {
	s.log.Info(m.Text)

	if s.ticks == nil {
		return nil
	}
	match := tickRe.FindStringSubmatch(m.Text)
	if match == nil {
		return nil
	}

	tickerID, _ := strconv.Atoi(match[1])
	price, _ := strconv.ParseFloat(match[3], 64)
	size, _ := strconv.ParseInt(match[4], 10, 64)

	tick := domain.Tick{
		TickerID:  tickerID,
		Field:     match[2],
		Price:     price,
		Size:      size,
		Timestamp: time.Now().UTC(),
	}
	if err := s.ticks.Append(context.Background(), []domain.Tick{tick}); err != nil {
		s.log.Error("recording tick", "tickerId", tickerID, "err", err)
	}
	return nil
}

// HandleReply logs any server reply's kind and content. It is not bound by
// default; callers wanting a catch-all can register it per kind.
func (s *Session) HandleReply(m Message) {
	s.log.Info("server response", "kind", string(m.Kind), "msg", m.Text)
}
