package gateway

import (
	"strings"

	"ibsession/internal/domain"
)

// CreateContract assembles a contract descriptor. Symbol and security type
// are lowercased; when the symbol map defines a primary-exchange override
// for the pair, it replaces the caller-supplied primary exchange. Symbols
// absent from the map keep the caller's values unchanged; there is no
// validation against an authoritative instrument list.
func (s *Session) CreateContract(symbol, secType, exchange, primaryExch, currency string) domain.Contract {
	symbol = strings.ToLower(symbol)
	secType = strings.ToLower(secType)

	if override, ok := s.symbols.PrimaryExchange(secType, symbol); ok {
		primaryExch = override
	}

	return domain.Contract{
		Symbol:          symbol,
		SecType:         secType,
		Exchange:        exchange,
		PrimaryExchange: primaryExch,
		Currency:        currency,
	}
}

// CreateStockContract is CreateContract with the usual defaults: SMART
// routing, SMART primary exchange, USD.
func (s *Session) CreateStockContract(symbol, secType string) domain.Contract {
	return s.CreateContract(symbol, secType, DefaultExchange, DefaultExchange, DefaultCurrency)
}

// CreateOrder assembles an order descriptor. Quantity sign, order type, and
// action are not validated; the gateway rejects invalid combinations.
func CreateOrder(orderType string, quantity int, action string) domain.Order {
	return domain.Order{
		Type:     orderType,
		Quantity: quantity,
		Action:   action,
	}
}
