// Package symbolmap loads the exchange-disambiguation override table. Some
// symbols (e.g. GLD) exist on several exchanges; the map pins a primary
// exchange per (security type, symbol) pair so orders route unambiguously.
package symbolmap

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Attributes is the per-symbol attribute set. Only the primary-exchange
// override is defined today; absent fields decode to their zero value.
type Attributes struct {
	PrimaryExchange string `json:"prim_exch"`
}

// Map is an immutable lookup table from security type to symbol to
// attributes. Both keys are matched case-insensitively. Loaded once at
// construction and read-only thereafter.
type Map struct {
	entries map[string]map[string]Attributes
}

// Load reads the JSON symbol map at path. A missing or malformed file is a
// construction-time failure for the whole adapter.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading symbol map %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a JSON symbol map document, lowercasing all keys.
func Parse(data []byte) (*Map, error) {
	var raw map[string]map[string]Attributes
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing symbol map: %w", err)
	}

	entries := make(map[string]map[string]Attributes, len(raw))
	for secType, symbols := range raw {
		bySymbol := make(map[string]Attributes, len(symbols))
		for symbol, attrs := range symbols {
			bySymbol[strings.ToLower(symbol)] = attrs
		}
		entries[strings.ToLower(secType)] = bySymbol
	}
	return &Map{entries: entries}, nil
}

// Empty returns a Map with no entries, for callers that run without an
// override table.
func Empty() *Map {
	return &Map{entries: map[string]map[string]Attributes{}}
}

// PrimaryExchange returns the primary-exchange override for the given
// security type and symbol, and whether one is defined. Inputs are
// lowercased before lookup.
func (m *Map) PrimaryExchange(secType, symbol string) (string, bool) {
	bySymbol, ok := m.entries[strings.ToLower(secType)]
	if !ok {
		return "", false
	}
	attrs, ok := bySymbol[strings.ToLower(symbol)]
	if !ok || attrs.PrimaryExchange == "" {
		return "", false
	}
	return attrs.PrimaryExchange, true
}

// Len returns the number of security types in the map.
func (m *Map) Len() int {
	return len(m.entries)
}
