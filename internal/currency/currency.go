// Package currency converts and formats monetary amounts. All amounts
// are stored in base currency units (USD); conversion happens only at
// the display boundary.
package currency

import (
	"fmt"
	"math"
	"sync"
)

// SymbolPosition says whether a currency's symbol renders before or
// after the amount.
type SymbolPosition string

// Symbol position constants.
const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// Currency describes a display currency. ExchangeRate is expressed as
// units of this currency per 1 unit of base currency (USD).
type Currency struct {
	Code           string         `json:"code"`
	Symbol         string         `json:"symbol"`
	Name           string         `json:"name"`
	SymbolPosition SymbolPosition `json:"symbol_position"`
	ExchangeRate   float64        `json:"exchange_rate"`
}

// BaseCode is the code of the base currency everything is stored in.
const BaseCode = "USD"

// Available is the fixed table of supported currencies. The base
// currency's rate is 1 and is never user-editable.
var Available = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar", ExchangeRate: 1, SymbolPosition: SymbolBefore},
	{Code: "EUR", Symbol: "€", Name: "Euro", ExchangeRate: 0.92, SymbolPosition: SymbolBefore},
	{Code: "GBP", Symbol: "£", Name: "British Pound", ExchangeRate: 0.79, SymbolPosition: SymbolBefore},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", ExchangeRate: 1.36, SymbolPosition: SymbolBefore},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar", ExchangeRate: 1.52, SymbolPosition: SymbolBefore},
	{Code: "MAD", Symbol: "DH", Name: "Moroccan Dirham", ExchangeRate: 10.08, SymbolPosition: SymbolAfter},
	{Code: "TND", Symbol: "DT", Name: "Tunisian Dinar", ExchangeRate: 3.12, SymbolPosition: SymbolAfter},
}

// Lookup finds a currency by code. Unknown codes fall back to the base
// currency so formatting never divides by a zero or missing rate.
func Lookup(code string) Currency {
	for _, c := range Available {
		if c.Code == code {
			return c
		}
	}
	return Available[0]
}

// ToBase converts an amount entered in c to base units for persistence.
func ToBase(amount float64, c Currency) float64 {
	if c.Code == BaseCode {
		return amount
	}
	return amount / c.ExchangeRate
}

// FromBase converts a base-unit amount to c for display.
func FromBase(amount float64, c Currency) float64 {
	if c.Code == BaseCode {
		return amount
	}
	return amount * c.ExchangeRate
}

// RateBetween returns how many units of target one unit of base buys.
// Unknown codes yield 1.
func RateBetween(baseCode, targetCode string) float64 {
	base := Lookup(baseCode)
	target := Lookup(targetCode)
	if base.Code != baseCode || target.Code != targetCode {
		return 1
	}
	return target.ExchangeRate / base.ExchangeRate
}

// Format converts a base-unit amount to c and renders it with two
// decimal places and the symbol in its configured position. NaN is
// treated as zero since these values render directly.
func Format(amount float64, c Currency) string {
	if math.IsNaN(amount) {
		amount = 0
	}
	converted := FromBase(amount, c)
	if c.SymbolPosition == SymbolAfter {
		return fmt.Sprintf("%.2f %s", converted, c.Symbol)
	}
	return fmt.Sprintf("%s%.2f", c.Symbol, converted)
}

// FormatPtr formats a nullable amount, treating nil as zero.
func FormatPtr(amount *float64, c Currency) string {
	if amount == nil {
		return Format(0, c)
	}
	return Format(*amount, c)
}

// Selection is the process-wide active display currency. Switching is
// a pure presentation change: stored amounts stay in base units.
// Subscribers run synchronously on switch, in registration order, so
// dependent recomputation stays deterministic.
type Selection struct {
	store       Store
	subscribers []func(Currency)
	current     Currency
	mu          sync.RWMutex
}

// Store persists the selected currency code across runs.
type Store interface {
	SaveCode(code string) error
	LoadCode() (string, error)
}

// NewSelection loads the persisted selection from store, defaulting to
// the base currency when nothing is saved.
func NewSelection(store Store) *Selection {
	s := &Selection{store: store, current: Available[0]}
	if store != nil {
		if code, err := store.LoadCode(); err == nil && code != "" {
			s.current = Lookup(code)
		}
	}
	return s
}

// Current returns the active currency.
func (s *Selection) Current() Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set switches the active currency by code, persists it, and notifies
// subscribers. Unknown codes are ignored.
func (s *Selection) Set(code string) error {
	var chosen Currency
	found := false
	for _, c := range Available {
		if c.Code == code {
			chosen = c
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown currency code: %q", code)
	}

	s.mu.Lock()
	s.current = chosen
	subs := make([]func(Currency), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveCode(code); err != nil {
			return fmt.Errorf("failed to persist currency selection: %w", err)
		}
	}

	for _, fn := range subs {
		fn(chosen)
	}
	return nil
}

// Subscribe registers fn to run after every currency switch.
func (s *Selection) Subscribe(fn func(Currency)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Format renders a base-unit amount in the active currency.
func (s *Selection) Format(amount float64) string {
	return Format(amount, s.Current())
}
