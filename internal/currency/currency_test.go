package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, c := range Available {
		if c.Code == BaseCode {
			continue
		}
		amount := 137.42
		got := ToBase(FromBase(amount, c), c)
		assert.InDelta(t, amount, got, 1e-9, "round trip for %s", c.Code)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		amount float64
		want   string
	}{
		{name: "base currency symbol before", code: "USD", amount: 100, want: "$100.00"},
		{name: "symbol after with conversion", code: "TND", amount: 100, want: "312.00 DT"},
		{name: "symbol before with conversion", code: "EUR", amount: 100, want: "€92.00"},
		{name: "zero", code: "MAD", amount: 0, want: "0.00 DH"},
		{name: "negative keeps sign", code: "USD", amount: -42.5, want: "$-42.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, Lookup(tt.code)))
		})
	}
}

func TestFormatPtr_NilIsZero(t *testing.T) {
	assert.Equal(t, "$0.00", FormatPtr(nil, Lookup("USD")))
}

func TestLookup_UnknownFallsBackToBase(t *testing.T) {
	c := Lookup("XXX")
	assert.Equal(t, BaseCode, c.Code)
	assert.InDelta(t, 1.0, c.ExchangeRate, 1e-9)
	// Fallback means conversion is identity, never a divide by zero.
	assert.InDelta(t, 55.5, ToBase(55.5, c), 1e-9)
}

func TestRateBetween(t *testing.T) {
	assert.InDelta(t, 3.12, RateBetween("USD", "TND"), 1e-9)
	assert.InDelta(t, 1/3.12, RateBetween("TND", "USD"), 1e-9)
	assert.InDelta(t, 1.0, RateBetween("USD", "NOPE"), 1e-9)
}

func TestSelection_PersistsAndNotifies(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	sel := NewSelection(store)
	assert.Equal(t, "USD", sel.Current().Code)

	var notified []string
	sel.Subscribe(func(c Currency) {
		notified = append(notified, c.Code)
	})

	require.NoError(t, sel.Set("TND"))
	assert.Equal(t, "TND", sel.Current().Code)
	assert.Equal(t, []string{"TND"}, notified)
	assert.Equal(t, "312.00 DT", sel.Format(100))

	// A fresh selection against the same store sees the saved code.
	reloaded := NewSelection(store)
	assert.Equal(t, "TND", reloaded.Current().Code)
}

func TestSelection_RejectsUnknownCode(t *testing.T) {
	sel := NewSelection(nil)
	require.Error(t, sel.Set("ZZZ"))
	assert.Equal(t, "USD", sel.Current().Code)
}
