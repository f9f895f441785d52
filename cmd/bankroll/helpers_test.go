package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punterlabs/bankroll/internal/currency"
	"github.com/punterlabs/bankroll/internal/datefilter"
)

func filterCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	addFilterFlags(cmd)
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
	return cmd
}

func TestFilterFromFlags(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		flags    map[string]string
		name     string
		wantKind datefilter.Kind
		wantErr  bool
	}{
		{name: "default is current month", flags: nil, wantKind: datefilter.KindMonth},
		{name: "all flag", flags: map[string]string{"all": "true"}, wantKind: datefilter.KindAll},
		{name: "month flag", flags: map[string]string{"month": "1"}, wantKind: datefilter.KindMonth},
		{name: "year only", flags: map[string]string{"year": "2023"}, wantKind: datefilter.KindMonth},
		{name: "custom range", flags: map[string]string{"from": "2024-01-01", "to": "2024-02-01"}, wantKind: datefilter.KindCustom},
		{name: "open-ended custom", flags: map[string]string{"from": "2024-01-01"}, wantKind: datefilter.KindCustom},
		{name: "bad month", flags: map[string]string{"month": "13"}, wantErr: true},
		{name: "bad date", flags: map[string]string{"from": "01/02/2024"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := filterFromFlags(filterCmd(t, tt.flags), now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, filter.Kind)
		})
	}
}

func TestFilterFromFlags_YearDefaultsMonth(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

	filter, err := filterFromFlags(filterCmd(t, map[string]string{"year": "2023"}), now)
	require.NoError(t, err)
	assert.Equal(t, time.March, filter.Month)
	assert.Equal(t, 2023, filter.Year)
}

func TestParseID(t *testing.T) {
	id, err := parseID("42", "campaign")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := parseID(bad, "campaign")
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseAmount_ConvertsToBase(t *testing.T) {
	sel := currency.NewSelection(nil)
	require.NoError(t, sel.Set("TND"))

	// 312 TND entered on screen is 100 USD on the wire.
	amount, err := parseAmount("312", sel)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, amount, 1e-9)

	_, err = parseAmount("oops", sel)
	assert.Error(t, err)
}
