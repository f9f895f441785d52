package charts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/punterlabs/bankroll/internal/currency"
)

func usd() currency.Currency {
	return currency.Lookup("USD")
}

func TestRenderLine(t *testing.T) {
	s := Series{
		Title: "Balance Progress",
		Points: []Point{
			{Label: "Start", Value: 1000},
			{Label: "Jan 2", Value: 1200},
			{Label: "Current", Value: 900},
		},
	}

	out := RenderLine(s, usd(), 60)
	assert.Contains(t, out, "Balance Progress")
	assert.Contains(t, out, "$900.00")
	assert.Contains(t, out, "$1200.00")
	assert.Contains(t, out, "3 points")
}

func TestRenderLine_Empty(t *testing.T) {
	out := RenderLine(Series{Title: "Balance Progress"}, usd(), 60)
	assert.Contains(t, out, "(no data)")
}

func TestRenderDistribution(t *testing.T) {
	s := Series{
		Title: "Bet Outcomes",
		Points: []Point{
			{Label: "Wins", Value: 3},
			{Label: "Losses", Value: 1},
			{Label: "Pending", Value: 0},
		},
	}

	out := RenderDistribution(s, 40)
	assert.Contains(t, out, "Wins 3 (75%)")
	assert.Contains(t, out, "Losses 1 (25%)")
	assert.Contains(t, out, "Pending 0 (0%)")
}

func TestRenderDistribution_AllZero(t *testing.T) {
	s := Series{
		Title: "Bet Outcomes",
		Points: []Point{
			{Label: "Wins", Value: 0},
			{Label: "Losses", Value: 0},
			{Label: "Pending", Value: 0},
		},
	}

	out := RenderDistribution(s, 40)
	// No bar row, but the legend still renders with 0%.
	assert.Contains(t, out, "Wins 0 (0%)")
}

func TestRenderBars_SignedValues(t *testing.T) {
	s := Series{
		Title: "Daily Profit/Loss",
		Points: []Point{
			{Label: "2024-03-01", Value: 50},
			{Label: "2024-03-02", Value: -80},
		},
	}

	out := RenderBars(s, usd(), 60)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, out, "$50.00")
	assert.Contains(t, out, "$-80.00")
}
