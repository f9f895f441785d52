// Package charts shapes filtered campaign records into labeled series
// and renders them as terminal charts. All series derive from the same
// filtered record set the stats aggregator consumes.
package charts

import (
	"fmt"
	"sort"
	"time"

	"github.com/punterlabs/bankroll/internal/model"
	"github.com/punterlabs/bankroll/internal/stats"
)

// Point is one labeled value in a series.
type Point struct {
	Label string
	Value float64
}

// Series is an ordered list of points with a title.
type Series struct {
	Title  string
	Points []Point
}

// balanceEvent is one balance-affecting record in the chronological walk.
type balanceEvent struct {
	at    time.Time
	label string
	delta float64
}

// BalanceSeries walks transactions and bets in chronological order,
// starting from the campaign's start balance: +amount for deposits,
// -amount for withdrawals, -stake for every bet (stake is committed at
// placement, settled or not). The server-reported current balance is
// appended as a final "Current" point when the walk doesn't end there.
func BalanceSeries(campaign model.Campaign, transactions []model.Transaction, bets []model.Bet) Series {
	events := make([]balanceEvent, 0, len(transactions)+len(bets))
	for _, txn := range transactions {
		events = append(events, balanceEvent{
			at:    txn.CreatedAt,
			label: txn.CreatedAt.Format("Jan 2"),
			delta: txn.SignedAmount(),
		})
	}
	for _, bet := range bets {
		events = append(events, balanceEvent{
			at:    bet.CreatedAt,
			label: bet.CreatedAt.Format("Jan 2"),
			delta: -bet.Stake,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})

	series := Series{
		Title:  "Balance Progress",
		Points: []Point{{Label: "Start", Value: campaign.StartBalance}},
	}
	balance := campaign.StartBalance
	for _, event := range events {
		balance += event.delta
		series.Points = append(series.Points, Point{Label: event.label, Value: balance})
	}

	last := series.Points[len(series.Points)-1]
	if last.Value != campaign.CurrentBalance {
		series.Points = append(series.Points, Point{Label: "Current", Value: campaign.CurrentBalance})
	}
	return series
}

// OutcomeDistribution counts win/loss/pending over the filtered bets,
// in that fixed order, for a proportional chart.
func OutcomeDistribution(bets []model.Bet) Series {
	var wins, losses, pending int
	for _, bet := range bets {
		switch bet.Result {
		case model.ResultWin:
			wins++
		case model.ResultLoss:
			losses++
		case model.ResultPending:
			pending++
		}
	}
	return Series{
		Title: "Bet Outcomes",
		Points: []Point{
			{Label: "Wins", Value: float64(wins)},
			{Label: "Losses", Value: float64(losses)},
			{Label: "Pending", Value: float64(pending)},
		},
	}
}

// DailyProfitLoss groups bets by creation day ascending (pending
// contributes 0) and also returns the parallel cumulative series.
func DailyProfitLoss(bets []model.Bet) (daily, cumulative Series) {
	days := stats.ByDay(nil, bets)

	daily = Series{Title: "Daily Profit/Loss"}
	cumulative = Series{Title: "Cumulative Profit/Loss"}
	running := 0.0
	for _, day := range days {
		running += day.Total
		daily.Points = append(daily.Points, Point{Label: day.DayKey(), Value: day.Total})
		cumulative.Points = append(cumulative.Points, Point{Label: day.DayKey(), Value: running})
	}
	return daily, cumulative
}

// Extremes returns the minimum and maximum values of a series, both 0
// for an empty one.
func (s Series) Extremes() (minV, maxV float64) {
	if len(s.Points) == 0 {
		return 0, 0
	}
	minV, maxV = s.Points[0].Value, s.Points[0].Value
	for _, p := range s.Points[1:] {
		if p.Value < minV {
			minV = p.Value
		}
		if p.Value > maxV {
			maxV = p.Value
		}
	}
	return minV, maxV
}

// Total sums the series values.
func (s Series) Total() float64 {
	total := 0.0
	for _, p := range s.Points {
		total += p.Value
	}
	return total
}

// percentLabel renders a point's share of the series total.
func percentLabel(value, total float64) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", value/total*100)
}
