package stats

import (
	"sort"
	"time"

	"github.com/punterlabs/bankroll/internal/model"
)

// DayTotal is one calendar day's aggregate profit/loss movement: bets
// contribute profit_loss, transactions their signed amount.
type DayTotal struct {
	Date  time.Time
	Total float64
}

// DayKey formats the day for grouping and display.
func (d DayTotal) DayKey() string {
	return d.Date.Format("2006-01-02")
}

// SportTotal aggregates bets sharing a sport label.
type SportTotal struct {
	Sport      string
	Wins       int
	Losses     int
	Pending    int
	ProfitLoss float64
}

// ByDay groups records by local calendar date, ascending. The record's
// local date decides the bucket, never the time of day.
func ByDay(transactions []model.Transaction, bets []model.Bet) []DayTotal {
	buckets := make(map[string]*DayTotal)

	add := func(ts time.Time, amount float64) {
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
		key := day.Format("2006-01-02")
		bucket, ok := buckets[key]
		if !ok {
			bucket = &DayTotal{Date: day}
			buckets[key] = bucket
		}
		bucket.Total += amount
	}

	for _, txn := range transactions {
		add(txn.CreatedAt, txn.SignedAmount())
	}
	for _, bet := range bets {
		if bet.Result.Settled() {
			add(bet.CreatedAt, bet.ProfitLoss)
		} else {
			add(bet.CreatedAt, 0)
		}
	}

	days := make([]DayTotal, 0, len(buckets))
	for _, bucket := range buckets {
		days = append(days, *bucket)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

// BestAndWorstDay picks the days with the highest and lowest aggregate.
// With no records both are zero-valued entries.
func BestAndWorstDay(days []DayTotal) (best, worst DayTotal) {
	if len(days) == 0 {
		return DayTotal{}, DayTotal{}
	}
	best, worst = days[0], days[0]
	for _, day := range days[1:] {
		if day.Total > best.Total {
			best = day
		}
		if day.Total < worst.Total {
			worst = day
		}
	}
	return best, worst
}

// BySport groups bets by their free-text sport label, sorted by summed
// profit/loss descending and label ascending on ties.
func BySport(bets []model.Bet) []SportTotal {
	buckets := make(map[string]*SportTotal)

	for _, bet := range bets {
		bucket, ok := buckets[bet.Sport]
		if !ok {
			bucket = &SportTotal{Sport: bet.Sport}
			buckets[bet.Sport] = bucket
		}
		switch bet.Result {
		case model.ResultWin:
			bucket.Wins++
			bucket.ProfitLoss += bet.ProfitLoss
		case model.ResultLoss:
			bucket.Losses++
			bucket.ProfitLoss += bet.ProfitLoss
		case model.ResultPending:
			bucket.Pending++
		}
	}

	sports := make([]SportTotal, 0, len(buckets))
	for _, bucket := range buckets {
		sports = append(sports, *bucket)
	}
	sort.Slice(sports, func(i, j int) bool {
		if sports[i].ProfitLoss != sports[j].ProfitLoss {
			return sports[i].ProfitLoss > sports[j].ProfitLoss
		}
		return sports[i].Sport < sports[j].Sport
	})
	return sports
}
