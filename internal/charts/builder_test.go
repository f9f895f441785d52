package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punterlabs/bankroll/internal/model"
)

func day(d int, hour int) time.Time {
	return time.Date(2024, time.March, d, hour, 0, 0, 0, time.Local)
}

func TestBalanceSeries_ChronologicalWalk(t *testing.T) {
	campaign := model.Campaign{StartBalance: 1000, CurrentBalance: 1350}
	transactions := []model.Transaction{
		{Kind: model.KindDeposit, Amount: 200, CreatedAt: day(2, 10)},
		{Kind: model.KindWithdrawal, Amount: 100, CreatedAt: day(5, 9)},
	}
	bets := []model.Bet{
		// Placed between the two transactions; stake committed at placement.
		{Stake: 300, Odds: 2.5, Result: model.ResultWin, ProfitLoss: 450, CreatedAt: day(3, 15)},
	}

	series := BalanceSeries(campaign, transactions, bets)

	require.Len(t, series.Points, 5)
	assert.Equal(t, "Start", series.Points[0].Label)
	assert.InDelta(t, 1000.0, series.Points[0].Value, 1e-9)
	assert.InDelta(t, 1200.0, series.Points[1].Value, 1e-9, "deposit")
	assert.InDelta(t, 900.0, series.Points[2].Value, 1e-9, "stake committed")
	assert.InDelta(t, 800.0, series.Points[3].Value, 1e-9, "withdrawal")
	assert.Equal(t, "Current", series.Points[4].Label)
	assert.InDelta(t, 1350.0, series.Points[4].Value, 1e-9, "server-reported balance")
}

func TestBalanceSeries_NoDuplicateCurrentPoint(t *testing.T) {
	campaign := model.Campaign{StartBalance: 500, CurrentBalance: 400}
	bets := []model.Bet{
		{Stake: 100, Odds: 2, Result: model.ResultPending, CreatedAt: day(1, 12)},
	}

	series := BalanceSeries(campaign, nil, bets)

	// The walk already ends at 400, so no extra "Current" point.
	require.Len(t, series.Points, 2)
	assert.NotEqual(t, "Current", series.Points[1].Label)
	assert.InDelta(t, 400.0, series.Points[1].Value, 1e-9)
}

func TestBalanceSeries_PendingStakeCommitted(t *testing.T) {
	campaign := model.Campaign{StartBalance: 500, CurrentBalance: 300}
	bets := []model.Bet{
		{Stake: 100, Odds: 2, Result: model.ResultPending, CreatedAt: day(1, 10)},
		{Stake: 100, Odds: 3, Result: model.ResultPending, CreatedAt: day(2, 10)},
	}

	series := BalanceSeries(campaign, nil, bets)
	require.Len(t, series.Points, 3)
	assert.InDelta(t, 400.0, series.Points[1].Value, 1e-9)
	assert.InDelta(t, 300.0, series.Points[2].Value, 1e-9)
}

func TestOutcomeDistribution(t *testing.T) {
	bets := []model.Bet{
		{Result: model.ResultWin},
		{Result: model.ResultWin},
		{Result: model.ResultLoss},
		{Result: model.ResultPending},
	}

	series := OutcomeDistribution(bets)
	require.Len(t, series.Points, 3)
	assert.Equal(t, "Wins", series.Points[0].Label)
	assert.InDelta(t, 2.0, series.Points[0].Value, 1e-9)
	assert.InDelta(t, 1.0, series.Points[1].Value, 1e-9)
	assert.InDelta(t, 1.0, series.Points[2].Value, 1e-9)
	assert.InDelta(t, 4.0, series.Total(), 1e-9)
}

func TestDailyProfitLoss(t *testing.T) {
	bets := []model.Bet{
		{Stake: 100, Odds: 2, Result: model.ResultWin, ProfitLoss: 100, CreatedAt: day(1, 9)},
		{Stake: 50, Odds: 2, Result: model.ResultLoss, ProfitLoss: -50, CreatedAt: day(1, 18)},
		{Stake: 80, Odds: 2, Result: model.ResultLoss, ProfitLoss: -80, CreatedAt: day(2, 12)},
		{Stake: 30, Odds: 2, Result: model.ResultPending, CreatedAt: day(3, 8)},
	}

	daily, cumulative := DailyProfitLoss(bets)

	require.Len(t, daily.Points, 3)
	assert.Equal(t, "2024-03-01", daily.Points[0].Label)
	assert.InDelta(t, 50.0, daily.Points[0].Value, 1e-9)
	assert.InDelta(t, -80.0, daily.Points[1].Value, 1e-9)
	assert.InDelta(t, 0.0, daily.Points[2].Value, 1e-9, "pending day sums to zero")

	require.Len(t, cumulative.Points, 3)
	assert.InDelta(t, 50.0, cumulative.Points[0].Value, 1e-9)
	assert.InDelta(t, -30.0, cumulative.Points[1].Value, 1e-9)
	assert.InDelta(t, -30.0, cumulative.Points[2].Value, 1e-9)
}

func TestSeries_Extremes(t *testing.T) {
	s := Series{Points: []Point{{Value: 3}, {Value: -7}, {Value: 12}}}
	minV, maxV := s.Extremes()
	assert.InDelta(t, -7.0, minV, 1e-9)
	assert.InDelta(t, 12.0, maxV, 1e-9)

	empty := Series{}
	minV, maxV = empty.Extremes()
	assert.Zero(t, minV)
	assert.Zero(t, maxV)
}
