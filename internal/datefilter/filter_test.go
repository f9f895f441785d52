package datefilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punterlabs/bankroll/internal/model"
)

var now = time.Date(2024, time.June, 15, 14, 30, 0, 0, time.Local)

func TestResolve_Month(t *testing.T) {
	r := Resolve(ForMonth(time.March, 2024), now)

	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local), r.Start)
	assert.Equal(t, time.Date(2024, time.March, 31, 23, 59, 59, int(999*time.Millisecond), time.Local), r.End)
}

func TestResolve_MonthHandlesFebruary(t *testing.T) {
	r := Resolve(ForMonth(time.February, 2024), now)
	assert.Equal(t, 29, r.End.Day(), "2024 is a leap year")

	r = Resolve(ForMonth(time.February, 2023), now)
	assert.Equal(t, 28, r.End.Day())
}

func TestResolve_All(t *testing.T) {
	r := Resolve(All(), now)
	assert.Equal(t, time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local), r.Start)
	assert.Equal(t, now, r.End)
}

func TestResolve_Custom(t *testing.T) {
	r := Resolve(Custom("2024-03-10", "2024-03-20"), now)
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.Local), r.Start)
	assert.Equal(t, time.Date(2024, time.March, 20, 23, 59, 59, int(999*time.Millisecond), time.Local), r.End)
}

func TestResolve_CustomMissingBounds(t *testing.T) {
	// Missing start falls back to the first of the current month,
	// missing end to now (end-of-day normalized).
	r := Resolve(Custom("", ""), now)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local), r.Start)
	assert.Equal(t, 15, r.End.Day())
	assert.Equal(t, 23, r.End.Hour())
}

func TestDefault_IsCurrentMonth(t *testing.T) {
	f := Default(now)
	assert.Equal(t, KindMonth, f.Kind)
	assert.Equal(t, time.June, f.Month)
	assert.Equal(t, 2024, f.Year)
}

func TestApply_InclusiveBoundsAndIdempotence(t *testing.T) {
	r := Resolve(ForMonth(time.March, 2024), now)

	bets := []model.Bet{
		{ID: 1, CreatedAt: time.Date(2024, time.February, 29, 23, 59, 59, 0, time.Local)},
		{ID: 2, CreatedAt: r.Start},
		{ID: 3, CreatedAt: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)},
		{ID: 4, CreatedAt: r.End},
		{ID: 5, CreatedAt: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.Local)},
	}

	ts := func(b model.Bet) time.Time { return b.CreatedAt }

	filtered := Apply(bets, r, ts)
	require.Len(t, filtered, 3)
	assert.Equal(t, int64(2), filtered[0].ID)
	assert.Equal(t, int64(4), filtered[2].ID)

	again := Apply(filtered, r, ts)
	assert.Equal(t, filtered, again)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{name: "all time", filter: All(), want: "All Time"},
		{name: "month", filter: ForMonth(time.March, 2024), want: "March 2024"},
		{name: "custom", filter: Custom("2024-03-01", "2024-03-31"), want: "2024-03-01 – 2024-03-31"},
		{name: "custom without bounds", filter: Custom("", ""), want: "Custom Range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.filter))
		})
	}
}

func TestLastNDays(t *testing.T) {
	f := LastNDays(30, now)
	assert.Equal(t, KindCustom, f.Kind)
	assert.Equal(t, "2024-05-16", f.Start)
	assert.Equal(t, "2024-06-15", f.End)
}

func TestYears(t *testing.T) {
	years := Years(now)
	require.Len(t, years, 6)
	assert.Equal(t, 2024, years[0])
	assert.Equal(t, 2019, years[5])
}
