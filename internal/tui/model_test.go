package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punterlabs/bankroll/internal/api"
	"github.com/punterlabs/bankroll/internal/currency"
	"github.com/punterlabs/bankroll/internal/datefilter"
	"github.com/punterlabs/bankroll/internal/model"
)

func testCampaigns() []model.Campaign {
	return []model.Campaign{
		{ID: 1, Name: "March bankroll", StartBalance: 1000, CurrentBalance: 1250},
		{ID: 2, Name: "Side pot", StartBalance: 500, CurrentBalance: 400},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	sel := currency.NewSelection(nil)
	return newModel(context.Background(), api.NewMockBackend(), sel)
}

func TestUpdate_CampaignsLoaded(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(campaignsLoadedMsg{seq: 0, campaigns: testCampaigns()})
	got := updated.(Model)

	assert.Equal(t, statePicking, got.state)
	require.Len(t, got.campaigns, 2)
	assert.NoError(t, got.err)
}

func TestUpdate_DropsStaleResponses(t *testing.T) {
	m := newTestModel(t)
	m.seq = 3

	// A response from an earlier request must not land.
	updated, _ := m.Update(campaignsLoadedMsg{seq: 2, campaigns: testCampaigns()})
	got := updated.(Model)

	assert.Empty(t, got.campaigns)
	assert.Equal(t, stateLoading, got.state)
}

func TestUpdate_StaleRecordsDoNotOverwriteNewer(t *testing.T) {
	m := newTestModel(t)
	campaigns := testCampaigns()

	current := &campaigns[0]
	m.seq = 5
	updated, _ := m.Update(recordsLoadedMsg{seq: 5, campaign: current})
	got := updated.(Model)
	require.Equal(t, "March bankroll", got.campaign.Name)

	// A slow fetch for the previously selected campaign arrives late.
	updated, _ = got.Update(recordsLoadedMsg{seq: 4, campaign: &campaigns[1]})
	got = updated.(Model)
	assert.Equal(t, "March bankroll", got.campaign.Name)
}

func TestUpdate_LoadErrorSurfaces(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(campaignsLoadedMsg{seq: 0, err: errors.New("backend unavailable")})
	got := updated.(Model)

	assert.Equal(t, statePicking, got.state)
	assert.Error(t, got.err)
}

func TestHandleKey_PickerNavigation(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(campaignsLoadedMsg{seq: 0, campaigns: testCampaigns()})
	m = updated.(Model)

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	updated, _ = m.Update(down)
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)

	// Cursor never walks past the last campaign.
	updated, _ = m.Update(down)
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)

	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	updated, _ = m.Update(up)
	m = updated.(Model)
	assert.Equal(t, 0, m.cursor)
}

func TestHandleKey_SelectBumpsSequence(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(campaignsLoadedMsg{seq: 0, campaigns: testCampaigns()})
	m = updated.(Model)

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	updated, cmd := m.Update(enter)
	m = updated.(Model)

	assert.Equal(t, 1, m.seq)
	assert.Equal(t, stateLoading, m.state)
	assert.NotNil(t, cmd)
}

func TestCycleCurrency(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, "USD", m.selection.Current().Code)

	m.cycleCurrency()
	assert.Equal(t, "EUR", m.selection.Current().Code)

	// Full cycle lands back on the base currency.
	for i := 0; i < len(currency.Available)-1; i++ {
		m.cycleCurrency()
	}
	assert.Equal(t, "USD", m.selection.Current().Code)
}

func TestNextFilter_Cycles(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

	f := datefilter.Default(now)
	assert.Equal(t, datefilter.KindMonth, f.Kind)

	f = nextFilter(f, now)
	assert.Equal(t, datefilter.KindAll, f.Kind)

	f = nextFilter(f, now)
	assert.Equal(t, datefilter.KindCustom, f.Kind)

	f = nextFilter(f, now)
	assert.Equal(t, datefilter.KindMonth, f.Kind)
}

func TestRecompute_FiltersBetTable(t *testing.T) {
	m := newTestModel(t)
	campaigns := testCampaigns()
	m.campaign = &campaigns[0]
	m.filter = datefilter.ForMonth(time.March, 2024)

	inRange := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)
	outOfRange := time.Date(2024, time.April, 10, 12, 0, 0, 0, time.Local)
	m.bets = []model.Bet{
		{ID: 1, Sport: "football", Stake: 100, Odds: 2, Result: model.ResultWin, ProfitLoss: 100, CreatedAt: inRange},
		{ID: 2, Sport: "tennis", Stake: 50, Odds: 1.8, Result: model.ResultPending, CreatedAt: outOfRange},
	}

	m.recompute()

	assert.Equal(t, 1, m.summary.TotalBets)
	assert.Len(t, m.betTable.Rows(), 1)
	assert.Equal(t, "football", m.betTable.Rows()[0][1])
}

func TestView_StatesRender(t *testing.T) {
	m := newTestModel(t)
	m.width = 80

	assert.Contains(t, m.View(), "loading")

	updated, _ := m.Update(campaignsLoadedMsg{seq: 0, campaigns: testCampaigns()})
	m = updated.(Model)
	view := m.View()
	assert.Contains(t, view, "March bankroll")
	assert.Contains(t, view, "Side pot")

	campaigns := testCampaigns()
	m.seq++
	updated, _ = m.Update(recordsLoadedMsg{seq: m.seq, campaign: &campaigns[0]})
	m = updated.(Model)
	assert.Contains(t, m.View(), "Win rate")
}
