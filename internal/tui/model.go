// Package tui is the interactive dashboard: pick a campaign, watch its
// stats, charts, and bets, and flip display currency or date filter
// without leaving the terminal.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/punterlabs/bankroll/internal/common"
	"github.com/punterlabs/bankroll/internal/currency"
	"github.com/punterlabs/bankroll/internal/datefilter"
	"github.com/punterlabs/bankroll/internal/model"
	"github.com/punterlabs/bankroll/internal/service"
	"github.com/punterlabs/bankroll/internal/stats"
)

type state int

const (
	statePicking state = iota
	stateLoading
	stateViewing
)

// Model holds the dashboard state.
type Model struct {
	ctx       context.Context
	backend   service.Backend
	selection *currency.Selection

	campaigns    []model.Campaign
	campaign     *model.Campaign
	transactions []model.Transaction
	bets         []model.Bet
	summary      stats.Summary

	filter   datefilter.Filter
	keymap   KeyMap
	spinner  spinner.Model
	betTable table.Model
	err      error

	seq      int
	cursor   int
	width    int
	height   int
	state    state
	quitting bool
}

func newModel(ctx context.Context, backend service.Backend, selection *currency.Selection) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	betTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Sport", Width: 14},
			{Title: "Stake", Width: 12},
			{Title: "Odds", Width: 6},
			{Title: "Result", Width: 8},
			{Title: "P/L", Width: 12},
		}),
		table.WithHeight(8),
		table.WithFocused(true),
	)

	return Model{
		ctx:       ctx,
		backend:   backend,
		selection: selection,
		filter:    datefilter.Default(time.Now()),
		keymap:    DefaultKeyMap(),
		spinner:   sp,
		betTable:  betTable,
		state:     stateLoading,
	}
}

// Init kicks off the campaign list fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCampaigns(m.seq))
}

func (m Model) loadCampaigns(seq int) tea.Cmd {
	return func() tea.Msg {
		campaigns, err := m.backend.ListCampaigns(m.ctx)
		return campaignsLoadedMsg{seq: seq, campaigns: campaigns, err: err}
	}
}

func (m Model) loadRecords(seq int, campaignID int64) tea.Cmd {
	return func() tea.Msg {
		campaign, err := m.backend.GetCampaign(m.ctx, campaignID)
		if err != nil {
			return recordsLoadedMsg{seq: seq, err: err}
		}
		transactions, err := m.backend.ListTransactions(m.ctx, campaignID)
		if err != nil {
			return recordsLoadedMsg{seq: seq, err: err}
		}
		bets, err := m.backend.ListBets(m.ctx, campaignID)
		if err != nil {
			return recordsLoadedMsg{seq: seq, err: err}
		}
		return recordsLoadedMsg{seq: seq, campaign: campaign, transactions: transactions, bets: bets}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case campaignsLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			m.state = statePicking
			return m, nil
		}
		m.err = nil
		m.campaigns = msg.campaigns
		if m.cursor >= len(m.campaigns) {
			m.cursor = 0
		}
		m.state = statePicking
		return m, nil

	case recordsLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			m.state = statePicking
			return m, nil
		}
		m.err = nil
		m.campaign = msg.campaign
		m.transactions = msg.transactions
		m.bets = msg.bets
		m.state = stateViewing
		m.recompute()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.state == statePicking && m.cursor > 0 {
			m.cursor--
		} else if m.state == stateViewing {
			var cmd tea.Cmd
			m.betTable, cmd = m.betTable.Update(msg)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.state == statePicking && m.cursor < len(m.campaigns)-1 {
			m.cursor++
		} else if m.state == stateViewing {
			var cmd tea.Cmd
			m.betTable, cmd = m.betTable.Update(msg)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keymap.Select):
		if m.state == statePicking && len(m.campaigns) > 0 {
			m.seq++
			m.state = stateLoading
			return m, tea.Batch(m.spinner.Tick, m.loadRecords(m.seq, m.campaigns[m.cursor].ID))
		}
		return m, nil

	case key.Matches(msg, m.keymap.Back):
		if m.state == stateViewing {
			m.seq++
			m.state = stateLoading
			m.campaign = nil
			return m, tea.Batch(m.spinner.Tick, m.loadCampaigns(m.seq))
		}
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		m.seq++
		m.state = stateLoading
		if m.campaign != nil {
			return m, tea.Batch(m.spinner.Tick, m.loadRecords(m.seq, m.campaign.ID))
		}
		return m, tea.Batch(m.spinner.Tick, m.loadCampaigns(m.seq))

	case key.Matches(msg, m.keymap.Currency):
		m.cycleCurrency()
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keymap.Filter):
		m.filter = nextFilter(m.filter, time.Now())
		m.recompute()
		return m, nil
	}

	if m.state == stateViewing {
		var cmd tea.Cmd
		m.betTable, cmd = m.betTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

// cycleCurrency advances the active display currency through the
// supported table. A persistence failure only costs durability.
func (m *Model) cycleCurrency() {
	current := m.selection.Current()
	for i, c := range currency.Available {
		if c.Code == current.Code {
			next := currency.Available[(i+1)%len(currency.Available)]
			_ = m.selection.Set(next.Code)
			return
		}
	}
}

// nextFilter cycles month → all time → last 30 days → month.
func nextFilter(f datefilter.Filter, now time.Time) datefilter.Filter {
	switch f.Kind {
	case datefilter.KindMonth:
		return datefilter.All()
	case datefilter.KindAll:
		return datefilter.LastNDays(30, now)
	default:
		return datefilter.Default(now)
	}
}

// recompute refreshes the derived view state from the raw records and
// the active filter and currency. Stored amounts never change here.
func (m *Model) recompute() {
	if m.campaign == nil {
		return
	}

	r := datefilter.Resolve(m.filter, time.Now())
	transactions := datefilter.Apply(m.transactions, r, func(t model.Transaction) time.Time { return t.CreatedAt })
	bets := datefilter.Apply(m.bets, r, func(b model.Bet) time.Time { return b.CreatedAt })

	m.summary = stats.Compute(*m.campaign, transactions, bets)

	rows := make([]table.Row, 0, len(bets))
	for i := len(bets) - 1; i >= 0; i-- {
		bet := bets[i]
		pl := "-"
		if bet.Result.Settled() {
			pl = m.selection.Format(bet.ProfitLoss)
		}
		rows = append(rows, table.Row{
			bet.CreatedAt.Format("2006-01-02"),
			bet.Sport,
			m.selection.Format(bet.Stake),
			fmt.Sprintf("%.2f", bet.Odds),
			string(bet.Result),
			pl,
		})
	}
	m.betTable.SetRows(rows)
}

// filteredRecords returns the records narrowed to the active filter,
// for the chart panes.
func (m Model) filteredRecords() ([]model.Transaction, []model.Bet) {
	r := datefilter.Resolve(m.filter, time.Now())
	transactions := datefilter.Apply(m.transactions, r, func(t model.Transaction) time.Time { return t.CreatedAt })
	bets := datefilter.Apply(m.bets, r, func(b model.Bet) time.Time { return b.CreatedAt })
	return transactions, bets
}

func userFacing(err error) string {
	return common.UserMessage(err, err.Error())
}
