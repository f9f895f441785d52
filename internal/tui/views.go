package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/punterlabs/bankroll/internal/charts"
	"github.com/punterlabs/bankroll/internal/cli"
	"github.com/punterlabs/bankroll/internal/datefilter"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	dimStyle      = lipgloss.NewStyle().Foreground(cli.SubtleColor)
	errStyle      = lipgloss.NewStyle().Foreground(cli.ErrorColor)
	paneStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(cli.DiceIcon + " bankroll"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s · %s",
		m.selection.Current().Code, datefilter.Describe(m.filter))))
	b.WriteString("\n\n")

	switch m.state {
	case stateLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" loading...")
	case statePicking:
		b.WriteString(m.pickerView())
	case stateViewing:
		b.WriteString(m.campaignView())
	}

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(errStyle.Render(cli.ErrorIcon + " " + userFacing(m.err)))
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) pickerView() string {
	if len(m.campaigns) == 0 {
		return dimStyle.Render("No campaigns. Create one with 'bankroll campaigns create'.")
	}

	var b strings.Builder
	b.WriteString("Campaigns\n")
	for i, campaign := range m.campaigns {
		line := fmt.Sprintf("%s  %s → %s",
			campaign.Name,
			m.selection.Format(campaign.StartBalance),
			m.selection.Format(campaign.CurrentBalance))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) campaignView() string {
	if m.campaign == nil {
		return ""
	}
	s := m.summary

	summaryPane := paneStyle.Render(fmt.Sprintf(
		"%s\nBalance  %s → %s\nP/L      %s\nWin rate %.1f%% · ROI %.1f%%\nBets     %d (%dW/%dL/%dP)",
		headerStyle.Render(m.campaign.Name),
		m.selection.Format(s.StartBalance),
		m.selection.Format(s.EndBalance),
		cli.FormatAmount(m.selection.Format(s.TotalProfitLoss), s.TotalProfitLoss),
		s.WinRate, s.ROI,
		s.TotalBets, s.WinningBets, s.LosingBets, s.PendingBets))

	transactions, bets := m.filteredRecords()
	cur := m.selection.Current()

	chartWidth := m.width - 8
	balancePane := paneStyle.Render(charts.RenderLine(
		charts.BalanceSeries(*m.campaign, transactions, bets), cur, chartWidth))
	outcomePane := paneStyle.Render(charts.RenderDistribution(
		charts.OutcomeDistribution(bets), chartWidth))

	return lipgloss.JoinVertical(lipgloss.Left,
		summaryPane,
		balancePane,
		outcomePane,
		paneStyle.Render(m.betTable.View()),
	)
}

func (m Model) helpLine() string {
	switch m.state {
	case statePicking:
		return "↑/↓ move · enter open · r refresh · c currency · f filter · q quit"
	case stateViewing:
		return "↑/↓ scroll bets · esc back · r refresh · c currency · f filter · q quit"
	default:
		return "q quit"
	}
}
