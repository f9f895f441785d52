package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/punterlabs/bankroll/internal/currency"
	"github.com/punterlabs/bankroll/internal/service"
)

// Run starts the dashboard and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, backend service.Backend, selection *currency.Selection) error {
	program := tea.NewProgram(
		newModel(ctx, backend, selection),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard exited with error: %w", err)
	}
	return nil
}
