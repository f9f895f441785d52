package main

import (
	"github.com/spf13/cobra"

	"github.com/punterlabs/bankroll/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Browse campaigns, stats, charts, and bets in a full-screen terminal
dashboard. Cycle the display currency with 'c' and the date filter
with 'f'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, err := initBackend()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), backend, initCurrency())
		},
	}
}
