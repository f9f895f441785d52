package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/punterlabs/bankroll/internal/cli"
	"github.com/punterlabs/bankroll/internal/service"
)

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch all campaigns into the local snapshot cache",
		Long: `Pull every campaign with its transactions and bets from the backend
and store them locally, so stats and the dashboard keep working with
--offline when the backend is unreachable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			backend, err := initBackend()
			if err != nil {
				return err
			}
			store, err := initSnapshots(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			campaigns, err := backend.ListCampaigns(ctx)
			if err != nil {
				return err
			}
			if len(campaigns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No campaigns to refresh."))
				return nil
			}

			bar := progressbar.NewOptions(len(campaigns),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Refreshing campaigns...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)

			var failures int
			for _, campaign := range campaigns {
				transactions, txnErr := backend.ListTransactions(ctx, campaign.ID)
				bets, betErr := backend.ListBets(ctx, campaign.ID)
				if txnErr != nil || betErr != nil {
					slog.Warn("failed to fetch campaign records",
						"campaign", campaign.Name, "txn_error", txnErr, "bet_error", betErr)
					failures++
					_ = bar.Add(1)
					continue
				}

				snapshot := &service.Snapshot{
					FetchedAt:    time.Now(),
					Campaign:     campaign,
					Transactions: transactions,
					Bets:         bets,
				}
				if saveErr := store.SaveSnapshot(ctx, snapshot); saveErr != nil {
					slog.Warn("failed to save snapshot", "campaign", campaign.Name, "error", saveErr)
					failures++
				}
				_ = bar.Add(1)
			}

			if failures > 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("Refreshed %d of %d campaigns",
					len(campaigns)-failures, len(campaigns))))
				return nil
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Refreshed %d campaigns", len(campaigns))))
			return nil
		},
	}
}
