package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/punterlabs/bankroll/internal/cli"
	"github.com/punterlabs/bankroll/internal/datefilter"
	"github.com/punterlabs/bankroll/internal/model"
	"github.com/punterlabs/bankroll/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <campaign-id>",
		Short: "Export a campaign report to Google Sheets",
		Long: `Write a campaign's summary, daily and per-sport breakdowns, and bet
details to a Google Sheets spreadsheet.

Authentication comes from GOOGLE_SHEETS_* environment variables:
either GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH, or the OAuth2 trio of
CLIENT_ID, CLIENT_SECRET, and REFRESH_TOKEN. Set
GOOGLE_SHEETS_SPREADSHEET_ID to update an existing sheet instead of
creating one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			campaignID, err := parseID(args[0], "campaign")
			if err != nil {
				return err
			}

			filter, err := filterFromFlags(cmd, time.Now())
			if err != nil {
				return err
			}

			config := sheets.DefaultConfig()
			if err := config.LoadFromEnv(); err != nil {
				return err
			}

			campaign, transactions, bets, err := loadRecords(ctx, campaignID, false)
			if err != nil {
				return err
			}

			r := datefilter.Resolve(filter, time.Now())
			transactions = datefilter.Apply(transactions, r, func(t model.Transaction) time.Time { return t.CreatedAt })
			bets = datefilter.Apply(bets, r, func(b model.Bet) time.Time { return b.CreatedAt })

			writer, err := sheets.NewWriter(ctx, config, slog.Default())
			if err != nil {
				return err
			}

			report := sheets.BuildReport(*campaign, transactions, bets, datefilter.Describe(filter))
			if err := writer.Write(ctx, report); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %q (%s) to Google Sheets",
				campaign.Name, report.RangeLabel)))
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}
