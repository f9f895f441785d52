package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/punterlabs/bankroll/internal/charts"
	"github.com/punterlabs/bankroll/internal/cli"
	"github.com/punterlabs/bankroll/internal/common"
	"github.com/punterlabs/bankroll/internal/datefilter"
	"github.com/punterlabs/bankroll/internal/model"
	"github.com/punterlabs/bankroll/internal/stats"
)

func statsCmd() *cobra.Command {
	var (
		offline   bool
		withChart bool
	)

	cmd := &cobra.Command{
		Use:   "stats <campaign-id>",
		Short: "Show a campaign's statistics",
		Long: `Compute win rate, ROI, profit/loss, and breakdowns for a campaign
over a date range. Defaults to the current calendar month; pass --all
for the campaign's full history.

With --offline the last fetched snapshot is used instead of the live
backend (see 'bankroll refresh').`,
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

			campaign, transactions, bets, err := loadRecords(ctx, campaignID, offline)
			if err != nil {
				return err
			}

			r := datefilter.Resolve(filter, time.Now())
			transactions = datefilter.Apply(transactions, r, func(t model.Transaction) time.Time { return t.CreatedAt })
			bets = datefilter.Apply(bets, r, func(b model.Bet) time.Time { return b.CreatedAt })

			sel := initCurrency()
			summary := stats.Compute(*campaign, transactions, bets)

			renderSummary(campaign.Name, datefilter.Describe(filter), summary, sel.Format)
			renderBreakdowns(transactions, bets, sel.Format)

			if withChart {
				cur := sel.Current()
				fmt.Println()
				fmt.Println(charts.RenderLine(charts.BalanceSeries(*campaign, transactions, bets), cur, 0))
				fmt.Println()
				fmt.Println(charts.RenderDistribution(charts.OutcomeDistribution(bets), 0))
				daily, _ := charts.DailyProfitLoss(bets)
				if len(daily.Points) > 0 {
					fmt.Println()
					fmt.Println(charts.RenderBars(daily, cur, 0))
				}
			}
			return nil
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().BoolVar(&offline, "offline", false, "Use the local snapshot instead of the backend")
	cmd.Flags().BoolVar(&withChart, "charts", true, "Render balance and outcome charts")
	return cmd
}

// loadRecords fetches a campaign's records from the backend, or from
// the snapshot cache when offline is set.
func loadRecords(ctx context.Context, campaignID int64, offline bool) (*model.Campaign, []model.Transaction, []model.Bet, error) {
	if offline {
		store, err := initSnapshots(ctx)
		if err != nil {
			return nil, nil, nil, err
		}
		defer func() { _ = store.Close() }()

		snapshot, err := store.LoadSnapshot(ctx, campaignID)
		if errors.Is(err, common.ErrNoSnapshot) {
			return nil, nil, nil, common.NewUserError(
				fmt.Sprintf("No snapshot for campaign %d. Run 'bankroll refresh' while online first.", campaignID), err)
		}
		if err != nil {
			return nil, nil, nil, err
		}
		return &snapshot.Campaign, snapshot.Transactions, snapshot.Bets, nil
	}

	backend, err := initBackend()
	if err != nil {
		return nil, nil, nil, err
	}
	campaign, err := backend.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, nil, nil, err
	}
	transactions, err := backend.ListTransactions(ctx, campaignID)
	if err != nil {
		return nil, nil, nil, err
	}
	bets, err := backend.ListBets(ctx, campaignID)
	if err != nil {
		return nil, nil, nil, err
	}
	return campaign, transactions, bets, nil
}

func renderSummary(name, rangeLabel string, s stats.Summary, format func(float64) string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Balance:    %s → %s (%s, %+.1f%%)\n",
		format(s.StartBalance), format(s.EndBalance),
		cli.FormatAmount(format(s.NetChange), s.NetChange), s.PercentageChange)
	fmt.Fprintf(&b, "Deposits:   %s across %d · Withdrawals: %s across %d\n",
		format(s.TotalDeposits), s.DepositCount, format(s.TotalWithdrawals), s.WithdrawalCount)
	fmt.Fprintf(&b, "Bets:       %d (%d won, %d lost, %d pending)\n",
		s.TotalBets, s.WinningBets, s.LosingBets, s.PendingBets)
	fmt.Fprintf(&b, "Staked:     %s · P/L: %s\n",
		format(s.TotalStake), cli.FormatAmount(format(s.TotalProfitLoss), s.TotalProfitLoss))
	fmt.Fprintf(&b, "Win rate:   %.1f%% · ROI: %.1f%%\n", s.WinRate, s.ROI)
	fmt.Fprintf(&b, "Avg odds:   %.2f · Avg stake: %s", s.AverageOdds, format(s.AverageStake))
	if s.BestBet != nil {
		fmt.Fprintf(&b, "\nBest bet:   %s %s", s.BestBet.Sport,
			cli.FormatAmount(format(s.BestBet.ProfitLoss), s.BestBet.ProfitLoss))
	}
	if s.WorstBet != nil {
		fmt.Fprintf(&b, "\nWorst bet:  %s %s", s.WorstBet.Sport,
			cli.FormatAmount(format(s.WorstBet.ProfitLoss), s.WorstBet.ProfitLoss))
	}

	fmt.Println(cli.RenderBox(fmt.Sprintf("%s — %s", name, rangeLabel), b.String()))
}

func renderBreakdowns(transactions []model.Transaction, bets []model.Bet, format func(float64) string) {
	days := stats.ByDay(transactions, bets)
	if len(days) > 0 {
		best, worst := stats.BestAndWorstDay(days)
		fmt.Printf("%s best %s (%s) · worst %s (%s)\n",
			cli.SubtitleStyle.Render("Days:"),
			best.DayKey(), cli.FormatAmount(format(best.Total), best.Total),
			worst.DayKey(), cli.FormatAmount(format(worst.Total), worst.Total))
	}

	sports := stats.BySport(bets)
	for _, sport := range sports {
		fmt.Printf("  %-14s %dW/%dL/%dP  %s\n",
			sport.Sport, sport.Wins, sport.Losses, sport.Pending,
			cli.FormatAmount(format(sport.ProfitLoss), sport.ProfitLoss))
	}
}
