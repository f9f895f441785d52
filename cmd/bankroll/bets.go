package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/punterlabs/bankroll/internal/cli"
	"github.com/punterlabs/bankroll/internal/common"
	"github.com/punterlabs/bankroll/internal/currency"
	"github.com/punterlabs/bankroll/internal/datefilter"
	"github.com/punterlabs/bankroll/internal/model"
	"github.com/punterlabs/bankroll/internal/service"
)

func betsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bets",
		Short: "Place, settle, and list bets",
	}

	cmd.AddCommand(listBetsCmd())
	cmd.AddCommand(placeBetCmd())
	cmd.AddCommand(settleBetCmd())

	return cmd
}

func listBetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [campaign-id]",
		Short: "List bets, for one campaign or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			backend, err := initBackend()
			if err != nil {
				return err
			}
			sel := initCurrency()

			var bets []model.Bet
			if len(args) == 1 {
				campaignID, idErr := parseID(args[0], "campaign")
				if idErr != nil {
					return idErr
				}
				bets, err = backend.ListBets(ctx, campaignID)
			} else {
				bets, err = backend.ListAllBets(ctx)
			}
			if err != nil {
				return err
			}

			filter, err := filterFromFlags(cmd, time.Now())
			if err != nil {
				return err
			}
			r := datefilter.Resolve(filter, time.Now())
			bets = datefilter.Apply(bets, r, func(b model.Bet) time.Time { return b.CreatedAt })

			if len(bets) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No bets in %s.", datefilter.Describe(filter))))
				return nil
			}

			fmt.Println(cli.SubtitleStyle.Render(datefilter.Describe(filter)))
			printBetTable(bets, sel)
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func placeBetCmd() *cobra.Command {
	var allIn bool

	cmd := &cobra.Command{
		Use:   "place <campaign-id> <sport> <odds> [stake]",
		Short: "Place a new pending bet",
		Long: `Place a bet on a campaign. The stake is entered in the active display
currency. Omit it with --all-in to stake the campaign's full current
balance.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			campaignID, err := parseID(args[0], "campaign")
			if err != nil {
				return err
			}

			odds, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return common.NewUserError(fmt.Sprintf("Invalid odds: %q", args[2]), common.ErrInvalidInput)
			}

			backend, err := initBackend()
			if err != nil {
				return err
			}
			sel := initCurrency()

			bet := model.NewBet{
				CampaignID: campaignID,
				Sport:      args[1],
				Odds:       odds,
			}

			switch {
			case len(args) == 4:
				stake, amtErr := parseAmount(args[3], sel)
				if amtErr != nil {
					return amtErr
				}
				bet.Stake = &stake
			case !allIn:
				return common.NewUserError("Provide a stake or pass --all-in to bet the full balance", common.ErrInvalidInput)
			}

			// Validate against the live balance before committing money.
			campaign, err := backend.GetCampaign(ctx, campaignID)
			if err != nil {
				return err
			}
			if err := bet.Validate(campaign.CurrentBalance); err != nil {
				return common.NewUserError(err.Error(), common.ErrInvalidInput)
			}

			created, err := backend.PlaceBet(ctx, bet)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Placed %s on %s at %.2f (bet %d, potential return %s)",
				sel.Format(created.Stake), created.Sport, created.Odds, created.ID,
				sel.Format(created.PotentialReturn()))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&allIn, "all-in", false, "Stake the campaign's full current balance")
	return cmd
}

func settleBetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle <bet-id> <win|loss>",
		Short: "Settle a pending bet",
		Long: `Record a bet's result. The profit is derived from the bet itself:
stake times (odds - 1) on a win, the lost stake on a loss.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			betID, err := parseID(args[0], "bet")
			if err != nil {
				return err
			}

			result := model.BetResult(args[1])
			if !result.Settled() {
				return common.NewUserError(
					fmt.Sprintf("Invalid result %q, expected win or loss", args[1]), common.ErrInvalidInput)
			}

			backend, err := initBackend()
			if err != nil {
				return err
			}
			sel := initCurrency()

			bet, err := findBet(ctx, backend, betID)
			if err != nil {
				return err
			}
			if bet.Result.Settled() {
				return common.NewUserError(
					fmt.Sprintf("Bet %d is already settled as %s", bet.ID, bet.Result), common.ErrInvalidInput)
			}

			updated, err := backend.SettleBet(ctx, betID, result, bet.SettlementProfit(result))
			if err != nil {
				return err
			}

			if updated.Result == model.ResultWin {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Bet %d won %s",
					updated.ID, sel.Format(updated.ProfitLoss))))
			} else {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("Bet %d lost %s",
					updated.ID, sel.Format(-updated.ProfitLoss))))
			}
			return nil
		},
	}
}

// findBet locates a bet by id across all campaigns; the backend has no
// single-bet endpoint.
func findBet(ctx context.Context, backend service.Backend, betID int64) (*model.Bet, error) {
	bets, err := backend.ListAllBets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bets {
		if bets[i].ID == betID {
			return &bets[i], nil
		}
	}
	return nil, common.NewUserError(fmt.Sprintf("Bet %d not found", betID), common.ErrNotFound)
}

func printBetTable(bets []model.Bet, sel *currency.Selection) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("ID"),
		cli.BoldStyle.Render("Date"),
		cli.BoldStyle.Render("Sport"),
		cli.BoldStyle.Render("Stake"),
		cli.BoldStyle.Render("Odds"),
		cli.BoldStyle.Render("Result"),
		cli.BoldStyle.Render("P/L"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 4), strings.Repeat("-", 10), strings.Repeat("-", 12),
		strings.Repeat("-", 10), strings.Repeat("-", 5), strings.Repeat("-", 7),
		strings.Repeat("-", 10))

	for _, bet := range bets {
		pl := "-"
		if bet.Result.Settled() {
			pl = cli.FormatAmount(sel.Format(bet.ProfitLoss), bet.ProfitLoss)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%s\t%s\n",
			bet.ID,
			bet.CreatedAt.Format("2006-01-02"),
			bet.Sport,
			sel.Format(bet.Stake),
			bet.Odds,
			bet.Result,
			pl)
	}
}
