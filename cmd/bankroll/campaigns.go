package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/punterlabs/bankroll/internal/cli"
	"github.com/punterlabs/bankroll/internal/currency"
)

func campaignsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "Manage betting campaigns",
		Long:  `List, inspect, and create the campaigns your bankroll is split across.`,
	}

	cmd.AddCommand(listCampaignsCmd())
	cmd.AddCommand(showCampaignCmd())
	cmd.AddCommand(createCampaignCmd())

	return cmd
}

func listCampaignsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all campaigns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			backend, err := initBackend()
			if err != nil {
				return err
			}
			sel := initCurrency()

			campaigns, err := backend.ListCampaigns(ctx)
			if err != nil {
				return err
			}

			if len(campaigns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No campaigns yet. Use 'bankroll campaigns create' to start one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Start"),
				cli.BoldStyle.Render("Current"),
				cli.BoldStyle.Render("Net"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4), strings.Repeat("-", 20),
				strings.Repeat("-", 10), strings.Repeat("-", 10), strings.Repeat("-", 10))

			for _, c := range campaigns {
				net := c.CurrentBalance - c.StartBalance
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					c.ID, c.Name,
					sel.Format(c.StartBalance),
					sel.Format(c.CurrentBalance),
					cli.FormatAmount(sel.Format(net), net))
			}
			return nil
		},
	}
}

func showCampaignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one campaign's balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0], "campaign")
			if err != nil {
				return err
			}

			backend, err := initBackend()
			if err != nil {
				return err
			}
			sel := initCurrency()

			campaign, err := backend.GetCampaign(ctx, id)
			if err != nil {
				return err
			}

			net := campaign.CurrentBalance - campaign.StartBalance
			content := fmt.Sprintf(
				"Start balance:     %s\nCurrent balance:   %s\nTotal deposits:    %s\nTotal withdrawals: %s\nNet:               %s",
				sel.Format(campaign.StartBalance),
				sel.Format(campaign.CurrentBalance),
				sel.Format(campaign.TotalDeposits),
				sel.Format(campaign.TotalWithdrawals),
				cli.FormatAmount(sel.Format(net), net))

			fmt.Println(cli.RenderBox(campaign.Name, content))
			return nil
		},
	}
}

func createCampaignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> <start-balance>",
		Short: "Create a new campaign",
		Long:  `Create a campaign with a starting balance, entered in the active display currency.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			backend, err := initBackend()
			if err != nil {
				return err
			}
			sel := initCurrency()

			startDisplay, err := strconv.ParseFloat(args[1], 64)
			if err != nil || startDisplay <= 0 {
				return fmt.Errorf("start balance must be a positive number, got %q", args[1])
			}
			start := currency.ToBase(startDisplay, sel.Current())

			campaign, err := backend.CreateCampaign(ctx, args[0], start)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created campaign %q (id %d) with %s",
				campaign.Name, campaign.ID, sel.Format(campaign.StartBalance))))
			return nil
		},
	}
}
