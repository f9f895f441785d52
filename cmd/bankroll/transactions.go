package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/punterlabs/bankroll/internal/cli"
	"github.com/punterlabs/bankroll/internal/datefilter"
	"github.com/punterlabs/bankroll/internal/model"
)

func depositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <campaign-id> <amount>",
		Short: "Record a deposit into a campaign",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordTransaction(cmd, args, model.KindDeposit)
		},
	}
}

func withdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <campaign-id> <amount>",
		Short: "Record a withdrawal from a campaign",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordTransaction(cmd, args, model.KindWithdrawal)
		},
	}
}

func recordTransaction(cmd *cobra.Command, args []string, kind model.TransactionKind) error {
	ctx := cmd.Context()

	campaignID, err := parseID(args[0], "campaign")
	if err != nil {
		return err
	}

	backend, err := initBackend()
	if err != nil {
		return err
	}
	sel := initCurrency()

	amount, err := parseAmount(args[1], sel)
	if err != nil {
		return err
	}

	created, err := backend.CreateTransaction(ctx, model.Transaction{
		CampaignID: campaignID,
		Kind:       kind,
		Amount:     amount,
	})
	if err != nil {
		return err
	}

	verb := "Deposited"
	if kind == model.KindWithdrawal {
		verb = "Withdrew"
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s %s (transaction %d)",
		verb, sel.Format(created.Amount), created.ID)))
	return nil
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions <campaign-id>",
		Short: "List a campaign's transactions",
		Args:  cobra.ExactArgs(1),
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

			backend, err := initBackend()
			if err != nil {
				return err
			}
			sel := initCurrency()

			txns, err := backend.ListTransactions(ctx, campaignID)
			if err != nil {
				return err
			}

			r := datefilter.Resolve(filter, time.Now())
			txns = datefilter.Apply(txns, r, func(t model.Transaction) time.Time { return t.CreatedAt })

			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No transactions in %s.", datefilter.Describe(filter))))
				return nil
			}

			fmt.Println(cli.SubtitleStyle.Render(datefilter.Describe(filter)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Date"),
				cli.BoldStyle.Render("Type"),
				cli.BoldStyle.Render("Amount"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4), strings.Repeat("-", 10),
				strings.Repeat("-", 10), strings.Repeat("-", 10))

			for _, txn := range txns {
				signed := txn.SignedAmount()
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					txn.ID,
					txn.CreatedAt.Format("2006-01-02"),
					txn.Kind,
					cli.FormatAmount(sel.Format(signed), signed))
			}
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}
