package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/punterlabs/bankroll/internal/cli"
	"github.com/punterlabs/bankroll/internal/currency"
)

func currencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Manage the display currency",
		Long: `Amounts are stored in USD; the display currency only changes how they
are rendered. The selection persists across runs.`,
	}

	cmd.AddCommand(listCurrenciesCmd())
	cmd.AddCommand(showCurrencyCmd())
	cmd.AddCommand(setCurrencyCmd())

	return cmd
}

func listCurrenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported currencies",
		RunE: func(_ *cobra.Command, _ []string) error {
			sel := initCurrency()
			active := sel.Current()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Code"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Symbol"),
				cli.BoldStyle.Render("Rate"),
				cli.BoldStyle.Render(""))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				strings.Repeat("-", 4), strings.Repeat("-", 18),
				strings.Repeat("-", 6), strings.Repeat("-", 6))

			for _, c := range currency.Available {
				marker := ""
				if c.Code == active.Code {
					marker = cli.StyleSuccess("active")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n", c.Code, c.Name, c.Symbol, c.ExchangeRate, marker)
			}
			return nil
		},
	}
}

func showCurrencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active display currency",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := initCurrency().Current()
			fmt.Printf("%s (%s) · 1 USD = %.2f %s · sample: %s\n",
				c.Code, c.Name, c.ExchangeRate, c.Code, currency.Format(100, c))
			return nil
		},
	}
}

func setCurrencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <code>",
		Short: "Switch the display currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			sel := initCurrency()
			code := strings.ToUpper(args[0])
			if err := sel.Set(code); err != nil {
				return err
			}
			c := sel.Current()
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Display currency set to %s (%s)", c.Code, c.Name)))
			return nil
		},
	}
}
