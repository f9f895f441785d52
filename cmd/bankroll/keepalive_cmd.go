package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/punterlabs/bankroll/internal/cli"
	"github.com/punterlabs/bankroll/internal/keepalive"
)

func keepaliveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keepalive",
		Short: "Ping the backend on a timer so free-tier hosting stays awake",
		Long: `Run the keep-alive loop in the foreground until interrupted. The
backend is pinged every 9 minutes; after 5 consecutive failures the
interval tightens to 1 minute until a ping succeeds again.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			backend, err := initBackend()
			if err != nil {
				return err
			}

			interval := viper.GetDuration("keepalive.interval")
			poller := keepalive.NewPoller(backend, interval)
			poller.Start(ctx)
			defer poller.Stop()

			fmt.Println(cli.FormatInfo("Keep-alive running, press Ctrl-C to stop"))

			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					status := poller.Status()
					if !status.LastPing.IsZero() {
						fmt.Println(cli.FormatInfo(fmt.Sprintf("Last successful ping: %s",
							status.LastPing.Format(time.RFC3339))))
					}
					return nil
				case <-ticker.C:
					status := poller.Status()
					if status.Aggressive {
						fmt.Println(cli.FormatWarning(fmt.Sprintf(
							"Backend unresponsive (%d consecutive failures), pinging every minute",
							status.ErrorCount)))
					}
				}
			}
		},
	}

	cmd.Flags().Duration("interval", 0, "Ping interval (defaults to 9m)")
	_ = viper.BindPFlag("keepalive.interval", cmd.Flags().Lookup("interval"))
	return cmd
}
