package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/punterlabs/bankroll/internal/api"
	"github.com/punterlabs/bankroll/internal/common"
	"github.com/punterlabs/bankroll/internal/config"
	"github.com/punterlabs/bankroll/internal/currency"
	"github.com/punterlabs/bankroll/internal/datefilter"
	"github.com/punterlabs/bankroll/internal/service"
	"github.com/punterlabs/bankroll/internal/storage"
)

// initBackend builds the REST client from the configured backend URL.
func initBackend() (service.Backend, error) {
	baseURL := viper.GetString("backend.url")
	if baseURL == "" {
		return nil, common.NewUserError(
			"No backend configured. Set backend.url in the config file or BANKROLL_BACKEND_URL.",
			common.ErrMissingConfig)
	}
	return api.NewClient(baseURL), nil
}

// initSnapshots initializes the local snapshot cache with auto-migration.
func initSnapshots(ctx context.Context) (service.SnapshotStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/bankroll/bankroll.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// initCurrency loads the persisted display currency selection.
func initCurrency() *currency.Selection {
	store, err := currency.NewFileStore("")
	if err != nil {
		// Formatting still works without persistence.
		return currency.NewSelection(nil)
	}
	return currency.NewSelection(store)
}

// parseID parses a positional numeric id argument.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("Invalid %s id: %q", what, arg), common.ErrInvalidInput)
	}
	return id, nil
}

// parseAmount parses a positional monetary argument, entered in the
// active display currency, into base units.
func parseAmount(arg string, sel *currency.Selection) (float64, error) {
	amount, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("Invalid amount: %q", arg), common.ErrInvalidInput)
	}
	return currency.ToBase(amount, sel.Current()), nil
}

// addFilterFlags registers the shared date-filter flags.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("all", false, "Include all time")
	cmd.Flags().Int("month", 0, "Calendar month (1-12, defaults to the current month)")
	cmd.Flags().Int("year", 0, "Year for --month (defaults to the current year)")
	cmd.Flags().String("from", "", "Custom range start (2006-01-02)")
	cmd.Flags().String("to", "", "Custom range end (2006-01-02)")
}

// filterFromFlags resolves the date-filter flags into a Filter. With no
// flags set the current calendar month applies.
func filterFromFlags(cmd *cobra.Command, now time.Time) (datefilter.Filter, error) {
	all, _ := cmd.Flags().GetBool("all")
	month, _ := cmd.Flags().GetInt("month")
	year, _ := cmd.Flags().GetInt("year")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	switch {
	case all:
		return datefilter.All(), nil
	case from != "" || to != "":
		for _, bound := range []string{from, to} {
			if bound == "" {
				continue
			}
			if _, err := time.ParseInLocation(datefilter.DateLayout, bound, time.Local); err != nil {
				return datefilter.Filter{}, common.NewUserError(
					fmt.Sprintf("Invalid date %q, expected format %s", bound, datefilter.DateLayout),
					common.ErrInvalidInput)
			}
		}
		return datefilter.Custom(from, to), nil
	case month != 0 || year != 0:
		if month == 0 {
			month = int(now.Month())
		}
		if month < 1 || month > 12 {
			return datefilter.Filter{}, common.NewUserError(
				fmt.Sprintf("Invalid month %d, expected 1-12", month), common.ErrInvalidInput)
		}
		if year == 0 {
			year = now.Year()
		}
		return datefilter.ForMonth(time.Month(month), year), nil
	default:
		return datefilter.Default(now), nil
	}
}
