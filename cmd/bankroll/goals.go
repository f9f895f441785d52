package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/punterlabs/bankroll/internal/cli"
	"github.com/punterlabs/bankroll/internal/common"
	"github.com/punterlabs/bankroll/internal/currency"
	"github.com/punterlabs/bankroll/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage campaign goals",
		Long:  `Set target amounts for campaigns and track progress toward them.`,
	}

	cmd.AddCommand(listGoalsCmd())
	cmd.AddCommand(createGoalCmd())
	cmd.AddCommand(updateGoalCmd())
	cmd.AddCommand(deleteGoalCmd())
	cmd.AddCommand(goalProgressCmd())

	return cmd
}

func listGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <campaign-id>",
		Short: "List a campaign's goals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			goals, err := backend.ListGoals(ctx, campaignID)
			if err != nil {
				return err
			}

			if len(goals) == 0 {
				fmt.Println(cli.InfoStyle.Render("No goals yet. Use 'bankroll goals create' to set one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Title"),
				cli.BoldStyle.Render("Target"),
				cli.BoldStyle.Render("Progress"),
				cli.BoldStyle.Render("Status"),
				cli.BoldStyle.Render("Deadline"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4), strings.Repeat("-", 20), strings.Repeat("-", 10),
				strings.Repeat("-", 10), strings.Repeat("-", 9), strings.Repeat("-", 10))

			for _, goal := range goals {
				deadline := "-"
				if goal.Deadline != nil {
					deadline = goal.Deadline.Format("2006-01-02")
					if goal.DaysRemaining != nil {
						deadline = fmt.Sprintf("%s (%dd)", deadline, *goal.DaysRemaining)
					}
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					goal.ID, goal.Title,
					sel.Format(goal.TargetAmount),
					fmt.Sprintf("%.1f%%", goal.ProgressPercentage),
					styleGoalStatus(goal.Status),
					deadline)
			}
			return nil
		},
	}
}

func styleGoalStatus(status model.GoalStatus) string {
	switch status {
	case model.GoalCompleted:
		return cli.StyleSuccess(string(status))
	case model.GoalFailed:
		return cli.StyleError(string(status))
	default:
		return cli.StyleInfo(string(status))
	}
}

func createGoalCmd() *cobra.Command {
	var deadline string

	cmd := &cobra.Command{
		Use:   "create <campaign-id> <title> <target-amount>",
		Short: "Create a goal for a campaign",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			target, err := parseAmount(args[2], sel)
			if err != nil {
				return err
			}

			goal := model.NewGoal{
				CampaignID:   campaignID,
				Title:        args[1],
				TargetAmount: target,
			}
			if deadline != "" {
				parsed, parseErr := time.ParseInLocation("2006-01-02", deadline, time.Local)
				if parseErr != nil {
					return common.NewUserError(
						fmt.Sprintf("Invalid deadline %q, expected format 2006-01-02", deadline),
						common.ErrInvalidInput)
				}
				goal.Deadline = &parsed
			}

			created, err := backend.CreateGoal(ctx, goal)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created goal %q (id %d) targeting %s",
				created.Title, created.ID, sel.Format(created.TargetAmount))))
			return nil
		},
	}

	cmd.Flags().StringVar(&deadline, "deadline", "", "Goal deadline (2006-01-02)")
	return cmd
}

func updateGoalCmd() *cobra.Command {
	var (
		title  string
		target float64
		status string
	)

	cmd := &cobra.Command{
		Use:   "update <goal-id>",
		Short: "Update a goal's title, target, or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			goalID, err := parseID(args[0], "goal")
			if err != nil {
				return err
			}

			backend, err := initBackend()
			if err != nil {
				return err
			}
			sel := initCurrency()

			var update model.GoalUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("target") {
				base := currency.ToBase(target, sel.Current())
				update.TargetAmount = &base
			}
			if cmd.Flags().Changed("status") {
				goalStatus := model.GoalStatus(status)
				if !goalStatus.Valid() {
					return common.NewUserError(
						fmt.Sprintf("Invalid status %q, expected active, completed, or failed", status),
						common.ErrInvalidInput)
				}
				update.Status = &goalStatus
			}
			if update.Title == nil && update.TargetAmount == nil && update.Status == nil {
				return common.NewUserError("Nothing to update; pass --title, --target, or --status", common.ErrInvalidInput)
			}

			updated, err := backend.UpdateGoal(ctx, goalID, update)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated goal %q (%.1f%% toward %s)",
				updated.Title, updated.ProgressPercentage, sel.Format(updated.TargetAmount))))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().Float64Var(&target, "target", 0, "New target amount, in the active display currency")
	cmd.Flags().StringVar(&status, "status", "", "New status (active, completed, failed)")
	return cmd
}

func deleteGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			goalID, err := parseID(args[0], "goal")
			if err != nil {
				return err
			}

			backend, err := initBackend()
			if err != nil {
				return err
			}

			if err := backend.DeleteGoal(ctx, goalID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted goal %d", goalID)))
			return nil
		},
	}
}

func goalProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <goal-id>",
		Short: "Refresh a goal's progress from the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			goalID, err := parseID(args[0], "goal")
			if err != nil {
				return err
			}

			backend, err := initBackend()
			if err != nil {
				return err
			}
			sel := initCurrency()

			goal, err := backend.UpdateGoalProgress(ctx, goalID)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatInfo(fmt.Sprintf("%q: %s of %s (%.1f%%, %s remaining)",
				goal.Title,
				sel.Format(goal.CurrentAmount),
				sel.Format(goal.TargetAmount),
				goal.ProgressPercentage,
				sel.Format(goal.RemainingAmount))))
			return nil
		},
	}
}
