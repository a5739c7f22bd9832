package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/matlog/internal/cli/formatter"
	"github.com/alexanderramin/matlog/internal/service"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Browse and remove plans",
	}

	cmd.AddCommand(
		newPlanListCmd(app),
		newPlanMovesCmd(app),
		newPlanTreeCmd(app),
		newPlanRemoveCmd(app),
	)

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var namesOnly bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner := app.owner(cmd)
			out := cmd.OutOrStdout()

			if namesOnly {
				names, err := app.Moves.ListPlanNames(ctx, owner)
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(out, n)
				}
				return nil
			}

			plans, err := app.Moves.ListPlans(ctx, owner)
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Fprintln(out, "No plans yet.")
				return nil
			}
			fmt.Fprint(out, formatter.FormatPlanList(plans))
			return nil
		},
	}

	cmd.Flags().BoolVar(&namesOnly, "names", false, "Print plan names only, one per line")

	return cmd
}

func newPlanMovesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "moves PLAN",
		Short: "List a plan's moves in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moves, err := app.Moves.ListByPlan(cmd.Context(), app.owner(cmd), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(moves) == 0 {
				fmt.Fprintf(out, "No moves in plan %q.\n", args[0])
				return nil
			}
			fmt.Fprint(out, formatter.FormatPlanMoves(args[0], moves))
			return nil
		},
	}
}

func newPlanTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree PLAN",
		Short: "Show a plan as a technique tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			forest, err := app.Moves.PlanTree(cmd.Context(), app.owner(cmd), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(forest) == 0 {
				fmt.Fprintf(out, "No moves in plan %q.\n", args[0])
				return nil
			}
			fmt.Fprint(out, formatter.FormatPlanTree(args[0], forest))
			return nil
		},
	}
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm PLAN",
		Aliases: []string{"remove"},
		Short:   "Remove every move in a plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := args[0]
			if err := confirmDelete(app, yes, fmt.Sprintf("Remove the whole %q plan?", plan)); err != nil {
				return err
			}

			ctx := cmd.Context()
			owner := app.owner(cmd)
			var n int64
			err := service.RetryOnConflict(ctx, conflictRetries, func(ctx context.Context) error {
				var err error
				n, err = app.Moves.DeletePlan(ctx, owner, plan)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d moves from %q\n", n, plan)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
