package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/matlog/internal/cli/formatter"
	"github.com/alexanderramin/matlog/internal/domain"
	"github.com/alexanderramin/matlog/internal/service"
	"github.com/spf13/cobra"
)

const (
	// conflictRetries is how many times a delete is retried after losing a
	// race with a concurrent writer.
	conflictRetries = 1

	detailWidth = 72
)

func newMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Manage moves",
	}

	cmd.AddCommand(
		newMoveAddCmd(app),
		newMoveShowCmd(app),
		newMoveUpdateCmd(app),
		newMoveRemoveCmd(app),
	)

	return cmd
}

func newMoveAddCmd(app *App) *cobra.Command {
	var plan, name, description, parent string
	var order int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a move to a plan",
		Long: `Add a move to a plan. With --parent the move becomes a follow-up of an
existing move and joins that move's plan.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner := app.owner(cmd)

			var parentID *string
			if parent != "" {
				id, err := resolveMoveID(ctx, app, owner, parent)
				if err != nil {
					return fmt.Errorf("parent: %w", err)
				}
				parentID = &id
				if plan == "" {
					p, err := app.Moves.GetOwned(ctx, id, owner)
					if err != nil {
						return fmt.Errorf("parent: %w", err)
					}
					plan = p.PlanName
				}
			}

			if plan == "" || name == "" {
				if !app.interactive() {
					return errors.New("--plan and --name are required")
				}
				if err := moveForm(&plan, &name, &description).Run(); err != nil {
					return err
				}
			}

			in := service.CreateMoveInput{
				OwnerID:     owner,
				PlanName:    plan,
				Name:        name,
				Description: &description,
				ParentID:    parentID,
			}
			if cmd.Flags().Changed("order") {
				in.Order = &order
			}

			m, err := app.Moves.Create(ctx, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (%s)\n", m.Name, m.PlanName, m.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name")
	cmd.Flags().StringVar(&name, "name", "", "Move name")
	cmd.Flags().StringVar(&description, "description", "", "Notes in markdown")
	cmd.Flags().StringVar(&parent, "parent", "", "ID (or ID prefix) of the move this follows")
	cmd.Flags().IntVar(&order, "order", 0, "Position among siblings")

	return cmd
}

func newMoveShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a move and its notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner := app.owner(cmd)
			id, err := resolveMoveID(ctx, app, owner, args[0])
			if err != nil {
				return err
			}
			m, err := app.Moves.GetOwned(ctx, id, owner)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatMoveDetail(m, formatter.MoveDetailOptions{
				MarkdownStyle: formatter.MarkdownStyle(out),
				Width:         detailWidth,
			}))
			return nil
		},
	}
}

func newMoveUpdateCmd(app *App) *cobra.Command {
	var name, description string
	var order int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename, reorder, or re-describe a move",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch service.MovePatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("order") {
				patch.Order = &order
			}
			if patch.IsEmpty() {
				return errors.New("nothing to update: pass --name, --description, or --order")
			}

			ctx := cmd.Context()
			owner := app.owner(cmd)
			id, err := resolveMoveID(ctx, app, owner, args[0])
			if err != nil {
				return err
			}
			m, err := app.Moves.Update(ctx, id, owner, patch)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", m.Name, m.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New notes; empty clears them")
	cmd.Flags().IntVar(&order, "order", 0, "New position among siblings")

	return cmd
}

func newMoveRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a move and every move that follows from it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner := app.owner(cmd)
			id, err := resolveMoveID(ctx, app, owner, args[0])
			if err != nil {
				return err
			}
			m, err := app.Moves.GetOwned(ctx, id, owner)
			if err != nil {
				return err
			}

			if err := confirmDelete(app, yes, fmt.Sprintf("Remove %s and all of its follow-ups?", m.Name)); err != nil {
				return err
			}

			var deleted bool
			err = service.RetryOnConflict(ctx, conflictRetries, func(ctx context.Context) error {
				var err error
				deleted, err = app.Moves.DeleteSubtree(ctx, id, owner)
				return err
			})
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("move %s: %w", id, domain.ErrNotFound)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s and its follow-ups\n", m.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
