package cli

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/matlog/internal/config"
	"github.com/alexanderramin/matlog/internal/domain"
	"github.com/alexanderramin/matlog/internal/metrics"
	"github.com/alexanderramin/matlog/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Moves service.MoveService

	// Owner is the identity local commands act as unless --owner is given.
	Owner  string
	Config config.Config

	// Metrics and Logger are used by serve; both may be nil.
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	Ping    func(ctx context.Context) error

	// IsInteractive reports whether prompts can be shown.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// owner returns the --owner flag when set, else the configured owner.
func (a *App) owner(cmd *cobra.Command) string {
	var flag string
	if f := cmd.Flag("owner"); f != nil && f.Changed {
		flag = f.Value.String()
	}
	return domain.CoalesceStr(flag, a.Owner)
}

// NewRootCmd creates the top-level "matlog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "matlog",
		Short:         "Grappling game plans as technique trees",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Read by main before the command tree is built.
	root.PersistentFlags().String("config", "", "Config file (default ~/.matlog/config.yaml)")
	root.PersistentFlags().String("owner", "", "Act as this owner (defaults to the configured owner)")

	root.AddCommand(
		newMoveCmd(app),
		newPlanCmd(app),
		newServeCmd(app),
	)

	return root
}
