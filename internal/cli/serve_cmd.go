package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/matlog/internal/auth"
	"github.com/alexanderramin/matlog/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			if err := cfg.ValidateServe(); err != nil {
				return err
			}

			verifier, err := auth.NewHMACVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)
			if err != nil {
				return err
			}

			logger := app.Logger
			if logger == nil {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel()}))
			}

			e := httpapi.New(httpapi.Options{
				Moves:     app.Moves,
				Verifier:  verifier,
				Metrics:   app.Metrics,
				Logger:    logger,
				OpTimeout: cfg.OpTimeout(),
				Ping:      app.Ping,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("serving", "addr", cfg.HTTP.Addr, "driver", cfg.DB.Driver)
			return httpapi.Serve(ctx, e, cfg.HTTP.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}
