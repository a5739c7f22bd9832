package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/matlog/internal/cli"
	"github.com/alexanderramin/matlog/internal/config"
	"github.com/alexanderramin/matlog/internal/db"
	"github.com/alexanderramin/matlog/internal/metrics"
	"github.com/alexanderramin/matlog/internal/repository"
	"github.com/alexanderramin/matlog/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Config file from --config, MATLOG_CONFIG, or ~/.matlog/config.yaml, then MATLOG_* env.
	cfg, err := config.Load(configPath(os.Args[1:]))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))

	// Open database
	database, err := db.OpenDB(ctx, cfg.Driver(), cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repository and unit of work
	moveRepo := repository.NewSQLMoveRepo(database, cfg.Driver())
	uow := db.NewUnitOfWork(database, cfg.Driver())

	// Use-case events feed metrics always, the log when asked for.
	m := metrics.New()
	observers := []service.UseCaseObserver{m}
	if cfg.Log.UseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	app := &cli.App{
		Moves:   service.NewMoveService(moveRepo, uow, observers...),
		Owner:   cfg.Owner,
		Config:  cfg,
		Metrics: m,
		Logger:  logger,
		Ping:    database.PingContext,
	}

	// Prompts only when a person is at the terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

// configPath pulls --config out of args ahead of cobra, which needs the
// loaded config to build its commands.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("matlog", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}
