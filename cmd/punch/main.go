package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/punch/internal/cli"
	"github.com/alexanderramin/punch/internal/config"
	"github.com/alexanderramin/punch/internal/db"
	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/ledger"
	"github.com/alexanderramin/punch/internal/repository"
	"github.com/alexanderramin/punch/internal/service"
	"github.com/alexanderramin/punch/internal/watcher"
)

func main() {
	os.Exit(run())
}

func run() int {
	app, cleanup, err := wire()
	if err != nil {
		return cli.ReportError(os.Stderr, err)
	}
	defer cleanup()

	rootCmd := cli.NewRootCmd(app)
	return cli.ReportError(os.Stderr, rootCmd.Execute())
}

func wire() (*cli.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	cleanup := func() { database.Close() }

	policy := ledger.Policy{
		ClockOut:   cfg.ClockOutPolicy,
		BreakScope: cfg.BreakScope,
		Plan:       domain.DefaultBreakPlan,
	}

	// Wire state repositories per connection or transaction
	states := func(conn db.DBTX) repository.StateRepo {
		return repository.NewSQLiteStateRepo(conn,
			repository.WithLogger(logger),
			repository.WithBreakPlan(policy.Plan),
		)
	}

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	uow := db.NewSQLiteUnitOfWork(database)
	svc := service.NewTimeclockService(database, uow, states, service.SystemClock{}, policy, observers...)

	app := &cli.App{
		Timeclock:       svc,
		Config:          cfg,
		CopyToClipboard: clipboard.WriteAll,
	}

	// Detect interactive terminal for confirmation prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	if cfg.DBPath != db.MemoryPath {
		app.Watch = func() (cli.ChangeSource, error) {
			return watcher.New(cfg.DBPath, watcher.WithLogger(logger))
		}
	}

	return app, cleanup, nil
}
